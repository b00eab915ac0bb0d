package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// evalAll evaluates every program, at most jobs at a time when jobs > 0,
// each on its own VM. Outputs are returned in program order; the output of
// any program that did not finish is nil. The first error cancels any
// programs still running.
func evalAll(ctx context.Context, progs []Program, jobs int, optsFor func(prog Program) VMOption) ([][]byte, error) {
	outs := make([][]byte, len(progs))
	eg, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		eg.SetLimit(jobs)
	}
	for i, prog := range progs {
		i, prog := i, prog
		eg.Go(func() error {
			var opt VMOption
			if optsFor != nil {
				opt = optsFor(prog)
			}
			rec, err := New(opt).Eval(ctx, prog)
			if err != nil {
				return fmt.Errorf("%v: %w", prog.Name, err)
			}
			outs[i] = rec.Bytes()
			return nil
		})
	}
	return outs, eg.Wait()
}
