package main

import (
	"context"
	"fmt"

	"github.com/jcorbin/tapevm/internal/panicerr"
	"github.com/jcorbin/tapevm/internal/tape"
)

// New creates a VM; its tape is DefaultTapeSize cells unless configured.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run executes prog on a freshly zeroed tape, writing any output into sink.
// It returns how many bytes of program text were consumed.
//
// Any failure aborts only this run: tape bounds, step limit, sink capacity,
// and context errors all come back wrapped in a RunError; a Go runtime panic
// comes back as an error carrying its stack.
func (vm *VM) Run(ctx context.Context, prog Program, sink Sink) (consumed int, err error) {
	if err := panicerr.Recover("VM", func() error {
		return vm.run(ctx, prog, sink)
	}); err != nil {
		return 0, err
	}
	return vm.consumed, nil
}

// Eval runs prog twice: first to count its output, then to record it into a
// RecordingSink sized exactly to fit that output plus its Sentinel.
func (vm *VM) Eval(ctx context.Context, prog Program) (*RecordingSink, error) {
	var count CountingSink
	if _, err := vm.Run(ctx, prog, &count); err != nil {
		return nil, fmt.Errorf("counting pass: %w", err)
	}

	vm.logf(">", "sized %v output bytes", count.Len())
	rec := NewRecordingSink(count.Len() + 1)
	if _, err := vm.Run(ctx, prog, rec); err != nil {
		return nil, fmt.Errorf("recording pass: %w", err)
	}
	if err := rec.Terminate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Eval compiles and evaluates src on a new VM, returning its output.
func Eval(ctx context.Context, src string, opts ...VMOption) ([]byte, error) {
	prog, err := Compile("<program>", src)
	if err != nil {
		return nil, err
	}
	rec, err := New(opts...).Eval(ctx, prog)
	if err != nil {
		return nil, err
	}
	return rec.Bytes(), nil
}

// DefaultTapeSize is the number of tape cells a VM has unless configured.
const DefaultTapeSize = tape.DefaultSize

// WithTapeSize sets the number of tape cells; zero or less means
// DefaultTapeSize.
func WithTapeSize(size int) VMOption { return withTapeSize(size) }

func WithStepLimit(limit uint) VMOption { return withStepLimit(limit) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
