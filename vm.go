package main

import (
	"context"

	"github.com/jcorbin/tapevm/internal/runeio"
	"github.com/jcorbin/tapevm/internal/tape"
)

// VM runs programs against a fixed length tape of byte cells. Every run
// starts from a zeroed tape with its data pointer on the first cell.
//
// A VM may be reused for any number of sequential runs, but is not safe for
// concurrent use; use one VM per goroutine.
type VM struct {
	logging

	tape     tape.Cells
	tapeSize int
	pc       int // data pointer, may wander off the tape between accesses

	prog     Program
	at       int // offset of the instruction being run
	sink     Sink
	consumed int

	steps     uint
	stepLimit uint
}

// PC returns the data pointer as left by the last run.
func (vm *VM) PC() int { return vm.pc }

// Steps returns how many instructions the last run executed, counting each
// loop condition test as one.
func (vm *VM) Steps() uint { return vm.steps }

// Tape returns a copy of the tape as left by the last run.
func (vm *VM) Tape() []byte { return vm.tape.Dump() }

func (vm *VM) init(prog Program, sink Sink) {
	if sink == nil {
		sink = &CountingSink{}
	}
	vm.tape.Reset(vm.tapeSize)
	vm.pc = 0
	vm.prog = prog
	vm.at = 0
	vm.sink = sink
	vm.consumed = 0
	vm.steps = 0
}

func (vm *VM) run(ctx context.Context, prog Program, sink Sink) error {
	vm.init(prog, sink)
	vm.logf(">", "run %v (%v bytes) on %v cells", prog.Name, prog.Len(), vm.tape.Size())
	vm.consumed = vm.exec(ctx, 0, false)
	vm.halt(nil)
	return nil
}

// exec scans the program from start up to the first unmatched ']' or the end
// of the program, returning the offset it stopped at relative to start.
//
// Nothing is executed while skipping, but brackets are still followed so
// that a skipped loop is passed over whole, nested loops and all.
func (vm *VM) exec(ctx context.Context, start int, skip bool) int {
	code := vm.prog.Text
	at := start
	for ; at < len(code); at++ {
		switch code[at] {
		case '+':
			if !skip {
				vm.step(ctx, at)
				vm.haltif(vm.tape.Add(vm.pc, 1))
			}
		case '-':
			if !skip {
				vm.step(ctx, at)
				vm.haltif(vm.tape.Add(vm.pc, 0xff))
			}
		case '>':
			if !skip {
				vm.step(ctx, at)
				vm.pc++
			}
		case '<':
			if !skip {
				vm.step(ctx, at)
				vm.pc--
			}
		case '.':
			if !skip {
				vm.step(ctx, at)
				vm.emit()
			}
		case '[':
			for !skip && vm.test(ctx, at) {
				vm.body(ctx, at)
			}
			// One last pass over the body, skipping, finds the matching ']'
			// even after the loop has run.
			at += vm.exec(ctx, at+1, true) + 1
		case ']':
			return at - start
		}
	}
	return at - start
}

// step accounts for running the instruction at offset at, halting if the
// step limit is exceeded or ctx is done.
func (vm *VM) step(ctx context.Context, at int) {
	vm.at = at
	vm.steps++
	if lim := vm.stepLimit; lim != 0 && vm.steps > lim {
		vm.halt(StepLimitError{lim})
	}
	vm.haltif(ctx.Err())
	if vm.logfn != nil {
		vm.logf("@", "%v %v pc:%v", at, runeio.Name(vm.prog.Text[at]), vm.pc)
	}
}

// test evaluates the condition of the loop opened at offset at.
func (vm *VM) test(ctx context.Context, at int) bool {
	vm.step(ctx, at)
	val, err := vm.tape.Load(vm.pc)
	vm.haltif(err)
	return val != 0
}

func (vm *VM) body(ctx context.Context, at int) {
	if vm.logfn != nil {
		defer vm.withLogPrefix("	")()
	}
	vm.exec(ctx, at+1, false)
}

func (vm *VM) emit() {
	val, err := vm.tape.Load(vm.pc)
	vm.haltif(err)
	vm.logf(".", "emit %v", runeio.Name(val))
	vm.haltif(vm.sink.Accept(val))
}
