package main

import (
	"fmt"

	"github.com/jcorbin/tapevm/internal/fileinput"
	"github.com/jcorbin/tapevm/internal/runeio"
	"github.com/jcorbin/tapevm/internal/tape"
)

// BoundsError reports a tape access outside of the tape; see RunError for
// where it happened.
type BoundsError = tape.BoundsError

// RunError locates a failure within a running program.
type RunError struct {
	Loc    fileinput.Location
	At     int  // offset of the instruction being run
	Symbol byte // instruction symbol at that offset
	PC     int  // tape position at the time
	Err    error
}

func (err RunError) Error() string {
	return fmt.Sprintf("%v: %v at pc=%v: %v", err.Loc, runeio.Name(err.Symbol), err.PC, err.Err)
}

func (err RunError) Unwrap() error { return err.Err }

func (vm *VM) runError(err error) error {
	if _, is := err.(RunError); is {
		return err
	}
	re := RunError{
		Loc: vm.prog.Locate(vm.at),
		At:  vm.at,
		PC:  vm.pc,
		Err: err,
	}
	if vm.at < len(vm.prog.Text) {
		re.Symbol = vm.prog.Text[vm.at]
	}
	return re
}

// SyntaxError reports malformed bracket nesting found while compiling.
type SyntaxError struct {
	Loc    fileinput.Location
	At     int
	Symbol byte
}

func (err SyntaxError) Error() string {
	return fmt.Sprintf("%v: unmatched '%c' at pc=%v", err.Loc, err.Symbol, err.At)
}

// StepLimitError reports a run that executed more instructions than allowed.
type StepLimitError struct {
	Limit uint
}

func (err StepLimitError) Error() string {
	return fmt.Sprintf("step limit %v exceeded", err.Limit)
}

// CapacityError reports a RecordingSink asked to hold more than it was sized
// for.
type CapacityError struct {
	Cap int
	Op  string
}

func (err CapacityError) Error() string {
	return fmt.Sprintf("recording capacity %v exceeded by %v", err.Cap, err.Op)
}
