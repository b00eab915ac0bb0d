package main

import (
	"fmt"
	"strings"

	"github.com/jcorbin/tapevm/internal/panicerr"
)

// halt stops the current run, flushing any flushable sink first; Run returns
// err, or nil for a normal halt.
func (vm *VM) halt(err error) {
	if fl, ok := vm.sink.(interface{ Flush() error }); ok {
		if ferr := fl.Flush(); err == nil {
			err = ferr
		}
	}
	if err != nil {
		vm.logf("#", "halt error: %v", err)
		err = vm.runError(err)
	} else {
		vm.logf("#", "halt")
	}
	panicerr.Halt(err)
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

const logMarkWidth = 2

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := logMarkWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
