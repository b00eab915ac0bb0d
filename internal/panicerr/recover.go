package panicerr

import (
	"errors"
	"fmt"
)

// Recover runs f in a new goroutine, turning any panic or early
// runtime.Goexit within it into a non-nil error return.
//
// A Halt within f is not abnormal: its error (maybe nil) is returned as-is.
func Recover(name string, f func() error) (err error) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		returned := false
		defer func() {
			if e := recover(); e != nil {
				err = recovered(name, e)
			} else if !returned {
				err = exitError{name}
			}
		}()
		err = f()
		returned = true
	}()
	<-done
	return err
}

// Halt unwinds the stack back to the nearest Recover, which returns err.
func Halt(err error) {
	panic(halt{err})
}

type halt struct{ error }

type exitError struct{ name string }

func (xe exitError) Error() string {
	if xe.name == "" {
		return "goroutine exited early"
	}
	return fmt.Sprintf("%v: goroutine exited early", xe.name)
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}
