package flushio

import (
	"errors"
	"fmt"
	"io"
)

// Tee returns a WriteFlusher that writes into out, and then into every copy.
// A failed write into a copy is reported, but only after out has been
// written, so that the primary output is never held back by a copy.
// Flush flushes all of them, returning any errors joined.
func Tee(out WriteFlusher, copies ...WriteFlusher) WriteFlusher {
	var t tee
	t.out = out
	for _, c := range copies {
		switch impl := c.(type) {
		case nil:
		case tee:
			t.copies = append(t.copies, impl.out)
			t.copies = append(t.copies, impl.copies...)
		default:
			t.copies = append(t.copies, impl)
		}
	}
	if out == nil {
		t.out = discardWriteFlusher
	}
	if len(t.copies) == 0 {
		return t.out
	}
	return t
}

type tee struct {
	out    WriteFlusher
	copies []WriteFlusher
}

func (t tee) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, err
	}
	for i, c := range t.copies {
		if m, err := c.Write(p); err != nil {
			return n, fmt.Errorf("tee copy #%v: %w", i+1, err)
		} else if m != len(p) {
			return n, fmt.Errorf("tee copy #%v: %w", i+1, io.ErrShortWrite)
		}
	}
	return n, nil
}

func (t tee) Flush() error {
	errs := []error{t.out.Flush()}
	for _, c := range t.copies {
		errs = append(errs, c.Flush())
	}
	return errors.Join(errs...)
}
