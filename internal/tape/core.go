package tape

import "fmt"

// DefaultSize provides a default for Cells.Reset when given a non-positive size.
const DefaultSize = 128

// BoundsError indicates that a cell access, like load or store, fell outside
// the tape.
type BoundsError struct {
	Addr int
	Size int
	Op   string
}

func (err BoundsError) Error() string {
	return fmt.Sprintf("tape %v out of bounds @%v (size %v)", err.Op, err.Addr, err.Size)
}

func (t *Cells) checkBounds(addr int, op string) error {
	if addr < 0 || addr >= len(t.cells) {
		return BoundsError{addr, len(t.cells), op}
	}
	return nil
}
