package tape

// Cells implements a fixed length tape of byte cells.
// The zero value is an empty tape; call Reset to size it.
type Cells struct {
	cells []byte
}

// Size returns the number of cells on the tape.
func (t *Cells) Size() int { return len(t.cells) }

// Reset zeroes every cell, reallocating only if size differs from the current
// length. A non-positive size selects DefaultSize.
func (t *Cells) Reset(size int) {
	if size <= 0 {
		size = DefaultSize
	}
	if size != len(t.cells) {
		t.cells = make([]byte, size)
		return
	}
	for i := range t.cells {
		t.cells[i] = 0
	}
}

// Load returns the value of the cell at addr.
// Returns a BoundsError if addr is not on the tape.
func (t *Cells) Load(addr int) (byte, error) {
	if err := t.checkBounds(addr, "load"); err != nil {
		return 0, err
	}
	return t.cells[addr], nil
}

// Stor sets the value of the cell at addr.
// Returns a BoundsError if addr is not on the tape.
func (t *Cells) Stor(addr int, val byte) error {
	if err := t.checkBounds(addr, "stor"); err != nil {
		return err
	}
	t.cells[addr] = val
	return nil
}

// Add adds delta to the cell at addr, wrapping modulo 256.
// Returns a BoundsError if addr is not on the tape; the cell is unchanged.
func (t *Cells) Add(addr int, delta byte) error {
	if err := t.checkBounds(addr, "add"); err != nil {
		return err
	}
	t.cells[addr] += delta
	return nil
}
