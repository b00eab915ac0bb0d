package tape

// Dump returns a copy of every cell, for diagnostics.
func (t *Cells) Dump() []byte {
	return append([]byte(nil), t.cells...)
}
