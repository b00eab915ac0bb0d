package runeio

import "io"

// WriteQuoted writes p to w, passing printable ASCII, tab, and line feed
// through as-is, rendering other controls in caret form (e.g. ^@ or ^[[), and
// any remaining high bytes as \xNN escapes.
func WriteQuoted(w io.Writer, p []byte) (n int, err error) {
	var buf [4]byte
	for _, b := range p {
		var out []byte
		switch {
		case b == '\t', b == '\n', 0x20 <= b && b < 0x7f:
			out = append(buf[:0], b)
		case b < 0x20, b == 0x7f, 0x80 <= b && b <= 0x9f:
			out = append(buf[:0], CaretForm(rune(b))...)
		default:
			const hex = "0123456789abcdef"
			out = append(buf[:0], '\\', 'x', hex[b>>4], hex[b&0xf])
		}
		m, err := w.Write(out)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
