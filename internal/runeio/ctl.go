package runeio

import (
	"fmt"
	"strings"
)

// mnemonics for the C0 controls (0x00-0x1f), then space and delete, then the
// C1 controls (0x80-0x9f)
var (
	c0Names = strings.Fields(`
		NUL SOH STX ETX EOT ENQ ACK BEL BS  HT  NL  VT  NP  CR  SO  SI
		DLE DC1 DC2 DC3 DC4 NAK SYN ETB CAN EM  SUB ESC FS  GS  RS  US`)
	spName  = "SP"
	delName = "DEL"
	c1Names = strings.Fields(`
		PAD HOP BPH NBH IND NEL SSA ESA HTS HTJ VTS PLD PLU RI  SS2 SS3
		DCS PU1 PU2 STS CCH MW  SPA EPA SOS SGCI SCI CSI ST OSC PM  APC`)
)

// CaretForm computes the ^-escaped printable form of a control rune.
func CaretForm(r rune) string {
	if r < 0x20 || r == 0x7f {
		return "^" + string(r^0x40)
	} else if 0x80 <= r && r <= 0x9f {
		return "^[" + string(r^0xc0)
	}
	return ""
}

// Name returns a readable name for a byte value: its control mnemonic like
// <NUL> or <ESC>, its quoted form if printable ASCII, or a hex escape.
func Name(b byte) string {
	switch {
	case b < 0x20:
		return "<" + c0Names[b] + ">"
	case b == 0x20:
		return "<" + spName + ">"
	case b == 0x7f:
		return "<" + delName + ">"
	case b < 0x7f:
		return fmt.Sprintf("%q", rune(b))
	case b <= 0x9f:
		return "<" + c1Names[b-0x80] + ">"
	}
	return fmt.Sprintf("\\x%02x", b)
}
