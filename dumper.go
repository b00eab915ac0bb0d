package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/tapevm/internal/runeio"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
	rowWidth  int
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  prog: %v (%v bytes)\n", dump.vm.prog.Name, dump.vm.prog.Len())
	dump.dumpAt()
	fmt.Fprintf(dump.out, "  pc: %v\n", dump.vm.pc)
	fmt.Fprintf(dump.out, "  steps: %v\n", dump.vm.steps)
	dump.dumpTape()
}

func (dump *vmDumper) dumpAt() {
	at := dump.vm.at
	if at >= dump.vm.prog.Len() {
		fmt.Fprintf(dump.out, "  at: %v\n", at)
		return
	}
	fmt.Fprintf(dump.out, "  at: %v %v %v\n", at,
		dump.vm.prog.Locate(at),
		runeio.Name(dump.vm.prog.Text[at]))
}

// dumpTape writes rows of cells, eliding rows that are all zero unless they
// hold the data pointer.
func (dump *vmDumper) dumpTape() {
	cells := dump.vm.tape.Dump()
	if dump.rowWidth == 0 {
		dump.rowWidth = 16
	}
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(len(cells))) + 1
	}

	fmt.Fprintf(dump.out, "# Tape (%v cells)\n", len(cells))
	var buf strings.Builder
	elided := false
	for addr := 0; addr < len(cells); addr += dump.rowWidth {
		end := addr + dump.rowWidth
		if end > len(cells) {
			end = len(cells)
		}
		row := cells[addr:end]
		hasPC := addr <= dump.vm.pc && dump.vm.pc < end
		if !hasPC && allZero(row) {
			elided = true
			continue
		}
		if elided {
			fmt.Fprintf(dump.out, "  ...\n")
			elided = false
		}

		fmt.Fprintf(&buf, "  @% *v", dump.addrWidth, addr)
		for i, val := range row {
			if addr+i == dump.vm.pc {
				buf.WriteString(" >")
			} else {
				buf.WriteString("  ")
			}
			fmt.Fprintf(&buf, "%02x", val)
		}
		buf.WriteByte('\n')
		io.WriteString(dump.out, buf.String())
		buf.Reset()
	}
	if elided {
		fmt.Fprintf(dump.out, "  ...\n")
	}
}

func allZero(row []byte) bool {
	for _, val := range row {
		if val != 0 {
			return false
		}
	}
	return true
}
