package main

import (
	"io"

	"github.com/jcorbin/tapevm/internal/fileinput"
)

// Program is a compiled, immutable instruction stream. Its source text is
// kept whole, inert characters included, so that run offsets map straight
// back to source locations.
type Program struct {
	fileinput.Source

	// jumps maps the offset of every bracket to the offset of its match;
	// all other offsets hold -1.
	jumps []int
}

// Compile checks that every '[' in src has a matching ']' and returns the
// resulting Program.
func Compile(name, src string) (Program, error) {
	return compile(fileinput.NewSource(name, []byte(src)))
}

// MustCompile is like Compile but panics on a SyntaxError.
func MustCompile(src string) Program {
	prog, err := Compile("<program>", src)
	if err != nil {
		panic(err)
	}
	return prog
}

// ReadProgram reads and compiles all of r; the program is named after r when
// possible, e.g. for an *os.File.
func ReadProgram(r io.Reader) (Program, error) {
	src, err := fileinput.Read(r)
	if err != nil {
		return Program{}, err
	}
	return compile(src)
}

func compile(src fileinput.Source) (Program, error) {
	prog := Program{Source: src, jumps: make([]int, len(src.Text))}
	var open []int
	for at, sym := range src.Text {
		prog.jumps[at] = -1
		switch sym {
		case '[':
			open = append(open, at)
		case ']':
			if len(open) == 0 {
				return Program{}, prog.syntaxError(at)
			}
			i := len(open) - 1
			prog.jumps[open[i]] = at
			prog.jumps[at] = open[i]
			open = open[:i]
		}
	}
	if len(open) > 0 {
		return Program{}, prog.syntaxError(open[0])
	}
	return prog, nil
}

func (prog Program) syntaxError(at int) SyntaxError {
	return SyntaxError{
		Loc:    prog.Locate(at),
		At:     at,
		Symbol: prog.Text[at],
	}
}

// Len returns the length of the program text.
func (prog Program) Len() int { return len(prog.Text) }

// Match returns the offset of the bracket matching the one at offset at, or
// -1 if there is no bracket there.
func (prog Program) Match(at int) int {
	if at < 0 || at >= len(prog.jumps) {
		return -1
	}
	return prog.jumps[at]
}

func (prog Program) String() string { return string(prog.Text) }
