package fileinput

import (
	"fmt"
	"io"
	"sort"
)

// Location names a line and column in a Source.
type Location struct {
	Name string
	Line int
	Col  int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Col) }

// Source holds the full text of one named input, along with the offsets of
// its line starts so that byte offsets can be turned back into Locations.
type Source struct {
	Name string
	Text []byte

	lines []int
}

// NewSource indexes text under the given name.
func NewSource(name string, text []byte) Source {
	src := Source{Name: name, Text: text, lines: []int{0}}
	for i, b := range text {
		if b == '\n' {
			src.lines = append(src.lines, i+1)
		}
	}
	return src
}

// Read reads all of r into a new Source, named after r if it implements
// Name() string (as *os.File does).
func Read(r io.Reader) (Source, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return Source{}, err
	}
	return NewSource(nameOf(r), text), nil
}

// Locate returns the 1-based line and column of the given byte offset.
// Offsets past the end locate just after the last byte.
func (src Source) Locate(offset int) Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src.Text) {
		offset = len(src.Text)
	}
	lines := src.lines
	if len(lines) == 0 {
		lines = []int{0}
	}
	// index of the last line start <= offset
	i := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
	return Location{
		Name: src.Name,
		Line: i + 1,
		Col:  offset - lines[i] + 1,
	}
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
