package input

import (
	"fmt"
	"strings"
)

// Position describes a location in the input.
// Line and Column are 1-based; Column counts bytes.
type Position struct {
	Name   string
	Offset int
	Line   int
	Column int
}

// IsValid reports whether the position has line information.
func (p Position) IsValid() bool { return p.Line > 0 }

// LineText returns the text of the line the position is on, without the line
// terminator. src must be the buffer the position was computed from.
func (p Position) LineText(src string) string {
	start := p.Offset - (p.Column - 1)
	if start < 0 || start > len(src) {
		return ""
	}
	line := src[start:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSuffix(line, "\r")
}

func (p Position) String() string {
	s := p.Name
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

func positionAt(name, src string, off int) Position {
	before := src[:off]
	line := strings.Count(before, "\n") + 1
	col := off + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		col = off - i
	}
	return Position{Name: name, Offset: off, Line: line, Column: col}
}
