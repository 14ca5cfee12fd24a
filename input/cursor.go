// Package input provides the cursor type that parsers consume.
//
// A Cursor is an immutable view over the unconsumed part of an input buffer.
// Advancing a cursor never copies the underlying data; it only narrows the
// view. Every parse step returns a new Cursor for the remainder, so the same
// Cursor value can be handed to several alternative parsers.
//
// # Modes
//
// A cursor carries the mode it is parsed in:
//
//   - ModeComplete: the buffer holds the whole input. Reaching the end of the
//     buffer is a definitive outcome.
//   - ModeStreaming: the buffer may be a prefix of a longer input. Parsers that
//     cannot decide without more data report an incomplete outcome, and the
//     caller retries with a cursor obtained from Extend.
package input

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mode indicates whether the buffer behind a cursor is the whole input.
type Mode int

const (
	// ModeComplete treats the end of the buffer as the end of the input.
	ModeComplete Mode = iota

	// ModeStreaming treats the end of the buffer as a point where more data
	// may still arrive.
	ModeStreaming
)

func (m Mode) String() string {
	switch m {
	case ModeComplete:
		return "complete"
	case ModeStreaming:
		return "streaming"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Cursor is a position into an immutable input buffer.
// The zero value is an empty cursor in complete mode.
type Cursor struct {
	src  string
	off  int
	mode Mode
	name string
}

// New returns a cursor over s in complete mode.
func New(s string) Cursor {
	return Cursor{src: s}
}

// NewStreaming returns a cursor over s in streaming mode.
func NewStreaming(s string) Cursor {
	return Cursor{src: s, mode: ModeStreaming}
}

// NewWithMode returns a cursor over s in the given mode.
func NewWithMode(s string, mode Mode) Cursor {
	return Cursor{src: s, mode: mode}
}

// FromBytes returns a cursor in complete mode over a copy of b.
func FromBytes(b []byte) Cursor {
	return New(string(b))
}

// Named returns a copy of c that reports name as the source in positions.
func (c Cursor) Named(name string) Cursor {
	c.name = name
	return c
}

// Name returns the source name, if any.
func (c Cursor) Name() string { return c.name }

// Mode returns the parsing mode of the cursor.
func (c Cursor) Mode() Mode { return c.mode }

// IsStreaming reports whether the cursor is in streaming mode.
func (c Cursor) IsStreaming() bool { return c.mode == ModeStreaming }

// Remaining returns the unconsumed input.
func (c Cursor) Remaining() string { return c.src[c.off:] }

// Len returns the number of unconsumed bytes.
func (c Cursor) Len() int { return len(c.src) - c.off }

// IsEmpty reports whether all input has been consumed.
func (c Cursor) IsEmpty() bool { return c.off >= len(c.src) }

// Offset returns the byte offset of the cursor from the start of the buffer.
func (c Cursor) Offset() int { return c.off }

// HasPrefix reports whether the unconsumed input starts with lit.
func (c Cursor) HasPrefix(lit string) bool {
	return strings.HasPrefix(c.Remaining(), lit)
}

// PeekByte returns the next byte without consuming it.
func (c Cursor) PeekByte() (byte, bool) {
	if c.IsEmpty() {
		return 0, false
	}
	return c.src[c.off], true
}

// PeekRune decodes the next code point without consuming it.
// size is 0 when the cursor is empty.
func (c Cursor) PeekRune() (r rune, size int) {
	if c.IsEmpty() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.Remaining())
}

// Advance returns a cursor n bytes further. It panics if n is out of range,
// like slicing a string would.
func (c Cursor) Advance(n int) Cursor {
	if n < 0 || n > c.Len() {
		panic(fmt.Sprintf("input: advance %d out of range [0:%d]", n, c.Len()))
	}
	c.off += n
	return c
}

// Take returns the next n bytes without consuming them.
func (c Cursor) Take(n int) string {
	return c.src[c.off : c.off+n]
}

// Split returns the next n bytes and the cursor that follows them.
func (c Cursor) Split(n int) (string, Cursor) {
	return c.Take(n), c.Advance(n)
}

// Consumed returns the input between from and c. Both cursors must view the
// same buffer and from must not be ahead of c.
func (c Cursor) Consumed(from Cursor) string {
	if from.off > c.off {
		panic("input: cursor is behind the starting cursor")
	}
	return c.src[from.off:c.off]
}

// Extend returns a cursor at the same offset over the buffer followed by more.
// The mode is kept, so a streaming cursor stays streaming until Complete is
// called.
func (c Cursor) Extend(more string) Cursor {
	c.src += more
	return c
}

// Complete returns a copy of c in complete mode. Use it once the last chunk
// of a streamed input has been appended.
func (c Cursor) Complete() Cursor {
	c.mode = ModeComplete
	return c
}

// Position returns the line and column of the cursor.
func (c Cursor) Position() Position {
	return positionAt(c.name, c.src, c.off)
}

// String implements fmt.Stringer for debugging output.
func (c Cursor) String() string {
	const max = 16
	rest := c.Remaining()
	if len(rest) > max {
		rest = rest[:max] + "..."
	}
	return fmt.Sprintf("%v %q", c.Position(), rest)
}
