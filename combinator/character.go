package combinator

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/apstndb/parsefrom/input"
)

// Tag matches the literal lit exactly.
func Tag(lit string) Parser[string] {
	expected := strconv.Quote(lit)
	return func(in input.Cursor) (input.Cursor, string, error) {
		if in.HasPrefix(lit) {
			return in.Advance(len(lit)), lit, nil
		}
		if rem := in.Remaining(); in.IsStreaming() && len(rem) < len(lit) && strings.HasPrefix(lit, rem) {
			return in, "", incomplete(in, len(lit)-len(rem))
		}
		return in, "", NewError(in, KindTag, expected)
	}
}

// TagNoCase matches lit ignoring ASCII and Unicode simple case folding. The
// value is the matched input, not lit.
func TagNoCase(lit string) Parser[string] {
	expected := strconv.Quote(lit)
	return func(in input.Cursor) (input.Cursor, string, error) {
		rem := in.Remaining()
		if len(rem) >= len(lit) && strings.EqualFold(rem[:len(lit)], lit) {
			return take(in, len(lit))
		}
		if in.IsStreaming() && len(rem) < len(lit) && strings.EqualFold(rem, lit[:len(rem)]) {
			return in, "", incomplete(in, len(lit)-len(rem))
		}
		return in, "", NewError(in, KindTag, expected)
	}
}

// AnyChar consumes a single UTF-8 encoded code point.
func AnyChar(in input.Cursor) (input.Cursor, rune, error) {
	rem := in.Remaining()
	if len(rem) == 0 {
		if in.IsStreaming() {
			return in, 0, incomplete(in, 1)
		}
		return in, 0, NewError(in, KindEOF, "character")
	}
	if in.IsStreaming() && !utf8.FullRuneInString(rem) {
		return in, 0, incomplete(in, 0)
	}
	r, size := utf8.DecodeRuneInString(rem)
	if r == utf8.RuneError && size <= 1 {
		return in, 0, NewError(in, KindChar, "valid UTF-8")
	}
	return in.Advance(size), r, nil
}

// Satisfy consumes one code point for which pred returns true. desc names the
// expected class of characters in errors.
func Satisfy(desc string, pred func(rune) bool) Parser[rune] {
	return func(in input.Cursor) (input.Cursor, rune, error) {
		rest, r, err := AnyChar(in)
		if err != nil {
			if e, ok := err.(*Error); ok {
				e.Expected = desc
			}
			return in, 0, err
		}
		if !pred(r) {
			return in, 0, NewError(in, KindChar, desc)
		}
		return rest, r, nil
	}
}

// Char matches the single code point c.
func Char(c rune) Parser[rune] {
	return Satisfy(strconv.QuoteRune(c), func(r rune) bool { return r == c })
}

// TakeWhile0 consumes bytes while pred holds. In streaming mode it reports an
// incomplete outcome when the run reaches the end of the buffer.
func TakeWhile0(pred func(byte) bool) Parser[string] {
	return func(in input.Cursor) (input.Cursor, string, error) {
		return takeWhile(in, 0, KindUnknown, "", pred)
	}
}

// TakeWhile1 is like TakeWhile0 but requires at least one byte. desc names
// the expected bytes in errors.
func TakeWhile1(desc string, pred func(byte) bool) Parser[string] {
	return func(in input.Cursor) (input.Cursor, string, error) {
		return takeWhile(in, 1, KindChar, desc, pred)
	}
}

func takeWhile(in input.Cursor, min int, kind ErrorKind, expected string, pred func(byte) bool) (input.Cursor, string, error) {
	rem := in.Remaining()
	n := 0
	for n < len(rem) && pred(rem[n]) {
		n++
	}
	if n == len(rem) && in.IsStreaming() {
		return in, "", incomplete(in, max(min-n, 1))
	}
	if n < min {
		return in, "", NewError(in, kind, expected)
	}
	return take(in, n)
}

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool { return '0' <= b && b <= '9' }

// IsSpace reports whether b is a space or a horizontal tab.
func IsSpace(b byte) bool { return b == ' ' || b == '\t' }

// Digit0 consumes zero or more ASCII digits.
func Digit0(in input.Cursor) (input.Cursor, string, error) {
	return takeWhile(in, 0, KindDigit, "digit", IsDigit)
}

// Digit1 consumes one or more ASCII digits.
func Digit1(in input.Cursor) (input.Cursor, string, error) {
	return takeWhile(in, 1, KindDigit, "digit", IsDigit)
}

// Space0 consumes zero or more spaces and tabs.
func Space0(in input.Cursor) (input.Cursor, string, error) {
	return takeWhile(in, 0, KindSpace, "space", IsSpace)
}

// Space1 consumes one or more spaces and tabs.
func Space1(in input.Cursor) (input.Cursor, string, error) {
	return takeWhile(in, 1, KindSpace, "space", IsSpace)
}

// LineEnding matches "\n" or "\r\n".
func LineEnding(in input.Cursor) (input.Cursor, string, error) {
	rem := in.Remaining()
	switch {
	case strings.HasPrefix(rem, "\n"):
		return take(in, 1)
	case strings.HasPrefix(rem, "\r\n"):
		return take(in, 2)
	case in.IsStreaming() && (rem == "" || rem == "\r"):
		return in, "", incomplete(in, 1)
	default:
		return in, "", NewError(in, KindCrLf, "line ending")
	}
}

// EOF succeeds without consuming input when the input is exhausted. A
// streaming cursor never knows that, so it reports an incomplete outcome at
// the end of its buffer.
func EOF(in input.Cursor) (input.Cursor, struct{}, error) {
	switch {
	case !in.IsEmpty():
		return in, struct{}{}, NewError(in, KindEOF, "end of input")
	case in.IsStreaming():
		return in, struct{}{}, incomplete(in, 0)
	default:
		return in, struct{}{}, nil
	}
}

func take(in input.Cursor, n int) (input.Cursor, string, error) {
	s, rest := in.Split(n)
	return rest, s, nil
}
