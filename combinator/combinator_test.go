package combinator_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apstndb/parsefrom/combinator"
	"github.com/apstndb/parsefrom/input"
)

type result[T any] struct {
	Rest  string
	Value T
	Kind  combinator.ErrorKind
	Inc   bool
}

func run[T any](p combinator.Parser[T], in input.Cursor) result[T] {
	rest, v, err := p(in)
	if err != nil {
		return result[T]{Kind: combinator.KindOf(err), Inc: combinator.IsIncomplete(err)}
	}
	return result[T]{Rest: rest.Remaining(), Value: v}
}

func TestTag(t *testing.T) {
	tag := combinator.Tag("true")
	for _, tt := range []struct {
		desc string
		in   input.Cursor
		want result[string]
	}{
		{"match", input.New("true!"), result[string]{Rest: "!", Value: "true"}},
		{"mismatch", input.New("tru"), result[string]{Kind: combinator.KindTag}},
		{"case sensitive", input.New("True"), result[string]{Kind: combinator.KindTag}},
		{"streaming prefix", input.NewStreaming("tr"), result[string]{Inc: true}},
		{"streaming empty", input.NewStreaming(""), result[string]{Inc: true}},
		{"streaming mismatch", input.NewStreaming("tx"), result[string]{Kind: combinator.KindTag}},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(tag, tt.in)); diff != "" {
				t.Errorf("Tag() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTagNoCase(t *testing.T) {
	got := run(combinator.TagNoCase("null"), input.New("NuLL,"))
	want := result[string]{Rest: ",", Value: "NuLL"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TagNoCase() mismatch (-want +got):\n%s", diff)
	}
}

func TestDigit1(t *testing.T) {
	for _, tt := range []struct {
		desc string
		in   input.Cursor
		want result[string]
	}{
		{"stops at non digit", input.New("123a"), result[string]{Rest: "a", Value: "123"}},
		{"all digits", input.New("007"), result[string]{Value: "007"}},
		{"no digit", input.New("a1"), result[string]{Kind: combinator.KindDigit}},
		{"empty", input.New(""), result[string]{Kind: combinator.KindDigit}},
		{"streaming run reaches end", input.NewStreaming("12"), result[string]{Inc: true}},
		{"streaming terminated", input.NewStreaming("12\n"), result[string]{Rest: "\n", Value: "12"}},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(combinator.Digit1, tt.in)); diff != "" {
				t.Errorf("Digit1() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineEnding(t *testing.T) {
	for _, tt := range []struct {
		desc string
		in   input.Cursor
		want result[string]
	}{
		{"lf", input.New("\nx"), result[string]{Rest: "x", Value: "\n"}},
		{"crlf", input.New("\r\nx"), result[string]{Rest: "x", Value: "\r\n"}},
		{"lone cr", input.New("\rx"), result[string]{Kind: combinator.KindCrLf}},
		{"empty", input.New(""), result[string]{Kind: combinator.KindCrLf}},
		{"streaming cr", input.NewStreaming("\r"), result[string]{Inc: true}},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(combinator.LineEnding, tt.in)); diff != "" {
				t.Errorf("LineEnding() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnyChar(t *testing.T) {
	rest, r, err := combinator.AnyChar(input.New("√x"))
	require.NoError(t, err)
	assert.Equal(t, '√', r)
	assert.Equal(t, "x", rest.Remaining())

	_, _, err = combinator.AnyChar(input.New("\xff"))
	assert.Equal(t, combinator.KindChar, combinator.KindOf(err))

	_, _, err = combinator.AnyChar(input.NewStreaming("\xe2\x88"))
	assert.True(t, combinator.IsIncomplete(err))
}

func TestAlt(t *testing.T) {
	p := combinator.Alt(
		combinator.Value(1, combinator.Tag("one")),
		combinator.Value(2, combinator.Tag("two")),
	)

	rest, v, err := p(input.New("two!"))
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, "!", rest.Remaining())

	_, _, err = p(input.New("three"))
	var perr *combinator.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, combinator.KindAlt, perr.Kind)
	assert.Equal(t, `"one" or "two"`, perr.Expected)
	assert.Equal(t, `1:1: expected "one" or "two"`, err.Error())

	_, _, err = p(input.NewStreaming("tw"))
	assert.True(t, combinator.IsIncomplete(err), "incomplete must stop the search")
}

func TestCut(t *testing.T) {
	p := combinator.Alt(
		combinator.Preceded(combinator.Tag("a"), combinator.Cut(combinator.Tag("b"))),
		combinator.Tag("ac"),
	)
	_, _, err := p(input.New("ac"))
	assert.True(t, combinator.IsFailure(err))
	assert.False(t, combinator.Backtrackable(err))
	assert.Equal(t, combinator.KindTag, combinator.KindOf(err))
}

func TestOpt(t *testing.T) {
	p := combinator.Opt(combinator.Tag("-"))

	rest, v, err := p(input.New("-1"))
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "1", rest.Remaining())

	rest, v, err = p(input.New("1"))
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, "1", rest.Remaining())
}

func TestRecognize(t *testing.T) {
	p := combinator.Recognize(combinator.SeparatedPair(combinator.Digit1, combinator.Tag("."), combinator.Digit1))
	rest, v, err := p(input.New("12.5x"))
	require.NoError(t, err)
	assert.Equal(t, "12.5", v)
	assert.Equal(t, "x", rest.Remaining())
}

func TestAllConsumingAndEOF(t *testing.T) {
	p := combinator.AllConsuming(combinator.Digit1)
	_, _, err := p(input.New("12a"))
	var perr *combinator.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, combinator.KindEOF, perr.Kind)
	assert.Equal(t, 2, perr.Input.Offset())

	_, _, err = combinator.EOF(input.New(""))
	assert.NoError(t, err)
	_, _, err = combinator.EOF(input.NewStreaming(""))
	assert.True(t, combinator.IsIncomplete(err))
}

func TestComplete(t *testing.T) {
	_, _, err := combinator.Complete(combinator.Digit1)(input.NewStreaming("12"))
	assert.True(t, combinator.IsMismatch(err))
	assert.Equal(t, combinator.KindEOF, combinator.KindOf(err))
	assert.True(t, errors.Is(err, combinator.ErrIncomplete), "the incomplete cause stays in the chain")
}

func TestMany0(t *testing.T) {
	p := combinator.Many0(combinator.Tag("ab"))
	rest, v, err := p(input.New("ababa"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "ab"}, v)
	assert.Equal(t, "a", rest.Remaining())

	_, _, err = combinator.Many0(combinator.Digit0)(input.New("x"))
	assert.Equal(t, combinator.KindMany, combinator.KindOf(err))
}

func TestMany1(t *testing.T) {
	_, _, err := combinator.Many1(combinator.Tag("ab"))(input.New("x"))
	assert.Equal(t, combinator.KindTag, combinator.KindOf(err))
}

func TestSeparatedList0(t *testing.T) {
	p := combinator.SeparatedList0(combinator.Tag(","), combinator.Digit1)
	for _, tt := range []struct {
		desc string
		in   string
		want result[[]string]
	}{
		{"empty", "", result[[]string]{}},
		{"one", "1", result[[]string]{Value: []string{"1"}}},
		{"many", "1,22,3;", result[[]string]{Rest: ";", Value: []string{"1", "22", "3"}}},
		{"dangling separator", "1,2,", result[[]string]{Rest: ",", Value: []string{"1", "2"}}},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(p, input.New(tt.in))); diff != "" {
				t.Errorf("SeparatedList0() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeparatedCount(t *testing.T) {
	p := combinator.SeparatedCount(combinator.Tag(","), combinator.Digit1, 3)

	rest, v, err := p(input.New("1,2,3,4"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, v)
	assert.Equal(t, ",4", rest.Remaining())

	_, _, err = p(input.New("1,2"))
	var perr *combinator.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, combinator.KindCount, perr.Kind)
	assert.Equal(t, `1:4: expected 3 elements, found 2: expected ","`, err.Error())
}

func TestCount(t *testing.T) {
	rest, v, err := combinator.Count(combinator.AnyChar, 2)(input.New("abc"))
	require.NoError(t, err)
	assert.Equal(t, []rune{'a', 'b'}, v)
	assert.Equal(t, "c", rest.Remaining())
}

func TestVerify(t *testing.T) {
	lo, hi := 1, 3
	digit := combinator.MapRes(combinator.Digit1, func(s string) (int, error) {
		return int(s[0] - '0'), nil
	})
	p := combinator.Verify(digit, combinator.RangeValidator(&lo, &hi))

	_, v, err := p(input.New("2"))
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, _, err = p(input.New("7"))
	assert.True(t, combinator.Backtrackable(err))
	assert.Equal(t, combinator.KindVerify, combinator.KindOf(err))
	assert.Equal(t, "1:1: unexpected input (verify): value 7 is greater than maximum 3", err.Error())
}

func TestChainValidators(t *testing.T) {
	min := 10
	v := combinator.ChainValidators(
		combinator.RangeValidator(&min, nil),
		func(v int) error {
			if v%2 != 0 {
				return errors.New("odd")
			}
			return nil
		},
	)
	assert.NoError(t, v(12))
	assert.EqualError(t, v(9), "value 9 is less than minimum 10")
	assert.EqualError(t, v(11), "odd")
}

func TestEnum(t *testing.T) {
	p := combinator.NewEnum(map[string]int{"u1": 1, "u16": 16, "u8": 8})

	for _, tt := range []struct {
		desc string
		in   input.Cursor
		want result[int]
	}{
		{"longest match", input.New("u16]"), result[int]{Rest: "]", Value: 16}},
		{"short match", input.New("u1]"), result[int]{Rest: "]", Value: 1}},
		{"no match", input.New("u3"), result[int]{Kind: combinator.KindTag}},
		{"case sensitive", input.New("U8"), result[int]{Kind: combinator.KindTag}},
		{"streaming ambiguous", input.NewStreaming("u1"), result[int]{Inc: true}},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(p.Parse, tt.in)); diff != "" {
				t.Errorf("Enum.Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, _, err := p.Parse(input.New("x"))
	assert.EqualError(t, err, `1:1: expected one of "u1", "u16", "u8"`)

	_, v, err := combinator.NewEnum(map[string]int{"yes": 1}).CaseInsensitive().Parse(input.New("YeS"))
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestErrorPredicates(t *testing.T) {
	mismatch := combinator.NewError(input.New("x"), combinator.KindDigit, "digit")
	rangeErr := combinator.NewError(input.New("x"), combinator.KindRange, "uint8")

	assert.True(t, combinator.IsMismatch(mismatch))
	assert.False(t, combinator.IsRange(mismatch))
	assert.False(t, combinator.IsMismatch(rangeErr))
	assert.True(t, combinator.IsRange(rangeErr))
	assert.True(t, combinator.Backtrackable(rangeErr))
	assert.Equal(t, "1:1: value out of range for uint8", rangeErr.Error())

	inc := &combinator.Incomplete{Input: input.NewStreaming(""), Needed: 2}
	assert.True(t, combinator.IsIncomplete(inc))
	assert.False(t, combinator.Backtrackable(inc))
	assert.Equal(t, "1:1: incomplete input: need 2 more bytes", inc.Error())
}
