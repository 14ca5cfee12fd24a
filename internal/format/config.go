package format

import "io"

// Config holds configuration values needed by formatters.
type Config struct {
	// Color enables syntax coloring in the text format.
	Color bool

	// MaxCellWidth truncates table cells to this many display cells.
	// 0 disables truncation.
	MaxCellWidth int

	// Wrap wraps cells wider than MaxCellWidth onto several lines instead
	// of truncating them.
	Wrap bool

	// TabWidth is the display width of a tab when cells are wrapped.
	TabWidth int
}

// Func is a function type that formats and writes one parsed value.
type Func func(out io.Writer, v any, config Config) error
