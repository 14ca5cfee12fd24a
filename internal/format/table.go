package format

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/apstndb/go-runewidthex"
	"github.com/mattn/go-runewidth"
	"github.com/ngicks/go-iterator-helper/hiter"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Row is a row of rendered cells.
type Row = []string

// formatTable renders sequences and sets with an index column, mappings with
// key and value columns and scalars as a single cell.
func formatTable(out io.Writer, v any, config Config) error {
	header, rows, err := tableRows(Normalize(v))
	if err != nil {
		return err
	}
	return writeBuffered(out, func(out io.Writer) error {
		return WriteTable(out, header, rows, config)
	})
}

func tableRows(v any) (Row, []Row, error) {
	switch v := v.(type) {
	case []any:
		rows := make([]Row, 0, len(v))
		for i, e := range v {
			c, err := cell(e)
			if err != nil {
				return nil, nil, err
			}
			rows = append(rows, Row{strconv.Itoa(i), c})
		}
		return Row{"#", "VALUE"}, rows, nil
	case []Entry:
		rows := make([]Row, 0, len(v))
		for _, e := range v {
			c, err := cell(e.Value)
			if err != nil {
				return nil, nil, err
			}
			rows = append(rows, Row{keyString(e.Key), c})
		}
		return Row{"KEY", "VALUE"}, rows, nil
	default:
		c, err := cell(v)
		if err != nil {
			return nil, nil, err
		}
		return Row{"VALUE"}, []Row{{c}}, nil
	}
}

// cell renders scalars as text and nested containers as compact JSON.
func cell(v any) (string, error) {
	switch v.(type) {
	case []any, []Entry:
		b, err := marshalJSON(v)
		return string(b), err
	case nil:
		return "NULL", nil
	default:
		return fmt.Sprint(v), nil
	}
}

// WriteTable writes an ASCII table to w.
func WriteTable(w io.Writer, header Row, rows []Row, config Config) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(
			renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithTrimSpace(tw.Off),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	).Configure(func(twConfig *tablewriter.Config) {
		twConfig.Row.Formatting.AutoWrap = tw.WrapNone
	})

	widths := columnWidths(header, rows, config.MaxCellWidth)

	fit := truncate
	if config.Wrap {
		rw := runewidthex.NewCondition()
		rw.TabWidth = cmp.Or(config.TabWidth, 4)
		fit = func(s string, width int) string {
			if width <= 0 {
				return s
			}
			return rw.Wrap(s, width)
		}
	}

	table.Header(slices.Collect(hiter.Unify(
		fit,
		hiter.Pairs(slices.Values(header), slices.Values(widths)))))

	for _, row := range rows {
		fitted := slices.Collect(hiter.Unify(
			fit,
			hiter.Pairs(slices.Values(row), slices.Values(widths))))
		if err := table.Append(fitted); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// columnWidths returns the display width of each column capped at maxWidth.
// A maxWidth of 0 means no cap and yields 0 for every column.
func columnWidths(header Row, rows []Row, maxWidth int) []int {
	widths := make([]int, len(header))
	if maxWidth <= 0 {
		return widths
	}
	for i := range header {
		w := runewidth.StringWidth(header[i])
		for _, row := range rows {
			if i < len(row) {
				w = max(w, runewidth.StringWidth(row[i]))
			}
		}
		widths[i] = min(w, maxWidth)
	}
	return widths
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
