//
// Copyright 2025 apstndb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/apstndb/lox"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	conciter "github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"spheric.cloud/xiter"

	"github.com/apstndb/parsefrom/combinator"
	"github.com/apstndb/parsefrom/input"
	"github.com/apstndb/parsefrom/internal/format"
	"github.com/apstndb/parsefrom/internal/shape"
)

const stdinName = "<stdin>"

type app struct {
	config

	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger

	palette palette
}

// result is the outcome of parsing one input.
type result struct {
	name  string
	src   string
	value any

	// err is a read error when src is empty and a parse error otherwise.
	err error
}

func (a *app) run(files []string) error {
	var results []result
	switch {
	case a.stream:
		results = []result{a.parseStream(stdinName, a.stdin)}
	case len(files) == 0:
		results = []result{a.parseReader(stdinName, a.stdin)}
	default:
		mapper := conciter.Mapper[string, result]{MaxGoroutines: a.jobs}
		results = mapper.Map(files, func(name *string) result {
			return a.parseFile(*name)
		})
	}

	for _, r := range results {
		if r.err != nil {
			a.report(r)
			continue
		}
		fmt.Fprint(a.stdout, lox.IfOrEmpty(len(results) > 1, "==> "+r.name+" <==\n"))
		if err := a.formatter(a.stdout, r.value, a.format); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.name, err)
		}
	}

	failed := xiter.Count(slices.Values(results), func(r result) bool { return r.err != nil })
	a.logger.Info("finished",
		zap.Stringer("shape", a.shape),
		zap.Int("inputs", len(results)),
		zap.Int("failed", failed))

	if failed > 0 {
		return NewExitCodeError(exitCodeError)
	}
	return nil
}

func (a *app) parseFile(name string) result {
	a.logger.Debug("reading file", zap.String("file", name))
	b, err := safeReadFile(a.fs, name, a.maxFileSize)
	if err != nil {
		return result{name: name, err: err}
	}
	return a.parse(name, string(b))
}

func (a *app) parseReader(name string, r io.Reader) result {
	b, err := io.ReadAll(r)
	if err != nil {
		return result{name: name, err: fmt.Errorf("failed to read %s: %w", name, err)}
	}
	return a.parse(name, string(b))
}

func (a *app) parse(name, src string) result {
	p := combinator.AllConsuming(combinator.Complete(a.shape.Parser()))
	_, v, err := p(input.New(src).Named(name))
	if err != nil {
		a.logger.Debug("parse failed", zap.String("file", name), zap.Error(err))
		return result{name: name, src: src, err: err}
	}
	return result{name: name, src: src, value: v}
}

// parseStream feeds r to the parser chunk by chunk. The buffer is parsed
// again whenever a chunk arrives, so an error in the input is reported
// without reading the rest of it. An incomplete outcome only asks for more
// data; a success is not final until r is exhausted.
func (a *app) parseStream(name string, r io.Reader) result {
	p := combinator.AllConsuming(a.shape.Parser())
	cur := input.NewStreaming("").Named(name)
	buf := make([]byte, a.chunkSize)

	// want is the buffer length the last incomplete outcome asked for.
	want := 0
	for {
		n, err := r.Read(buf)
		if n > 0 {
			cur = cur.Extend(string(buf[:n]))
			a.logger.Debug("chunk",
				zap.String("file", name),
				zap.Int("bytes", n),
				zap.Int("buffered", cur.Len()))
		}
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return result{name: name, err: fmt.Errorf("failed to read %s: %w", name, err)}
		}
		if n == 0 || cur.Len() < want {
			continue
		}

		_, _, perr := p(cur)
		var inc *combinator.Incomplete
		switch {
		case perr == nil:
			want = 0
		case errors.As(perr, &inc):
			want = inc.Input.Offset() + inc.Needed
		default:
			a.logger.Debug("parse failed before end of input", zap.String("file", name), zap.Error(perr))
			return result{name: name, src: cur.Remaining(), err: perr}
		}
	}

	cur = cur.Complete()
	_, v, err := combinator.Complete(p)(cur)
	if err != nil {
		a.logger.Debug("parse failed", zap.String("file", name), zap.Error(err))
		return result{name: name, src: cur.Remaining(), err: err}
	}
	return result{name: name, src: cur.Remaining(), value: v}
}

type palette struct {
	location, severity, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		location: color.New(color.Bold),
		severity: color.New(color.FgRed, color.Bold),
		caret:    color.New(color.FgGreen, color.Bold),
	}
	if !enabled {
		for _, c := range []*color.Color{p.location, p.severity, p.caret} {
			c.DisableColor()
		}
	}
	return p
}

// report writes a diagnostic for a failed result. Parse errors are shown as
// name:line:col with the column counted in display cells, followed by the
// offending line and a caret.
func (a *app) report(r result) {
	var perr *combinator.Error
	var inc *combinator.Incomplete
	var pos input.Position
	var msg string
	switch {
	case errors.As(r.err, &perr):
		pos, msg = perr.Position(), perr.Message()
	case errors.As(r.err, &inc):
		pos, msg = inc.Input.Position(), "incomplete input"
	default:
		fmt.Fprintf(a.stderr, "%s %v\n", a.palette.severity.Sprint("error:"), r.err)
		return
	}

	line := pos.LineText(r.src)
	col := runewidth.StringWidth(line[:min(max(pos.Column-1, 0), len(line))]) + 1
	fmt.Fprintf(a.stderr, "%s %s %s\n",
		a.palette.location.Sprintf("%s:%d:%d:", lo.Ternary(pos.Name != "", pos.Name, r.name), pos.Line, col),
		a.palette.severity.Sprint("error:"),
		msg)
	if line != "" {
		fmt.Fprintf(a.stderr, "  %s\n  %s%s\n", line, strings.Repeat(" ", col-1), a.palette.caret.Sprint("^"))
	}
}

// listShapes writes the scalar shapes of reg as a table.
func listShapes(w io.Writer, reg *shape.Registry) error {
	rows := xiter.Map(reg.All(), func(s shape.Scalar) format.Row {
		return format.Row{s.Name(), lo.Ternary(s.Comparable(), "yes", "no"), s.Description()}
	})
	return format.WriteTable(w, format.Row{"SHAPE", "KEY", "DESCRIPTION"}, slices.Collect(rows), format.Config{})
}
