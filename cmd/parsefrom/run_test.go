package main

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apstndb/parsefrom"
	"github.com/apstndb/parsefrom/combinator"
)

func newTestApp(t *testing.T, fs afero.Fs, args ...string) (*app, *strings.Builder, *strings.Builder) {
	t.Helper()
	opts, files, err := parseOptions(args, fs, nil, io.Discard)
	require.NoError(t, err)
	cfg, err := resolveConfig(opts, files)
	require.NoError(t, err)

	var stdout, stderr strings.Builder
	return &app{
		config:  cfg,
		fs:      fs,
		stdout:  &stdout,
		stderr:  &stderr,
		logger:  zap.NewNop(),
		palette: newPalette(false),
	}, &stdout, &stderr
}

// scriptedReader returns one chunk per Read and then end.
type scriptedReader struct {
	chunks []string
	end    error
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, r.end
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestRunFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.txt", []byte("1\n2\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "b.txt", []byte("3\nx\n"), 0o644))

	var stdout, stderr strings.Builder
	err := run([]string{"-t", "[]u8", "-o", "json", "--no-color", "a.txt", "b.txt", "missing.txt"}, fs, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, exitCodeError, GetExitCode(err))

	wantOut := heredoc.Doc(`
		==> a.txt <==
		[
		  1,
		  2
		]
	`)
	if diff := cmp.Diff(wantOut, stdout.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, stderr.String(), "b.txt:2:1: error: expected end of input\n  x\n  ^\n")
	assert.Contains(t, stderr.String(), "error: failed to stat file missing.txt")
}

func TestRunStdin(t *testing.T) {
	var stdout, stderr strings.Builder
	err := run([]string{"-t", "map[char]u8", "-o", "yaml"}, afero.NewMemMapFs(), strings.NewReader("b=2\na = 1\n"), &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: 2\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunListShapes(t *testing.T) {
	var stdout strings.Builder
	err := run([]string{"--list-shapes"}, afero.NewMemMapFs(), strings.NewReader(""), &stdout, io.Discard)
	require.NoError(t, err)
	for _, want := range []string{"| SHAPE", "| u8 ", "| f64 "} {
		assert.Contains(t, stdout.String(), want)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		desc string
		args []string
		want string
	}{
		{"bad shape", []string{"-t", "[]u9"}, `invalid shape "[]u9"`},
		{"bad format", []string{"-o", "xml"}, `invalid output format "xml"`},
		{"bad policy", []string{"--duplicates", "newest"}, `invalid duplicate key policy "newest"`},
		{"stream with files", []string{"--stream", "a.txt"}, "--stream reads stdin"},
		{"zero chunk", []string{"--stream", "--chunk-size", "0"}, "--chunk-size must be positive"},
		{"negative width", []string{"--max-cell-width=-1"}, "--max-cell-width must not be negative"},
		{"bad log level", []string{"--log-level", "loud"}, "invalid --log-level"},
		{"missing config", []string{"--config", "nowhere.cnf"}, "Invalid config file"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			var stderr strings.Builder
			err := run(tt.args, afero.NewMemMapFs(), strings.NewReader(""), io.Discard, &stderr)
			assert.Equal(t, exitCodeUsage, GetExitCode(err))
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stderr strings.Builder
	err := run([]string{"--help"}, afero.NewMemMapFs(), strings.NewReader(""), io.Discard, &stderr)
	assert.NoError(t, err)
	assert.Contains(t, stderr.String(), "[OPTIONS] [FILE...]")
	assert.Contains(t, stderr.String(), "--type")
}

func TestParseOptionsConfigPrecedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/.parsefrom.cnf", []byte(heredoc.Doc(`
		[parsefrom]
		type = map[char]u8
		output = JSON
		duplicates = REJECT
	`)), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/work/.parsefrom.cnf", []byte(heredoc.Doc(`
		[parsefrom]
		output = TABLE
	`)), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/etc/extra.cnf", []byte(heredoc.Doc(`
		[parsefrom]
		chunk-size = 16
	`)), 0o644))

	t.Run("files in order", func(t *testing.T) {
		opts, files, err := parseOptions([]string{"--config", "/etc/extra.cnf", "in.txt"}, fs, []string{"/home/.parsefrom.cnf", "/work/.parsefrom.cnf", "/absent/.parsefrom.cnf"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, []string{"in.txt"}, files)
		assert.Equal(t, "map[char]u8", *opts.Type)
		assert.Equal(t, "TABLE", *opts.Output)
		assert.Equal(t, "REJECT", *opts.Duplicates)
		assert.Equal(t, 16, *opts.ChunkSize)
	})

	t.Run("environment overrides files", func(t *testing.T) {
		t.Setenv("PARSEFROM_FORMAT", "yaml")
		opts, _, err := parseOptions(nil, fs, []string{"/home/.parsefrom.cnf"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "yaml", *opts.Output)
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("PARSEFROM_SHAPE", "[]bool")
		opts, _, err := parseOptions([]string{"-t", "set[i8]"}, fs, []string{"/home/.parsefrom.cnf"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "set[i8]", *opts.Type)
	})
}

func TestReportDisplayColumn(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "wide.txt", []byte("あ=x\n"), 0o644))
	a, _, stderr := newTestApp(t, fs, "-t", "map[char]u8")

	err := a.run([]string{"wide.txt"})
	assert.Equal(t, exitCodeError, GetExitCode(err))
	assert.True(t, strings.HasPrefix(stderr.String(), "wide.txt:1:4: error: "), stderr.String())
	assert.Contains(t, stderr.String(), "\n  あ=x\n     ^\n")
}

func TestRunDuplicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "dup.txt", []byte("k=1\nk=2\n"), 0o644))

	a, stdout, _ := newTestApp(t, fs, "-t", "map[char]u8", "-o", "json", "--duplicates", "first")
	require.NoError(t, a.run([]string{"dup.txt"}))
	assert.Equal(t, "{\n  \"k\": 1\n}\n", stdout.String())

	a, _, stderr := newTestApp(t, fs, "-t", "map[char]u8", "--duplicates", "reject")
	assert.Equal(t, exitCodeError, GetExitCode(a.run([]string{"dup.txt"})))
	assert.Contains(t, stderr.String(), "dup.txt:2:1: error: unexpected input (duplicate): duplicate key k")
}

func TestParseStream(t *testing.T) {
	a, _, _ := newTestApp(t, afero.NewMemMapFs(), "--stream", "--chunk-size", "1", "-t", "[]u16")

	r := a.parseStream(stdinName, iotest.OneByteReader(strings.NewReader("12\n345\n6")))
	require.NoError(t, r.err)
	want := []any{parsefrom.Uint16(12), parsefrom.Uint16(345), parsefrom.Uint16(6)}
	if diff := cmp.Diff(want, r.value); diff != "" {
		t.Errorf("parseStream() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStreamNumberAcrossChunks(t *testing.T) {
	a, _, _ := newTestApp(t, afero.NewMemMapFs(), "--stream", "-t", "[]u16")

	r := a.parseStream(stdinName, &scriptedReader{chunks: []string{"1", "2", "\n3"}, end: io.EOF})
	require.NoError(t, r.err)
	want := []any{parsefrom.Uint16(12), parsefrom.Uint16(3)}
	if diff := cmp.Diff(want, r.value); diff != "" {
		t.Errorf("parseStream() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStreamStopsAtError(t *testing.T) {
	a, _, _ := newTestApp(t, afero.NewMemMapFs(), "--stream", "-t", "[]u16")

	// Reading past the bad chunk would surface the reader error instead.
	r := a.parseStream(stdinName, &scriptedReader{chunks: []string{"1\n", "x"}, end: errors.New("read past the error")})
	var perr *combinator.Error
	require.ErrorAs(t, r.err, &perr)
	assert.Equal(t, "<stdin>:2:1: expected end of input", perr.Error())
}

func TestParseStreamReadError(t *testing.T) {
	a, _, _ := newTestApp(t, afero.NewMemMapFs(), "--stream", "-t", "[]u16")

	r := a.parseStream(stdinName, iotest.ErrReader(errors.New("broken pipe")))
	assert.ErrorContains(t, r.err, "failed to read <stdin>: broken pipe")
}

func TestSafeReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("dir", 0o755))
	require.NoError(t, afero.WriteFile(fs, "big.txt", []byte("0123456789"), 0o644))

	b, err := safeReadFile(fs, "big.txt", 10)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(b))

	_, err = safeReadFile(fs, "big.txt", 9)
	assert.ErrorContains(t, err, "file big.txt too large: 10 bytes (max 9)")

	_, err = safeReadFile(fs, "dir", 0)
	assert.ErrorContains(t, err, "cannot read directory dir")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, exitCodeSuccess, GetExitCode(nil))
	assert.Equal(t, exitCodeError, GetExitCode(errors.New("boom")))
	assert.Equal(t, exitCodeUsage, GetExitCode(NewExitCodeError(exitCodeUsage)))
	assert.NoError(t, NewExitCodeError(exitCodeSuccess))
}
