//
// Copyright 2025 Google LLC
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

// Command parsefrom parses text files into values of a shape given on the
// command line and prints them in one of several formats.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/apstndb/parsefrom/enums"
	"github.com/apstndb/parsefrom/internal/format"
	"github.com/apstndb/parsefrom/internal/shape"
)

type globalOptions struct {
	ParseFrom parseFromOptions `group:"parsefrom"`
}

// We can't use `default` because parsefrom uses multiple flags.NewParser() to process config files and flags.
type parseFromOptions struct {
	Config       string  `long:"config" no-ini:"true" description:"Read options from this file after .parsefrom.cnf in the home and current directories."`
	Type         *string `long:"type" short:"t" env:"PARSEFROM_SHAPE" description:"Shape of the input, e.g. []i64, [3]f64, set[char] or map[char]u8." default-mask:"[]i64"`
	Output       *string `long:"output" short:"o" env:"PARSEFROM_FORMAT" description:"Output format (TEXT|JSON|YAML|TABLE)." default-mask:"TEXT"`
	Duplicates   *string `long:"duplicates" description:"What a map shape does with a repeated key (LAST|FIRST|REJECT)." default-mask:"LAST"`
	Stream       bool    `long:"stream" description:"Read stdin in chunks and stop at the first error without waiting for the end of input."`
	ChunkSize    *int    `long:"chunk-size" description:"Chunk size in bytes for --stream." default-mask:"4096"`
	Jobs         *int    `long:"jobs" short:"j" description:"Number of files parsed concurrently." default-mask:"number of CPUs"`
	MaxFileSize  *int64  `long:"max-file-size" description:"Refuse input files larger than this many bytes." default-mask:"104857600"`
	MaxCellWidth *int    `long:"max-cell-width" description:"Truncate table cells to this display width. 0 disables truncation." default-mask:"0"`
	Wrap         bool    `long:"wrap" description:"Wrap table cells wider than --max-cell-width instead of truncating them."`
	LogLevel     *string `long:"log-level" description:"Log level (DEBUG|INFO|WARN|ERROR)." default-mask:"WARN"`
	NoColor      bool    `long:"no-color" description:"Disable colored output."`
	ListShapes   bool    `long:"list-shapes" no-ini:"true" description:"List the scalar shapes and exit."`
	Help         bool    `long:"help" short:"h" hidden:"true"`
}

const (
	defaultShape     = "[]i64"
	defaultOutput    = "TEXT"
	defaultDuplicate = "LAST"
	defaultChunkSize = 4096
	defaultLogLevel  = "WARN"
)

var longDescription = heredoc.Doc(`
	parsefrom reads each FILE, or stdin when no FILE is given, as a value of
	the shape given by --type and prints it.

	Scalar shapes are listed by --list-shapes. They compose as
	  []S       one S per line
	  [N]S      exactly N comma separated S
	  set[S]    one S per line, repeated values merge
	  map[K]V   one K=V entry per line, K must be a scalar

	Options are also read from the [parsefrom] section of .parsefrom.cnf in
	the home directory and in the current directory.
`)

// errHelp is returned by parseOptions after the help message was written.
var errHelp = errors.New("help requested")

func main() {
	os.Exit(GetExitCode(run(os.Args[1:], afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)))
}

func run(args []string, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, files, err := parseOptions(args, fs, defaultConfigFiles(), stderr)
	if errors.Is(err, errHelp) {
		return nil
	} else if err != nil {
		return err
	}

	if opts.ListShapes {
		return listShapes(stdout, shape.Builtins())
	}

	cfg, err := resolveConfig(opts, files)
	if err != nil {
		return usageErrorf(stderr, "parsefrom: %v\n", err)
	}

	if f, ok := stdin.(*os.File); ok && len(files) == 0 && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(stderr, "parsefrom: reading stdin, end the input with Ctrl-D")
	}

	logger, err := newLogger(lo.FromPtrOr(opts.LogLevel, defaultLogLevel))
	if err != nil {
		return usageErrorf(stderr, "parsefrom: %v\n", err)
	}
	defer func() { _ = logger.Sync() }()

	a := &app{
		config:  cfg,
		fs:      fs,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		palette: newPalette(cfg.format.Color),
	}
	return a.run(files)
}

func usageErrorf(w io.Writer, format string, a ...any) error {
	fmt.Fprintf(w, format, a...)
	return NewExitCodeError(exitCodeUsage)
}

func newHelpParser() *flags.Parser {
	parser := flags.NewParser(&globalOptions{}, flags.Default)
	parser.Usage = "[OPTIONS] [FILE...]"
	parser.LongDescription = longDescription
	return parser
}

func parseOptions(args []string, fs afero.Fs, cnfFiles []string, stderr io.Writer) (*parseFromOptions, []string, error) {
	var gopts globalOptions

	// --config must be known before the config files are read.
	var pre struct {
		Config string `long:"config"`
	}
	_, _ = flags.NewParser(&pre, flags.IgnoreUnknown).ParseArgs(args)

	// process config files at first
	configFileParser := flags.NewParser(&gopts, flags.Default)
	if err := readConfigFiles(fs, configFileParser, cnfFiles, pre.Config); err != nil {
		return nil, nil, usageErrorf(stderr, "Invalid config file: %v\n", err)
	}

	// then, process environment variables and command line options
	// use another parser to process environment variables with higher precedence than configuration files
	flagParser := flags.NewParser(&gopts, flags.PrintErrors|flags.PassDoubleDash)

	// Workaround to avoid to display config value as default
	parserForHelp := newHelpParser()

	files, err := flagParser.ParseArgs(args)
	if flags.WroteHelp(err) {
		return nil, nil, errHelp
	} else if err != nil {
		parserForHelp.WriteHelp(stderr)
		return nil, nil, usageErrorf(stderr, "Invalid options\n")
	} else if gopts.ParseFrom.Help {
		parserForHelp.WriteHelp(stderr)
		return nil, nil, errHelp
	}

	return &gopts.ParseFrom, files, nil
}

// config is the validated form of parseFromOptions.
type config struct {
	shape       shape.Shape
	formatter   format.Func
	format      format.Config
	stream      bool
	chunkSize   int
	jobs        int
	maxFileSize int64
}

func resolveConfig(opts *parseFromOptions, files []string) (config, error) {
	duplicates, err := enums.ParseDuplicatePolicy(lo.FromPtrOr(opts.Duplicates, defaultDuplicate))
	if err != nil {
		return config{}, err
	}

	s, err := shape.Parse(lo.FromPtrOr(opts.Type, defaultShape), shape.Options{Duplicates: duplicates})
	if err != nil {
		return config{}, err
	}

	outputFormat, err := enums.ParseOutputFormat(lo.FromPtrOr(opts.Output, defaultOutput))
	if err != nil {
		return config{}, err
	}

	formatter, err := format.New(outputFormat)
	if err != nil {
		return config{}, err
	}

	cfg := config{
		shape:     s,
		formatter: formatter,
		format: format.Config{
			Color:        !opts.NoColor && !color.NoColor,
			MaxCellWidth: lo.FromPtrOr(opts.MaxCellWidth, 0),
			Wrap:         opts.Wrap,
		},
		stream:      opts.Stream,
		chunkSize:   lo.FromPtrOr(opts.ChunkSize, defaultChunkSize),
		jobs:        lo.FromPtrOr(opts.Jobs, runtime.NumCPU()),
		maxFileSize: lo.FromPtrOr(opts.MaxFileSize, defaultMaxFileSize),
	}

	switch {
	case cfg.stream && len(files) > 0:
		return config{}, errors.New("--stream reads stdin and cannot be combined with files")
	case cfg.chunkSize <= 0:
		return config{}, fmt.Errorf("--chunk-size must be positive: %d", cfg.chunkSize)
	case cfg.jobs <= 0:
		return config{}, fmt.Errorf("--jobs must be positive: %d", cfg.jobs)
	case cfg.format.MaxCellWidth < 0:
		return config{}, fmt.Errorf("--max-cell-width must not be negative: %d", cfg.format.MaxCellWidth)
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	zapDevelopmentConfig := zap.NewDevelopmentConfig()
	zapDevelopmentConfig.Level = zap.NewAtomicLevelAt(lvl)
	zapDevelopmentConfig.DisableStacktrace = true
	return zapDevelopmentConfig.Build()
}

const cnfFileName = ".parsefrom.cnf"

func defaultConfigFiles() []string {
	var cnfFiles []string
	if currentUser, err := user.Current(); err == nil {
		cnfFiles = append(cnfFiles, filepath.Join(currentUser.HomeDir, cnfFileName))
	}

	cwd, _ := os.Getwd() // ignore err
	return append(cnfFiles, filepath.Join(cwd, cnfFileName))
}

// readConfigFiles applies the existing files of cnfFiles and then explicit,
// which must exist if it is given.
func readConfigFiles(fs afero.Fs, parser *flags.Parser, cnfFiles []string, explicit string) error {
	iniParser := flags.NewIniParser(parser)
	for _, cnfFile := range cnfFiles {
		// skip if missing
		if exists, err := afero.Exists(fs, cnfFile); err != nil || !exists {
			continue
		}
		if err := readConfigFile(fs, iniParser, cnfFile); err != nil {
			return err
		}
	}

	if explicit == "" {
		return nil
	}
	return readConfigFile(fs, iniParser, explicit)
}

func readConfigFile(fs afero.Fs, iniParser *flags.IniParser, name string) error {
	f, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := iniParser.Parse(f); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
