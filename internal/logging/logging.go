// Package logging configures the process-wide zerolog logger: a
// severity-prefixed console stream for the user and a JSON log file under
// the XDG state directory for later inspection.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	appDirName  = "zshsetup"
	logFileName = "zshsetup.log"
)

// Options controls Setup. The zero value logs info and above to stderr and
// appends to the default log file.
type Options struct {
	Verbosity int
	Console   io.Writer
	// LogFile overrides the default path. Set NoFile to skip the file.
	LogFile string
	NoFile  bool
}

// Setup installs the global logger and returns a closer for the log file.
func Setup(opts Options) (io.Closer, error) {
	zerolog.SetGlobalLevel(levelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(console),
	}}

	var closer io.Closer = nopCloser{}
	var fileErr error
	path := opts.LogFile
	if !opts.NoFile {
		if path == "" {
			path = DefaultLogFile()
		}
		var f *os.File
		f, fileErr = openLogFile(path)
		if fileErr == nil {
			writers = append(writers, f)
			closer = f
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().
		Timestamp().
		Str("run_id", uuid.NewString())
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("could not open log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("log_file", path).Msg("logger initialized")

	return closer, nil
}

// GetLogger returns a logger tagged with the component name.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogCommand records an external command at debug level.
func LogCommand(name string, args []string) {
	log.Debug().Str("command", name).Strs("args", args).Msg("executing command")
}

// DefaultLogFile is $XDG_STATE_HOME/zshsetup/zshsetup.log.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, appDirName, logFileName)
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.InfoLevel
	case verbosity == 1:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
