// Package hlog wires zerolog behind the logr API for the whole program.
package hlog

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/kardianos/service"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger logr.Logger

func LogToStderr() bool {
	return os.Getenv("BLYNKCTL_LOG") == "stderr"
}

// Init configures the global Logger. Errors only by default; --verbose
// raises to info, --debug to debug.
func Init(verbose, debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"

	var w io.Writer
	if LogToStderr() || IsTerminal() {
		w = os.Stderr
	} else {
		w = logWriter()
	}

	zl := zerolog.New(w)
	if IsTerminal() {
		zl = zl.Output(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.InfoLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zl = zl.Level(level)

	zl = zl.With().Caller().Timestamp().Logger()
	Logger = zerologr.New(&zl)
}

func logWriter() io.Writer {
	if service.Interactive() {
		return os.Stderr
	}

	// Running under systemd: let journald capture stderr.
	if os.Getenv("JOURNAL_STREAM") != "" || os.Getenv("INVOCATION_ID") != "" {
		return os.Stderr
	}

	logDir := getLogDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return os.Stderr
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "blynkctl.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// GetLogger returns a named child of the global Logger.
func GetLogger(name string) logr.Logger {
	return Logger.WithName(name)
}
