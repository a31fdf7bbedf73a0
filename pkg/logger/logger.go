// Package logger is a thin process-wide wrapper around zerolog.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	log     = zerolog.New(os.Stdout).With().Timestamp().Logger()
	logFile *os.File
)

// Options configures InitLogger.
type Options struct {
	Level string // zerolog level name; defaults to info
	// Format is "json" (default) or "console" for a human-friendly writer.
	Format string
	// File, when set, receives a copy of every log line.
	File string
}

// InitLogger replaces the process logger. It writes to stdout and, when
// opts.File is set, appends to that file as well.
func InitLogger(opts Options) error {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		level = l
	}

	var console io.Writer = os.Stdout
	if opts.Format == "console" {
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{console}
	var f *os.File
	if opts.File != "" {
		var err error
		f, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	log = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	return nil
}

// SetOutput points the logger at w with the given level. Intended for tests.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Close releases the log file, if any, and falls back to stdout.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
		log = zerolog.New(os.Stdout).Level(log.GetLevel()).With().Timestamp().Logger()
	}
}

// Get returns the current logger for structured use.
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Info(msg string) { Get().Info().Msg(msg) }

func Infof(format string, v ...interface{}) { Get().Info().Msgf(format, v...) }

func Debugf(format string, v ...interface{}) { Get().Debug().Msgf(format, v...) }

func Warnf(format string, v ...interface{}) { Get().Warn().Msgf(format, v...) }

func Errorf(format string, v ...interface{}) { Get().Error().Msgf(format, v...) }
