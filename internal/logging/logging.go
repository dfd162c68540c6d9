package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger.
type Options struct {
	// Level is a zerolog level name; unknown or empty means info.
	Level string
	// Console receives human-readable output; nil means stderr.
	Console io.Writer
	// File, when set, also receives JSON lines through a rotating writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger().Level(zerolog.InfoLevel)

// Setup replaces the process logger. The returned closer releases the log
// file, if any.
func Setup(opt Options) (zerolog.Logger, io.Closer) {
	console := opt.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339, NoColor: console != os.Stderr}}
	var closer io.Closer = nopCloser{}
	if opt.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opt.File,
			MaxSize:    opt.MaxSizeMB,
			MaxBackups: opt.MaxBackups,
		}
		writers = append(writers, lj)
		closer = lj
	}
	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().Timestamp().Logger().
		Level(ParseLevel(opt.Level))
	return logger, closer
}

// L returns the process logger.
func L() *zerolog.Logger { return &logger }

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
