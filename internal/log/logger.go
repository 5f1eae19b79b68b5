// Package log provides slog-based logging for the scribe CLI. The
// library packages stay silent; only the command surface logs.
//
// Configuration comes from Options or environment variables:
//
//	SCRIBE_LOG_LEVEL=debug|info|warn|error
//	SCRIBE_LOG_FORMAT=console|json
//	SCRIBE_LOG_FILE=<path>   (enables rotated file logging)
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
type Options struct {
	Level  string // debug|info|warn|error (default info)
	Format string // console|json (default console)
	File   string // optional path; enables rotation
}

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// L returns the default logger, initializing from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	return Init(FromEnv())
}

// FromEnv builds Options from SCRIBE_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:  os.Getenv("SCRIBE_LOG_LEVEL"),
		Format: os.Getenv("SCRIBE_LOG_FORMAT"),
		File:   os.Getenv("SCRIBE_LOG_FILE"),
	}
}

// Init configures and installs the default logger.
func Init(opts Options) *slog.Logger {
	var out io.Writer = os.Stderr
	if opts.File != "" {
		out = &lj.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MiB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	hopts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, hopts)
	} else {
		handler = slog.NewTextHandler(out, hopts)
	}

	l := slog.New(handler)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	return l
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
