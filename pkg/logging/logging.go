// Package logging builds the structured loggers used to report patch diagnostics.
//
// Diagnostics are slog records. A logger can fan out to a human readable console handler and to a
// JSON file handler at the same time, and the Recorder handler keeps records in memory so tests and
// the inspector can look at them afterwards.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// LevelTrace is more verbose than slog.LevelDebug. Used for anchor search details
const LevelTrace = slog.Level(-8)

var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses trace, debug, info, warn or error (case insensitive)
func ParseLevel(text string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return 0, fmt.Errorf("%w: '%v' (expected trace, debug, info, warn or error)", ErrInvalidLevel, text)
}

// LevelName returns the name of a level, including trace
func LevelName(level slog.Level) string {
	if level == LevelTrace {
		return "TRACE"
	}
	return level.String()
}

func replaceLevel(groups []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey && len(groups) == 0 {
		if level, ok := attr.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, LevelName(level))
		}
	}
	return attr
}

// Options configures the handlers of a logger
type Options struct {
	Level slog.Level
	// Console receives human readable records. Nil disables console output
	Console io.Writer
	// File is the path of a JSON lines log file. Empty disables file output
	File string
	// Extra handlers receiving every record, such as a Recorder
	Extra []slog.Handler
}

// New creates a logger fanning out to all configured handlers. The returned close function
// flushes and closes the log file, if any
func New(options Options) (*slog.Logger, func() error, error) {
	handlerOptions := &slog.HandlerOptions{Level: options.Level, ReplaceAttr: replaceLevel}
	handlers := append([]slog.Handler(nil), options.Extra...)
	closeFn := func() error { return nil }

	if options.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(options.Console, handlerOptions))
	}

	if options.File != "" {
		file, err := os.OpenFile(options.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}

		handlers = append(handlers, slog.NewJSONHandler(file, handlerOptions))
		closeFn = file.Close
	}

	if len(handlers) == 0 {
		return Discard(), closeFn, nil
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}

// Discard returns a logger dropping every record
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
