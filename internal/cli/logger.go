package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// loggerOptions selects where and how much is logged.
type loggerOptions struct {
	level      slog.Level
	file       string
	maxSizeMB  int
	maxBackups int
	console    io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger builds the CLI logger: human-readable records on the console
// at the configured level and, when a file is set, every record as JSON in
// a size-rotated log file. The returned closer releases the file.
func newLogger(o loggerOptions) (*slog.Logger, io.Closer, error) {
	console := slog.NewTextHandler(o.console, &slog.HandlerOptions{Level: o.level})
	if o.file == "" {
		return slog.New(console), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(o.file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	rotating := &lumberjack.Logger{
		Filename:   o.file,
		MaxSize:    o.maxSizeMB,
		MaxBackups: o.maxBackups,
	}
	file := slog.NewJSONHandler(rotating, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(teeHandler{console, file}), rotating, nil
}

// teeHandler hands each record to every handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
