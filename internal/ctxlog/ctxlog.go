// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/matt-FFFFFF/shx/internal/color"
)

const (
	// LevelEnv selects the minimum level: DEBUG, INFO, WARN or ERROR.
	LevelEnv = "SHX_LOG_LEVEL"
	// FormatEnv selects the handler: pretty, json or tint.
	FormatEnv = "SHX_LOG_FORMAT"

	formatPretty = "pretty"
	formatJSON   = "json"
	formatTint   = "tint"
)

type loggerKey struct{}

// LevelVar is shared by every logger built by this package.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is used when the context carries no logger.
var DefaultLogger = NewLogger(os.Stderr, os.Getenv(FormatEnv))

func init() {
	LevelVar.Set(levelFromString(os.Getenv(LevelEnv)))
}

// NewLogger builds a logger writing to w in the named format.
// Unknown formats fall back to the pretty handler.
func NewLogger(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: LevelVar}

	switch strings.ToLower(format) {
	case formatJSON:
		return slog.New(slog.NewJSONHandler(w, opts))
	case formatTint:
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      LevelVar,
			TimeFormat: time.TimeOnly,
			NoColor:    !color.Enabled(),
		}))
	default:
		return slog.New(NewPrettyHandler(opts, WithDestinationWriter(w), WithAutoColour()))
	}
}

// New returns a copy of ctx carrying logger. A nil logger stores DefaultLogger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger stored in ctx, or DefaultLogger.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// With returns a copy of ctx whose logger has the given attributes added.
func With(ctx context.Context, args ...any) context.Context {
	return New(ctx, Logger(ctx).With(args...))
}

// Debug logs at debug level with the logger from ctx.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).DebugContext(ctx, msg, args...)
}

// Info logs at info level with the logger from ctx.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).InfoContext(ctx, msg, args...)
}

// Warn logs at warn level with the logger from ctx.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).WarnContext(ctx, msg, args...)
}

// Error logs at error level with the logger from ctx.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).ErrorContext(ctx, msg, args...)
}

func levelFromString(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
