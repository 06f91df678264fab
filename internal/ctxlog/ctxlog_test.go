// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name          string
		ctx           func() context.Context
		expectDefault bool
	}{
		{
			name: "context with logger",
			ctx: func() context.Context {
				return New(context.Background(), slog.New(slog.DiscardHandler))
			},
		},
		{
			name:          "context without logger",
			ctx:           context.Background,
			expectDefault: true,
		},
		{
			name: "nil logger stores default",
			ctx: func() context.Context {
				return New(context.Background(), nil)
			},
			expectDefault: true,
		},
		{
			name: "wrong value type",
			ctx: func() context.Context {
				return context.WithValue(context.Background(), loggerKey{}, "not a logger")
			},
			expectDefault: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Logger(tt.ctx())
			require.NotNil(t, logger)

			if tt.expectDefault {
				assert.Same(t, DefaultLogger, logger)
			} else {
				assert.NotSame(t, DefaultLogger, logger)
			}
		})
	}
}

func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := New(context.Background(), logger)

	tests := []struct {
		name  string
		fn    func(context.Context, string, ...any)
		level string
	}{
		{name: "debug", fn: Debug, level: "DEBUG"},
		{name: "info", fn: Info, level: "INFO"},
		{name: "warn", fn: Warn, level: "WARN"},
		{name: "error", fn: Error, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(ctx, "hello", "key", "value")
			assert.Contains(t, buf.String(), "level="+tt.level)
			assert.Contains(t, buf.String(), "key=value")
		})
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer

	ctx := New(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	ctx = With(ctx, "task", "build")
	Warn(ctx, "careful")

	assert.Contains(t, buf.String(), "task=build")
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, levelFromString("debug"))
	assert.Equal(t, slog.LevelInfo, levelFromString("INFO"))
	assert.Equal(t, slog.LevelWarn, levelFromString("WARN"))
	assert.Equal(t, slog.LevelError, levelFromString("ERROR"))
	assert.Equal(t, slog.LevelWarn, levelFromString("bogus"))
}

func TestNewLoggerFormats(t *testing.T) {
	orig := LevelVar.Level()
	defer LevelVar.Set(orig)

	LevelVar.Set(slog.LevelInfo)

	for _, format := range []string{"pretty", "json", "tint", ""} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer

			NewLogger(&buf, format).Info("started", "pid", 42)
			assert.Contains(t, buf.String(), "started")
			assert.Contains(t, buf.String(), "42")
		})
	}
}
