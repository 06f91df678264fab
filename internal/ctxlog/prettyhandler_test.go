// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrettyHandler_Output(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf))
	slog.New(h).Info("process finished", "exitCode", 3, "command", "exit 3")

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "process finished")
	assert.Contains(t, out, `"exitCode"`)
	assert.Contains(t, out, `"exit 3"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandler_NoAttrs(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(nil, WithDestinationWriter(&buf))
	slog.New(h).Warn("bare")

	assert.NotContains(t, buf.String(), "{")
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelWarn}, WithDestinationWriter(&buf))
	slog.New(h).Info("hidden")

	assert.Empty(t, buf.String())
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(nil, WithDestinationWriter(&buf))
	logger := slog.New(h).With("batchID", "abc").WithGroup("proc")
	logger.Warn("spawned", "pid", 7)

	out := buf.String()
	assert.Contains(t, out, `"batchID"`)
	assert.Contains(t, out, `"abc"`)
	assert.Contains(t, out, `"proc"`)
	assert.Contains(t, out, `"pid"`)
}

func TestPrettyHandler_WriteError(t *testing.T) {
	h := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))
	rec := slog.Record{Level: slog.LevelError, Message: "x"}
	err := h.Handle(t.Context(), rec)
	require.ErrorIs(t, err, ErrIoWrite)
}
