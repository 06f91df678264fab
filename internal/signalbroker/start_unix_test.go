// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package signalbroker

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_RealSignals(t *testing.T) {
	rec := &exitRecorder{}

	ctx, stop := Start(context.Background(), rec.exit, syscall.SIGUSR1)
	defer stop()

	self, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, self.Signal(syscall.SIGUSR1))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context should be cancelled after the first signal")
	}

	assert.Empty(t, rec.get())

	require.NoError(t, self.Signal(syscall.SIGUSR1))
	assert.Eventually(t, func() bool {
		return len(rec.get()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{ForcedExitCode}, rec.get())
}
