// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker turns terminating OS signals into context cancellation.
//
// Child processes run in their own process group, so a terminal interrupt does not reach
// them directly. The first signal cancels the root context, which makes every in-flight
// runner stop its process. A second signal of the same type forces the program to exit.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/matt-FFFFFF/shx/internal/ctxlog"
)

// ForcedExitCode is passed to the exit function on the second signal.
const ForcedExitCode = 130

var termSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

// New returns a channel notified of sigs, or of the default terminating signals when none
// are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "registering signal handler", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Start registers for sigs and runs Watch in the background.
//
// The returned context is cancelled by the first signal. stop unregisters the handler,
// cancels the context and waits for the watcher to return; it is safe to call more than once.
func Start(ctx context.Context, exit func(int), sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	ch := New(ctx, sigs...)
	watching := make(chan struct{})

	go func() {
		defer close(watching)
		Watch(ctx, ch, cancel, exit)
	}()

	var once sync.Once

	stop := func() {
		once.Do(func() {
			signal.Stop(ch)
			cancel()
			// no deliveries after signal.Stop returns
			close(ch)
			<-watching
		})
	}

	return ctx, stop
}
