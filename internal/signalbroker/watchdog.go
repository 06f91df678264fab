// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/shx/internal/ctxlog"
)

// Watch reads sigCh until it is closed or ctx is done.
// The first signal calls cancel; a repeat of a signal already seen calls exit.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc, exit func(int)) {
	seen := make(map[os.Signal]struct{})
	done := ctx.Done()

	for {
		select {
		case <-done:
			if len(seen) == 0 {
				return
			}

			// cancelled by us: keep listening for the forcing signal
			done = nil
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Warn(ctx, "watchdog", "detail", "second signal received, forcing exit", "signal", sig.String())
				exit(ForcedExitCode)

				return
			}

			seen[sig] = struct{}{}

			ctxlog.Warn(ctx, "watchdog", "detail", "signal received, stopping commands", "signal", sig.String())
			cancel()
		}
	}
}
