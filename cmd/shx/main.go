// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the shx command-line application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/shx"
	"github.com/matt-FFFFFF/shx/cmd"
	"github.com/matt-FFFFFF/shx/cmd/cmdstate"
	"github.com/matt-FFFFFF/shx/internal/ctxlog"
	"github.com/matt-FFFFFF/shx/internal/signalbroker"
)

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	ctx, stop := signalbroker.Start(ctx, os.Exit)
	defer stop()

	ctx, err := cmdstate.WithSearchPath(ctx, ".")
	if err != nil {
		ctxlog.Warn(ctx, "could not resolve local executable path", "error", err)
	}

	if err := cmd.New(fmt.Sprintf("%s (%s)", shx.Version, shx.Commit)).Run(ctx, os.Args); err != nil {
		ctxlog.Error(ctx, "command failed", "error", err)
		stop()
		os.Exit(1)
	}

	ctxlog.Info(ctx, "command completed successfully")
}
