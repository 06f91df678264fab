// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The level and output format are read from SHX_LOG_LEVEL and SHX_LOG_FORMAT.
package ctxlog
