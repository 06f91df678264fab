// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package taskrunner is a small declarative layer over urfave/cli.
//
// Tasks are registered by name on a Program together with a builder callback that declares
// flags, defaults and the handler. Run parses argv, dispatches at most one task and returns a
// *TaskError carrying the invocation context when the handler fails.
package taskrunner
