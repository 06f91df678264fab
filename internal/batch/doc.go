// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch runs one or many commands with a concurrency limit.
//
// Results come back in input order regardless of completion order. The first failure
// (in input order) fails the whole batch; commands already running are left to finish and
// no further commands are started.
package batch
