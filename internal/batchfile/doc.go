// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batchfile loads batch definitions from YAML, JSON, TOML or HCL documents.
//
// A definition names a list of commands and the options they run with. Sources are fetched
// with go-getter, so a definition may live on local disk, in a git repository or behind a URL.
package batchfile
