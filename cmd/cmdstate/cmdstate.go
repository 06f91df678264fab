// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate carries state computed once at program start through the context.
package cmdstate

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/shx/internal/localpath"
)

type searchPathKey struct{}

type searchPathState struct {
	cwd string
	sp  *localpath.SearchPath
}

// WithSearchPath resolves the executable search path for cwd and stores it in the context.
func WithSearchPath(ctx context.Context, cwd string) (context.Context, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return ctx, err
	}

	sp, err := localpath.Resolve(cwd, os.Getenv("PATH"))
	if err != nil {
		return ctx, err
	}

	return context.WithValue(ctx, searchPathKey{}, searchPathState{cwd: cwd, sp: sp}), nil
}

// SearchPath returns the search path for cwd. The value stored by WithSearchPath is reused
// when it was resolved for the same directory; any other directory is resolved afresh.
func SearchPath(ctx context.Context, cwd string) (*localpath.SearchPath, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, err
	}

	if st, ok := ctx.Value(searchPathKey{}).(searchPathState); ok && st.cwd == abs {
		return st.sp, nil
	}

	return localpath.Resolve(abs, os.Getenv("PATH"))
}
