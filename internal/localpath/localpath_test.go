// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package localpath

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, dirs []string, execs map[string]os.FileMode) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, d := range dirs {
		require.NoError(t, fs.MkdirAll(d, 0o755))
	}

	for f, mode := range execs {
		require.NoError(t, fs.MkdirAll(filepath.Dir(f), 0o755))
		require.NoError(t, afero.WriteFile(fs, f, []byte("#!/bin/sh\n"), mode))
	}

	return fs
}

func TestResolve(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	fs := memFs(t, []string{
		"/work/proj/bin",
		"/work/proj/node_modules/.bin",
		"/work/proj/pkg/a/node_modules/.bin",
		"/work/bin",
	}, map[string]os.FileMode{"/work/proj/go.mod": 0o644})
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	sp, err := Resolve("/work/proj/pkg/a", "/usr/local/bin:/usr/bin")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/work/proj/pkg/a/node_modules/.bin",
		"/work/proj/bin",
		"/work/proj/node_modules/.bin",
	}, sp.Local, "walk stops at the project root")
	assert.Equal(t, []string{"/usr/local/bin", "/usr/bin"}, sp.System)
}

func TestResolve_NoProjectRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	fs := memFs(t, []string{"/tmp/x/bin", "/tmp/bin"}, nil)
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	sp, err := Resolve("/tmp/x", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/x/bin"}, sp.Local)
	assert.Empty(t, sp.System)
}

func TestSearchPath_DirsAndEnv(t *testing.T) {
	sp := &SearchPath{Local: []string{"/p/bin"}, System: []string{"/usr/bin"}}

	assert.Equal(t, []string{"/p/bin", "/usr/bin"}, sp.Dirs(true))
	assert.Equal(t, []string{"/usr/bin"}, sp.Dirs(false))
	assert.Equal(t, "/p/bin"+string(os.PathListSeparator)+"/usr/bin", sp.Env(true))

	var nilPath *SearchPath
	assert.Empty(t, nilPath.Dirs(true))
}

func TestSearchPath_LookPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix exec bits")
	}

	fs := memFs(t, nil, map[string]os.FileMode{
		"/p/bin/tool":       0o755,
		"/usr/bin/tool":     0o755,
		"/usr/bin/readonly": 0o644,
		"/usr/bin/other":    0o755,
	})
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	sp := &SearchPath{Local: []string{"/p/bin"}, System: []string{"/usr/bin"}}

	tests := []struct {
		name        string
		command     string
		preferLocal bool
		want        string
		wantErr     bool
	}{
		{name: "local wins when preferred", command: "tool", preferLocal: true, want: "/p/bin/tool"},
		{name: "system when not preferred", command: "tool", preferLocal: false, want: "/usr/bin/tool"},
		{name: "falls back to system", command: "other", preferLocal: true, want: "/usr/bin/other"},
		{name: "not executable", command: "readonly", preferLocal: true, wantErr: true},
		{name: "missing", command: "nope", preferLocal: true, wantErr: true},
		{name: "empty", command: "", preferLocal: true, wantErr: true},
		{name: "explicit path untouched", command: "./run.sh", preferLocal: true, want: "./run.sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sp.LookPath(tt.command, tt.preferLocal)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotFound)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
