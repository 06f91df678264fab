// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package localpath computes the executable search path used when commands prefer
// project-local binaries over system ones.
//
// The result is a plain value. It is computed once and handed to each process that needs
// it; the PATH of the running process is never modified.
package localpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when an executable cannot be found on the search path.
var ErrNotFound = errors.New("executable not found")

// FsFactory returns the filesystem used to probe directories and executables.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// DefaultLocalDirs are the project-relative directories that hold locally installed tools.
var DefaultLocalDirs = []string{
	"bin",
	filepath.Join("node_modules", ".bin"),
}

// DefaultRootMarkers identify the root of a project when walking up from the working directory.
var DefaultRootMarkers = []string{"go.mod", "package.json", ".git"}

// SearchPath is an ordered executable search path split into project-local and system parts.
type SearchPath struct {
	Local  []string // Existing local tool directories, nearest first.
	System []string // Entries of the system PATH, in order.
}

// Resolve builds a SearchPath for cwd. systemPath is a PATH-style list.
//
// Local directories are collected from cwd and each parent up to the nearest ancestor that
// contains a root marker. When no marker is found only cwd itself is inspected.
func Resolve(cwd, systemPath string) (*SearchPath, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", cwd, err)
	}

	fs := FsFactory()
	sp := &SearchPath{System: splitList(systemPath)}

	dirs := []string{abs}
	if root, ok := projectRoot(fs, abs); ok {
		dirs = ancestors(abs, root)
	}

	for _, d := range dirs {
		for _, rel := range DefaultLocalDirs {
			candidate := filepath.Join(d, rel)
			if info, err := fs.Stat(candidate); err == nil && info.IsDir() {
				sp.Local = append(sp.Local, candidate)
			}
		}
	}

	return sp, nil
}

// Dirs returns the directories to search, local ones first when preferLocal is set.
func (s *SearchPath) Dirs(preferLocal bool) []string {
	if s == nil {
		return nil
	}

	if !preferLocal {
		return slices.Clone(s.System)
	}

	return slices.Concat(s.Local, s.System)
}

// Env returns the value for the PATH variable of a child process.
func (s *SearchPath) Env(preferLocal bool) string {
	return strings.Join(s.Dirs(preferLocal), string(os.PathListSeparator))
}

// LookPath finds name on the search path. Names containing a path separator are returned
// unchanged without probing.
func (s *SearchPath) LookPath(name string, preferLocal bool) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}

	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}

	fs := FsFactory()

	for _, dir := range s.Dirs(preferLocal) {
		for _, candidate := range candidates(dir, name) {
			info, err := fs.Stat(candidate)
			if err != nil || info.IsDir() {
				continue
			}

			if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
				continue
			}

			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func candidates(dir, name string) []string {
	p := filepath.Join(dir, name)
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		return []string{p + ".exe", p + ".cmd", p + ".bat", p}
	}

	return []string{p}
}

func projectRoot(fs afero.Fs, start string) (string, bool) {
	for dir := start; ; dir = filepath.Dir(dir) {
		for _, m := range DefaultRootMarkers {
			if _, err := fs.Stat(filepath.Join(dir, m)); err == nil {
				return dir, true
			}
		}

		if filepath.Dir(dir) == dir {
			return "", false
		}
	}
}

// ancestors lists from start up to and including root.
func ancestors(start, root string) []string {
	var out []string

	for dir := start; ; dir = filepath.Dir(dir) {
		out = append(out, dir)
		if dir == root || filepath.Dir(dir) == dir {
			return out
		}
	}
}

func splitList(path string) []string {
	if path == "" {
		return nil
	}

	return slices.DeleteFunc(filepath.SplitList(path), func(s string) bool { return s == "" })
}
