// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batchfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/shx/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrGetFile is returned when a batch file cannot be read or downloaded.
var ErrGetFile = errors.New("failed to get batch file")

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	goGetterForcePrefix   = "::"
	minimumGetterParts    = 3 // scheme, host and path
)

// Load reads the batch file at src and parses it.
// Local paths are read through FsFactory; anything else is fetched with go-getter.
// Relative cwd values in a local file resolve against the file's directory.
func Load(ctx context.Context, src string) (*File, error) {
	if src == "" {
		return nil, ErrGetFile
	}

	data, name, dir, err := read(ctx, src)
	if err != nil {
		return nil, err
	}

	f, err := Parse(name, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}

	f.dir = dir

	return f, nil
}

func read(ctx context.Context, src string) ([]byte, string, string, error) {
	if isLocal(src) {
		fs := FsFactory()

		if _, err := fs.Stat(src); err == nil {
			data, err := afero.ReadFile(fs, src)
			if err != nil {
				return nil, "", "", errors.Join(ErrGetFile, err)
			}

			dir, err := filepath.Abs(filepath.Dir(src))
			if err != nil {
				dir = filepath.Dir(src)
			}

			return data, filepath.Base(src), dir, nil
		}
	}

	data, name, err := getURL(ctx, src)
	if err != nil {
		return nil, "", "", err
	}

	return data, name, "", nil
}

func isLocal(src string) bool {
	return !strings.Contains(src, "://") && !strings.Contains(src, goGetterForcePrefix)
}

// getURL retrieves the file at url using go-getter and returns its content and file name.
// The download directory is removed before returning.
func getURL(ctx context.Context, url string) ([]byte, string, error) {
	tmpDir, err := os.MkdirTemp("", "shx-getter-*")
	if err != nil {
		return nil, "", errors.Join(ErrGetFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrGetFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string

	// remote sources are downloaded as a directory and the file is read from it,
	// see https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, "", errors.Join(ErrGetFile, err)
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)
		if newURL == "" || fileName == "" {
			return nil, "", fmt.Errorf("%w: invalid URL format: %s", ErrGetFile, url)
		}

		req.Src = newURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	ctxlog.Debug(ctx, "fetching batch file", "src", req.Src, "file", fileName)

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, "", errors.Join(ErrGetFile, err)
	}

	data, err := afero.ReadFile(afero.NewOsFs(), filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, "", errors.Join(ErrGetFile, err)
	}

	return data, fileName, nil
}

// splitFileNameFromGetterURL splits a go-getter URL into the directory URL and the file name.
// Any ref query is kept on the returned URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, found := strings.Cut(last, goGetterRefSeparator); found {
		ref = after
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	parts[len(parts)-1] = filepath.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
