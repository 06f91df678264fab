// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package testconfig

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name   string
		opts   Options
		match  string
		outDir string
		root   string
	}{
		{
			name:   "defaults",
			opts:   Options{Name: "lib"},
			match:  "<rootDir>/src/**/*.test.{js,ts}",
			outDir: "dist/module",
			root:   ".",
		},
		{
			name:   "mono common",
			opts:   Options{Name: "repo", Layout: LayoutMono, Target: TargetCommon, RootDir: "/work"},
			match:  "<rootDir>/packages/*/src/**/*.test.{js,ts}",
			outDir: "dist/common",
			root:   "/work",
		},
		{
			name:   "single module",
			opts:   Options{Name: "x", Layout: LayoutSingle, Target: TargetModule},
			match:  "<rootDir>/src/**/*.test.{js,ts}",
			outDir: "dist/module",
			root:   ".",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.opts.Name, c.DisplayName)
			assert.Equal(t, []string{tc.match}, c.TestMatch)
			assert.Equal(t, tc.outDir, c.OutputDir)
			assert.Equal(t, tc.root, c.RootDir)
			assert.Equal(t, []string{"/node_modules/", "<rootDir>/" + tc.outDir + "/"}, c.TestPathIgnorePatterns)
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	for _, opts := range []Options{
		{},
		{Name: "x", Layout: "flat"},
		{Name: "x", Target: "umd"},
	} {
		_, err := New(opts)
		require.ErrorIs(t, err, ErrInvalidOptions)
	}
}

func TestWrite(t *testing.T) {
	c, err := New(Options{Name: "lib", Layout: LayoutMono})
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, c.Write(buf, FormatJSON))

		var got map[string]any

		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "lib", got["displayName"])
		assert.Equal(t, "dist/module", got["outputDir"])
		assert.Len(t, got["testMatch"], 1)
	})

	t.Run("yaml", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, c.Write(buf, FormatYAML))

		var got Config

		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, *c, got)
	})

	t.Run("unknown", func(t *testing.T) {
		require.ErrorIs(t, c.Write(new(bytes.Buffer), "xml"), ErrUnknownFormat)
	})
}
