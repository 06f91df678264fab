// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package testconfig generates the configuration record consumed by a JavaScript test runner.
// The output is static data; nothing here runs tests.
package testconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Layout is the repository layout the tests live in.
type Layout string

// Target is the build output format.
type Target string

// Format is the serialisation used by Write.
type Format string

const (
	// LayoutSingle is a single package with sources under src/.
	LayoutSingle Layout = "single"
	// LayoutMono is a multi-package repository with packages under packages/.
	LayoutMono Layout = "mono"

	// TargetModule builds ES modules into dist/module.
	TargetModule Target = "module"
	// TargetCommon builds CommonJS into dist/common.
	TargetCommon Target = "common"

	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"

	// RootDirToken is expanded by the test runner to RootDir.
	RootDirToken = "<rootDir>"

	testFilePattern = "**/*.test.{js,ts}"
	nodeModules     = "/node_modules/"
	distDir         = "dist"
)

var (
	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = errors.New("invalid test config options")
	// ErrUnknownFormat is returned by Write for an unsupported format.
	ErrUnknownFormat = errors.New("unknown output format")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Options selects the configuration to generate.
// Zero values of Layout, Target and RootDir mean single, module and ".".
type Options struct {
	Name    string `validate:"required"`
	Layout  Layout `validate:"omitempty,oneof=single mono"`
	Target  Target `validate:"omitempty,oneof=module common"`
	RootDir string
}

// Config is the test runner configuration.
type Config struct {
	DisplayName            string   `json:"displayName" yaml:"displayName"`
	TestMatch              []string `json:"testMatch" yaml:"testMatch"`
	TestPathIgnorePatterns []string `json:"testPathIgnorePatterns" yaml:"testPathIgnorePatterns"`
	OutputDir              string   `json:"outputDir" yaml:"outputDir"`
	RootDir                string   `json:"rootDir" yaml:"rootDir"`
}

// New builds the configuration described by opts.
func New(opts Options) (*Config, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, errors.Join(ErrInvalidOptions, err)
	}

	if opts.Layout == "" {
		opts.Layout = LayoutSingle
	}

	if opts.Target == "" {
		opts.Target = TargetModule
	}

	if opts.RootDir == "" {
		opts.RootDir = "."
	}

	outDir := path.Join(distDir, string(opts.Target))

	srcRoot := path.Join(RootDirToken, "src")
	if opts.Layout == LayoutMono {
		srcRoot = path.Join(RootDirToken, "packages", "*", "src")
	}

	return &Config{
		DisplayName: opts.Name,
		TestMatch:   []string{srcRoot + "/" + testFilePattern},
		TestPathIgnorePatterns: []string{
			nodeModules,
			path.Join(RootDirToken, outDir) + "/",
		},
		OutputDir: outDir,
		RootDir:   opts.RootDir,
	}, nil
}

// Write renders c to w in the given format.
func (c *Config) Write(w io.Writer, format Format) error {
	var (
		b   []byte
		err error
	)

	switch format {
	case FormatJSON, "":
		b, err = json.MarshalIndent(c, "", "  ")
		b = append(b, '\n')
	case FormatYAML:
		b, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("marshal test config: %w", err)
	}

	_, err = w.Write(b)

	return err
}
