// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batchfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Format is the syntax of a batch file.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

var (
	// ErrUnknownFormat is returned when the format cannot be derived from the file name.
	ErrUnknownFormat = errors.New("unknown batch file format")
	// ErrParse is returned when a document cannot be decoded.
	ErrParse = errors.New("failed to parse batch file")
)

// FormatOf returns the format implied by the extension of name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Parse decodes data, choosing the format from the extension of name.
func Parse(name string, data []byte) (*File, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}

	return ParseFormat(format, name, data)
}

// ParseFormat decodes data as format. name is used in diagnostics.
// The result is not validated; see File.Validate.
func ParseFormat(format Format, name string, data []byte) (*File, error) {
	f := new(File)

	switch format {
	case FormatYAML, FormatJSON:
		if err := validateSchema(data); err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown keys %v", ErrParse, undecoded)
		}
	case FormatHCL:
		// hclsimple picks the syntax from the file name
		if !strings.EqualFold(filepath.Ext(name), ".hcl") {
			name += ".hcl"
		}

		if err := hclsimple.Decode(name, data, envEvalContext(), f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return f, nil
}

// envEvalContext exposes the process environment to HCL expressions as env.NAME.
func envEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !hclsyntax.ValidIdentifier(k) {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
