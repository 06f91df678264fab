// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskrunner

import (
	"maps"
	"time"
)

// Args is the argument object passed to a Handler.
// It always has the task name and a non-nil Positional slice, even when nothing was parsed.
type Args struct {
	// Task is the resolved task name.
	Task string
	// Positional holds the arguments left after flag parsing.
	Positional []string
	// Flags maps canonical flag names to their values, starting from the task defaults.
	Flags map[string]any
	// Raw is the unparsed argv of the invocation, excluding the program name.
	Raw []string
}

func fallbackArgs(task string, defaults map[string]any, raw []string) *Args {
	flags := make(map[string]any, len(defaults)+1)
	maps.Copy(flags, defaults)

	return &Args{
		Task:       task,
		Positional: []string{},
		Flags:      flags,
		Raw:        raw,
	}
}

// Has reports whether a value exists for name.
func (a *Args) Has(name string) bool {
	_, ok := a.Flags[name]
	return ok
}

// String returns the string value of name, or "" when absent or of another type.
func (a *Args) String(name string) string {
	v, _ := a.Flags[name].(string)
	return v
}

// Bool returns the bool value of name.
func (a *Args) Bool(name string) bool {
	v, _ := a.Flags[name].(bool)
	return v
}

// Int returns the integer value of name.
func (a *Args) Int(name string) int {
	switch v := a.Flags[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint:
		return int(v)
	}

	return 0
}

// Duration returns the duration value of name.
func (a *Args) Duration(name string) time.Duration {
	v, _ := a.Flags[name].(time.Duration)
	return v
}

// StringSlice returns the string slice value of name.
func (a *Args) StringSlice(name string) []string {
	v, _ := a.Flags[name].([]string)
	return v
}

// Cwd returns the value of the --cwd flag.
func (a *Args) Cwd() string {
	return a.String(CwdFlag)
}
