// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"maps"

	"github.com/go-playground/validator/v10"
	"github.com/matt-FFFFFF/shx/internal/procrunner"
)

// ErrInvalidOptions is returned when Options fail validation.
var ErrInvalidOptions = errors.New("invalid batch options")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Options configures a batch.
type Options struct {
	// Concurrency is the maximum number of commands in flight. Zero means unbounded and
	// one means strictly serial.
	Concurrency int `validate:"gte=0"`
	// Process is forwarded to the runner for every command.
	Process procrunner.Options
}

// DefaultOptions returns unbounded concurrency with local executables preferred.
func DefaultOptions() *Options {
	return &Options{
		Process: procrunner.Options{
			PreferLocal: true,
		},
	}
}

// clone returns a copy that shares nothing mutable with o.
func (o *Options) clone() *Options {
	c := *o
	c.Process.Env = maps.Clone(o.Process.Env)

	return &c
}

func (o *Options) validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Join(ErrInvalidOptions, err)
	}

	return nil
}
