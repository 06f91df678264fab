// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batchfile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "shx://batchfile/schema.json"

// ErrSchemaValidation is returned when a YAML or JSON document does not match the schema.
var ErrSchemaValidation = errors.New("batch file does not match schema")

//go:embed schema.json
var schemaJSON string

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}

	return compiler.Compile(schemaURL)
})

// Schema returns the JSON schema batch files are validated against.
func Schema() string {
	return schemaJSON
}

// validateSchema checks a YAML (or JSON) document against the schema.
func validateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return errors.Join(ErrSchemaValidation, err)
	}

	var result error

	collectSchemaErrors(ve, &result)

	return errors.Join(ErrSchemaValidation, result)
}

func collectSchemaErrors(ve *jsonschema.ValidationError, result *error) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}

		*result = multierror.Append(*result, fmt.Errorf("%s: %s", loc, ve.Message))

		return
	}

	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, result)
	}
}
