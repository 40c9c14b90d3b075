package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed scenario.schema.json
var scenarioSchemaDoc []byte

var (
	schemaOnce     sync.Once
	scenarioSchema *jsonschema.Schema
	schemaErr      error
)

// ScenarioSchema returns the compiled scenario document schema
func ScenarioSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("scenario.schema.json", bytes.NewReader(scenarioSchemaDoc)); err != nil {
			schemaErr = fmt.Errorf("add scenario schema: %w", err)
			return
		}
		scenarioSchema, schemaErr = compiler.Compile("scenario.schema.json")
	})
	return scenarioSchema, schemaErr
}

// SchemaDocument returns the raw JSON schema for publishing
func SchemaDocument() []byte {
	return append([]byte(nil), scenarioSchemaDoc...)
}

// Scenario checks a JSON scenario document against the schema.
// Violations are reported as FieldErrors keyed by dotted instance path.
func Scenario(doc []byte) error {
	schema, err := ScenarioSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode scenario: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return schemaFieldErrors(ve)
		}
		return fmt.Errorf("validate scenario: %w", err)
	}
	return nil
}

// schemaFieldErrors flattens the leaf causes of a validation error
func schemaFieldErrors(ve *jsonschema.ValidationError) FieldErrors {
	var out FieldErrors
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, FieldError{Field: pointerToField(e.InstanceLocation), Message: e.Message})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// pointerToField turns "/inputs/dcf/wacc" into "inputs.dcf.wacc"
func pointerToField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "$"
	}
	return strings.ReplaceAll(ptr, "/", ".")
}
