package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas keyed by Schema.Name. Names are unique
// across the tutor, lesson and quiz schemas.
var compiled sync.Map // map[string]*jsonschema.Schema

// Validate checks raw JSON against schema. Canned fallback content and
// stored blobs go through it as well as provider output.
func Validate(schema *Schema, raw json.RawMessage) error {
	return validateResponse(schema, raw)
}

// Decode unmarshals structured response content into v. Content that does
// not fit v is reported as *ErrInvalidResponse like a schema mismatch.
func Decode(resp *Response, v any) error {
	if err := json.Unmarshal(resp.Content, v); err != nil {
		return &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// validateResponse returns *ErrInvalidResponse when raw is not JSON or does
// not satisfy schema. A nil schema accepts anything.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("%s: not JSON: %w", schema.Name, err)}
	}

	sch, err := compileSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("%s: %w", schema.Name, err)}
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if sch, ok := compiled.Load(schema.Name); ok {
		return sch.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go literals like []string
	// or int, so the definition takes a round trip through encoding/json.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", schema.Name, err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://linguaspark/" + schema.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %q: %w", schema.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	compiled.Store(schema.Name, sch)
	return sch, nil
}
