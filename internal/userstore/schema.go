package userstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// docValidator checks that a decoded users document matches the expected
// shape: one top-level "users" array whose elements are objects with string
// name and email fields. Plain json.Unmarshal into the document struct would
// silently zero mistyped fields, so shape violations go through a compiled
// JSON Schema instead and surface as ErrCorrupt.
type docValidator struct {
	schema *jsonschema.Schema
}

// documentSchema builds the JSON Schema for the persisted document.
func documentSchema() *invopop.Schema {
	record := &invopop.Schema{
		Type:       "object",
		Properties: invopop.NewProperties(),
		Required:   []string{"name", "email"},
	}
	record.Properties.Set("name", &invopop.Schema{Type: "string"})
	record.Properties.Set("email", &invopop.Schema{Type: "string"})

	doc := &invopop.Schema{
		Type:       "object",
		Properties: invopop.NewProperties(),
		Required:   []string{"users"},
	}
	doc.Properties.Set("users", &invopop.Schema{
		Type:  "array",
		Items: record,
	})
	return doc
}

// newDocValidator compiles the document schema.
func newDocValidator() (*docValidator, error) {
	schemaJSON, err := json.Marshal(documentSchema())
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	var schemaValue any
	if err := json.Unmarshal(schemaJSON, &schemaValue); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("users.schema.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile("users.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &docValidator{schema: compiled}, nil
}

// validate returns human-readable shape violations, or nil when the value
// conforms.
func (v *docValidator) validate(value any) []string {
	err := v.schema.Validate(value)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		byPath := make(map[string][]string)
		collectLeafErrors(verr, byPath)

		var out []string
		for path, msgs := range byPath {
			seen := make(map[string]bool)
			for _, msg := range msgs {
				if seen[msg] {
					continue
				}
				seen[msg] = true
				if path != "" {
					out = append(out, fmt.Sprintf("%s: %s", path, msg))
				} else {
					out = append(out, msg)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return []string{err.Error()}
}

// printer renders schema violations as English text.
var printer = message.NewPrinter(language.English)

// collectLeafErrors gathers leaf validation failures keyed by instance path.
func collectLeafErrors(err *jsonschema.ValidationError, byPath map[string][]string) {
	path := ""
	if len(err.InstanceLocation) > 0 {
		path = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			byPath[path] = append(byPath[path], msg)
		}
	}

	for _, cause := range err.Causes {
		collectLeafErrors(cause, byPath)
	}
}
