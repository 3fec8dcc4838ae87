package localization

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidWire is returned when an inbound payload is not null, a string,
// or an object of string translations keyed by supported locales.
var ErrInvalidWire = errors.New("localization: invalid localizable value")

const wireSchema = `{
  "anyOf": [
    {"type": "null"},
    {"type": "string"},
    {
      "type": "object",
      "properties": {
        "en": {"type": "string"},
        "ro": {"type": "string"},
        "ru": {"type": "string"}
      },
      "additionalProperties": false
    }
  ]
}`

// WireIssue describes a single failure found while validating a payload.
type WireIssue struct {
	Location string
	Message  string
}

// WireError collects the issues reported for a rejected payload.
type WireError struct {
	Field  string
	Issues []WireIssue
}

func (e *WireError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	prefix := ErrInvalidWire.Error()
	if e.Field != "" {
		prefix = fmt.Sprintf("%s %q", prefix, e.Field)
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

func (e *WireError) Unwrap() error {
	return ErrInvalidWire
}

var compiledWireSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("localizable.json", strings.NewReader(wireSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("localizable.json")
})

// ValidateWire checks raw JSON against the accepted wire shapes. Reads stay
// permissive; this is applied to admin writes only.
func ValidateWire(raw []byte) error {
	return validateWire("", raw)
}

// DecodeWire validates raw and decodes it into a Field. name labels errors.
func DecodeWire(name string, raw []byte) (Field, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Absent(), nil
	}
	if err := validateWire(name, raw); err != nil {
		return Field{}, err
	}
	var field Field
	if err := field.UnmarshalJSON(raw); err != nil {
		return Field{}, err
	}
	return field, nil
}

func validateWire(name string, raw []byte) error {
	schema, err := compiledWireSchema()
	if err != nil {
		return fmt.Errorf("localization: compile wire schema: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return &WireError{Field: name, Issues: []WireIssue{{Message: err.Error()}}}
	}

	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &WireError{Field: name, Issues: collectWireIssues(validationErr)}
		}
		return &WireError{Field: name, Issues: []WireIssue{{Message: err.Error()}}}
	}
	return nil
}

func collectWireIssues(err *jsonschema.ValidationError) []WireIssue {
	issues := []WireIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, WireIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
