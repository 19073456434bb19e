package workflowdoc

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// WorkflowSchema returns the JSON Schema describing a [WorkflowDoc] block.
func WorkflowSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[WorkflowDoc](nil)
	if err != nil {
		return nil, fmt.Errorf("infer workflow schema: %w", err)
	}

	s.Title = "workflowDoc"

	if tools, ok := s.Properties["tools"]; ok {
		tools.Items = &jsonschema.Schema{Type: "object"}
	}

	return s, nil
}

// MethodSchema returns the JSON Schema describing a [MethodDoc] block. Every
// parameter row must have a name.
func MethodSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[MethodDoc](nil)
	if err != nil {
		return nil, fmt.Errorf("infer method schema: %w", err)
	}

	s.Title = "method doc"

	if params, ok := s.Properties["parameters"]; ok {
		params.Items = &jsonschema.Schema{
			Type:     "object",
			Required: []string{colName},
			Properties: map[string]*jsonschema.Schema{
				colName:     {Type: "string"},
				colRequired: {Type: "boolean"},
			},
		}
	}

	return s, nil
}

// Validator checks doc blocks against [WorkflowSchema] and [MethodSchema].
//
// Create instances with [NewValidator].
type Validator struct {
	workflow *jsonschema.Resolved
	method   *jsonschema.Resolved
}

// NewValidator resolves both doc block schemas.
func NewValidator() (*Validator, error) {
	ws, err := WorkflowSchema()
	if err != nil {
		return nil, err
	}

	ms, err := MethodSchema()
	if err != nil {
		return nil, err
	}

	v := &Validator{}

	v.workflow, err = ws.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve workflow schema: %w", err)
	}

	v.method, err = ms.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve method schema: %w", err)
	}

	return v, nil
}

// ValidateWorkflow validates a raw YAML long-form documentation block.
func (v *Validator) ValidateWorkflow(data []byte) error {
	return validate(v.workflow, data)
}

// ValidateMethod validates a raw YAML method doc block.
func (v *Validator) ValidateMethod(data []byte) error {
	return validate(v.method, data)
}

func validate(schema *jsonschema.Resolved, data []byte) error {
	// Round-trip through JSON so the instance only holds JSON types.
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return err
	}

	var instance any

	err = json.Unmarshal(j, &instance)
	if err != nil {
		return err
	}

	return schema.Validate(instance)
}
