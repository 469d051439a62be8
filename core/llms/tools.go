package llms

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// ParameterBase describes one parameter of a tool in the provider-neutral
// shape shared by function-calling APIs.
type ParameterBase struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Tool is a capability the language model may invoke by name with JSON
// arguments.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]ParameterBase
	// Required lists the parameter names the model must always provide.
	Required []string

	schema  *jsonschema.Schema
	execute func(arguments string) (string, error)
}

// NewTool creates a tool whose arguments unmarshal into T. The parameter
// map is what gets advertised to the model; T's reflected schema is kept
// alongside for providers that consume full JSON schemas.
func NewTool[T any](name, description string, parameters map[string]ParameterBase, execute func(parameters T) (string, error)) Tool {
	reflector := jsonschema.Reflector{DoNotReference: true}
	var arguments T

	return Tool{
		Name:        name,
		Description: description,
		Parameters:  parameters,
		schema:      reflector.Reflect(&arguments),
		execute: func(rawArguments string) (string, error) {
			var parsed T
			if rawArguments != "" {
				if err := json.Unmarshal([]byte(rawArguments), &parsed); err != nil {
					return "", fmt.Errorf("failed to parse tool arguments: %w", err)
				}
			}
			return execute(parsed)
		},
	}
}

// WithRequired marks the named parameters as mandatory.
func (t Tool) WithRequired(names ...string) Tool {
	t.Required = append([]string(nil), names...)
	return t
}

// Schema returns the reflected JSON schema of the tool's argument struct.
func (t Tool) Schema() *jsonschema.Schema {
	return t.schema
}

// Execute runs the tool with raw JSON arguments as produced by the model.
func (t Tool) Execute(arguments string) (string, error) {
	if t.execute == nil {
		return "", fmt.Errorf("tool %q has no implementation", t.Name)
	}

	return t.execute(arguments)
}
