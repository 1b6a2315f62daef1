package openapi

import (
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// FieldConstraint is what the contract declares about one property.
type FieldConstraint struct {
	Name      string
	Type      string
	Format    string
	MinLength int
	Required  bool
}

// Constraints summarises the submission schema.
type Constraints struct {
	Fields []FieldConstraint
}

// Field returns the constraint for name.
func (c Constraints) Field(name string) (FieldConstraint, bool) {
	for _, field := range c.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldConstraint{}, false
}

// Required lists the required property names, sorted.
func (c Constraints) Required() []string {
	var out []string
	for _, field := range c.Fields {
		if field.Required {
			out = append(out, field.Name)
		}
	}
	return out
}

// SubmissionConstraints extracts the constraints of the submission schema.
func SubmissionConstraints(spec *openapi3.T) (Constraints, error) {
	if spec == nil || spec.Components == nil {
		return Constraints{}, errors.New("openapi: document has no components")
	}
	ref, ok := spec.Components.Schemas[SubmissionSchema]
	if !ok || ref == nil || ref.Value == nil {
		return Constraints{}, fmt.Errorf("openapi: schema %q not found", SubmissionSchema)
	}
	schema := ref.Value

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := Constraints{Fields: make([]FieldConstraint, 0, len(names))}
	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		out.Fields = append(out.Fields, FieldConstraint{
			Name:      name,
			Type:      firstSchemaType(prop.Value.Type),
			Format:    prop.Value.Format,
			MinLength: int(prop.Value.MinLength),
			Required:  required[name],
		})
	}
	return out, nil
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
