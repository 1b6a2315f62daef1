package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed contact.yaml
var contract []byte

// SubmissionSchema is the component schema describing a contact submission.
const SubmissionSchema = "ContactSubmission"

// Raw returns a copy of the embedded YAML contract.
func Raw() []byte {
	return append([]byte(nil), contract...)
}

// Load parses and validates the embedded contract.
func Load(ctx context.Context) (*openapi3.T, error) {
	return LoadData(ctx, contract)
}

// LoadData parses and validates an OpenAPI document. External references are
// not resolved.
func LoadData(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return spec, nil
}

// JSON renders the embedded contract as JSON for serving.
func JSON(ctx context.Context) ([]byte, error) {
	spec, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	data, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	return data, nil
}

// Operation is the routing metadata of one contract operation.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Operations lists the operations of spec sorted by path then method.
func Operations(spec *openapi3.T) []Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	var out []Operation
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: method, Path: path, Summary: op.Summary})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}
