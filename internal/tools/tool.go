// Package tools holds the registry of functions the model may call.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"github.com/isaacphi/realty/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Tool binds a name and an argument schema to a function. Build one with New.
type Tool struct {
	Name        string
	Description string
	Schema      json.RawMessage

	parameters domain.Parameters
	compiled   *gojsonschema.Schema
	decode     func(raw json.RawMessage) (any, error)
	call       func(ctx context.Context, args any) (any, error)
}

// New reflects the argument schema from A. Arguments are checked against the
// schema, decoded into A and validated with its `validate` tags before fn runs.
func New[A any](name, description string, fn func(ctx context.Context, args A) (any, error)) (Tool, error) {
	schema, err := reflectSchema(new(A))
	if err != nil {
		return Tool{}, fmt.Errorf("reflect schema for %s: %w", name, err)
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return Tool{}, fmt.Errorf("compile schema for %s: %w", name, err)
	}
	var params domain.Parameters
	if err := json.Unmarshal(schema, &params); err != nil {
		return Tool{}, fmt.Errorf("decode schema for %s: %w", name, err)
	}

	return Tool{
		Name:        name,
		Description: description,
		Schema:      schema,
		parameters:  params,
		compiled:    compiled,
		decode: func(raw json.RawMessage) (any, error) {
			var args A
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, err
			}
			if err := validate.Struct(args); err != nil {
				return nil, err
			}
			return args, nil
		},
		call: func(ctx context.Context, args any) (any, error) {
			return fn(ctx, args.(A))
		},
	}, nil
}

func (t Tool) Spec() domain.Tool {
	return domain.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.parameters,
	}
}

// checkArguments returns the problems found in raw; an empty slice means raw
// conforms to the schema and decodes cleanly.
func (t Tool) checkArguments(raw json.RawMessage) (any, []string) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	result, err := t.compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, []string{"arguments are not valid JSON"}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return nil, problems
	}

	args, err := t.decode(raw)
	if err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			problems := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			return nil, problems
		}
		return nil, []string{err.Error()}
	}
	return args, nil
}

func reflectSchema(v any) (json.RawMessage, error) {
	r := &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
	}
	schema := r.Reflect(v)
	schema.Version = ""
	schema.ID = ""
	return json.Marshal(schema)
}
