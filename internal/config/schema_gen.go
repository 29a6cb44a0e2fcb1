package config

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

const schemaID = "https://github.com/isaacphi/realty/realty.schema.json"

// GenerateJSONSchema generates a JSON schema for *.realty.yaml files. Keys
// that can also come from the environment name their variable in the
// description.
func GenerateJSONSchema() (*jsonschema.Schema, error) {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		ExpandedStruct:             true,
	}

	schema := r.Reflect(&ConfigSchema{})
	schema.ID = schemaID
	schema.Title = "Realty Configuration Schema"
	schema.Description = "Configuration for the realty property assistant: model presets, dataset, agent loop limits and tracing"

	for _, env := range envVars {
		prop, err := lookupProperty(schema, env.key)
		if err != nil {
			return nil, err
		}
		note := fmt.Sprintf("Can be set with %s.", env.envVar)
		if prop.Description == "" {
			prop.Description = note
		} else {
			prop.Description = strings.TrimSuffix(prop.Description, ".") + ". " + note
		}
	}

	return schema, nil
}

// lookupProperty follows a dotted config key through nested properties.
func lookupProperty(schema *jsonschema.Schema, key string) (*jsonschema.Schema, error) {
	current := schema
	for _, part := range strings.Split(key, ".") {
		if current.Properties == nil {
			return nil, fmt.Errorf("config key %s has no schema", key)
		}
		next, ok := current.Properties.Get(part)
		if !ok {
			return nil, fmt.Errorf("config key %s has no schema", key)
		}
		current = next
	}
	return current, nil
}
