package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the lens configuration.
// Declared sections are closed (no stray keys inside server/plugins/tui),
// but unknown top-level keys stay open so tools can carry their own
// extension sections. The output is committed as
// lens.embedded.schema.json; regenerate with go generate.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Inline nested types instead of $defs references so the schema
		// reads top to bottom.
		DoNotReference: true,
		// Lift the root type's schema to the document root.
		ExpandedStruct: true,
		// Property names follow the serialized form.
		FieldNameTag: "json",
	}

	// Reflect a shape without the Extensions field; extensions are covered
	// by additionalProperties.
	type baseConfig struct {
		Version string         `json:"version,omitempty" jsonschema:"description=Config format version"`
		Server  ServerConfig   `json:"server" jsonschema:"description=Dataset server connection settings"`
		Plugins *PluginsConfig `json:"plugins,omitempty" jsonschema:"description=Plugin discovery settings"`
		TUI     *TUIConfig     `json:"tui,omitempty" jsonschema:"description=Terminal UI appearance settings"`
	}

	schema := r.Reflect(&baseConfig{})
	schema.ID = "https://github.com/lenslab/lens/config"
	schema.Title = "Lens Configuration"
	schema.Description = "Schema for lens.yml properties."
	// The sections above are closed; the top level is not.
	schema.AdditionalProperties = jsonschema.TrueSchema

	return json.MarshalIndent(schema, "", "  ")
}
