package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema generates a JSON Schema document describing Config, used by the
// `pytonium-shell config schema` command so widget authors and editors can
// validate a shell.json against it.
func Schema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/Maximilian-Winter/pytonium-shell/shell.schema.json"
	schema.Title = "PytoniumShell Configuration"
	schema.Description = "Configuration schema for the PytoniumShell desktop widget shell"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal config schema: %w", err)
	}
	return data, nil
}
