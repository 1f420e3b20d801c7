// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package seed

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
)

// GenerateSchema reflects the seed file structs into a JSON schema document.
// cmd/gen-schema writes the result to schema/seed.schema.json, which Parse
// embeds for validation.
func GenerateSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: false,
	}
	schema := reflector.Reflect(&File{})
	schema.ID = jsonschema.ID("https://github.com/chatmud/chatmud/internal/seed/file")

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.In("seed").Code("SCHEMA_GENERATE_FAILED").Wrap(err)
	}
	return append(out, '\n'), nil
}
