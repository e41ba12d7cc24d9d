/*
 * Copyright (C) 2025 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

// Package schema validates Presentation Exchange documents against their JSON schemas.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/loader"
)

const presentationDefinitionV1SchemaURL = "http://identity.foundation/presentation-exchange/schemas/presentation-definition-v1.json"

//go:embed presentation-definition-v1.json
var presentationDefinitionV1SchemaData []byte

const presentationDefinitionV2SchemaURL = "http://identity.foundation/presentation-exchange/schemas/presentation-definition-v2.json"

//go:embed presentation-definition-v2.json
var presentationDefinitionV2SchemaData []byte

const presentationSubmissionSchemaURL = "https://identity.foundation/presentation-exchange/schemas/presentation-submission.json"

//go:embed presentation-submission.json
var presentationSubmissionSchemaData []byte

// PresentationDefinitionV1 is the JSON schema for a v1 presentation definition, enveloped in a presentation_definition property.
var PresentationDefinitionV1 *jsonschema.Schema

// PresentationDefinitionV2 is the JSON schema for a v2 presentation definition, enveloped in a presentation_definition property.
var PresentationDefinitionV2 *jsonschema.Schema

// PresentationSubmission is the JSON schema for a presentation submission, enveloped in a presentation_submission property.
var PresentationSubmission *jsonschema.Schema

func init() {
	// By default, it loads from filesystem, but that sounds unsafe.
	// Since we register our schemas, we don't need to allow loading resources.
	loader.Load = func(url string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("refusing to load unknown schema: %s", url)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	resources := map[string][]byte{
		presentationDefinitionV1SchemaURL: presentationDefinitionV1SchemaData,
		presentationDefinitionV2SchemaURL: presentationDefinitionV2SchemaData,
		presentationSubmissionSchemaURL:   presentationSubmissionSchemaData,
	}
	for u, data := range resources {
		if err := compiler.AddResource(u, bytes.NewReader(data)); err != nil {
			panic(fmt.Errorf("error compiling schema %s: %w", u, err))
		}
	}
	PresentationDefinitionV1 = compiler.MustCompile(presentationDefinitionV1SchemaURL)
	PresentationDefinitionV2 = compiler.MustCompile(presentationDefinitionV2SchemaURL)
	PresentationSubmission = compiler.MustCompile(presentationSubmissionSchemaURL)
}

// Validate validates the given data against the given schema.
func Validate(data []byte, schema *jsonschema.Schema) error {
	return schema.Validate(bytes.NewReader(data))
}
