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

package pex

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nuts-foundation/nuts-pex/core"
	"github.com/nuts-foundation/nuts-pex/pex/schema"
)

// ErrInvalidDefinition is returned when a presentation definition matches neither the v1 nor the v2 JSON schema.
var ErrInvalidDefinition = errors.New("invalid presentation definition")

// Version identifies the generation of the Presentation Exchange specification a definition is written against.
type Version string

const (
	// V1 is Presentation Exchange v1, where input descriptors carry a list of schema URIs.
	V1 Version = "v1"
	// V2 is Presentation Exchange v2, which dropped schema based filtering.
	V2 Version = "v2"
)

// PresentationDefinition describes the credentials a verifier requires.
// Version is not part of the document, it's determined when parsing (see ParsePresentationDefinition)
// or set explicitly when building a definition in code. Evaluation dispatches on it.
type PresentationDefinition struct {
	Version          Version            `json:"-"`
	Id               string             `json:"id"`
	Name             string             `json:"name,omitempty"`
	Purpose          string             `json:"purpose,omitempty"`
	InputDescriptors []*InputDescriptor `json:"input_descriptors"`
}

// InputDescriptor describes a single credential the verifier requires.
type InputDescriptor struct {
	Id      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Purpose string   `json:"purpose,omitempty"`
	Group   []string `json:"group,omitempty"`
	// Schema only exists in v1 definitions. It's ignored for v2 definitions.
	Schema []Schema `json:"schema,omitempty"`
	// Constraints is kept as-is, it's evaluated by other handlers.
	Constraints json.RawMessage `json:"constraints,omitempty"`
}

// Schema is a v1 input descriptor schema entry.
type Schema struct {
	URI      string `json:"uri"`
	Required bool   `json:"required,omitempty"`
}

// SchemaURIs returns the URIs of the input descriptor's schema entries, in order.
func (d InputDescriptor) SchemaURIs() []string {
	result := make([]string, 0, len(d.Schema))
	for _, s := range d.Schema {
		result = append(result, s.URI)
	}
	return result
}

// ParsePresentationDefinition parses a presentation definition and discovers its version:
// a document valid according to the v1 schema is tagged V1, a document valid according to the v2 schema is tagged V2.
// ErrInvalidDefinition is returned if neither schema accepts the document.
func ParsePresentationDefinition(raw []byte) (*PresentationDefinition, error) {
	version, err := discoverVersion(raw)
	if err != nil {
		return nil, err
	}
	var result PresentationDefinition
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, core.WrapError(ErrInvalidDefinition, err)
	}
	result.Version = version
	return &result, nil
}

func discoverVersion(raw []byte) (Version, error) {
	enveloped := []byte(`{"presentation_definition":` + string(raw) + `}`)
	v1Err := schema.Validate(enveloped, schema.PresentationDefinitionV1)
	if v1Err == nil {
		return V1, nil
	}
	v2Err := schema.Validate(enveloped, schema.PresentationDefinitionV2)
	if v2Err == nil {
		return V2, nil
	}
	return "", fmt.Errorf("%w: not a v1 definition (%s), not a v2 definition (%s)", ErrInvalidDefinition, v1Err, v2Err)
}

// asInterface returns the parts of the definition that check result paths refer to, as generic JSON value,
// so it can be queried using JSON paths.
func (presentationDefinition PresentationDefinition) asInterface() interface{} {
	inputDescriptors := make([]interface{}, len(presentationDefinition.InputDescriptors))
	for i, inputDescriptor := range presentationDefinition.InputDescriptors {
		if inputDescriptor != nil {
			inputDescriptors[i] = map[string]interface{}{
				"id":   inputDescriptor.Id,
				"name": inputDescriptor.Name,
			}
		}
	}
	return map[string]interface{}{
		"id":                presentationDefinition.Id,
		"input_descriptors": inputDescriptors,
	}
}
