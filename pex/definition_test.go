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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const v1DefinitionJSON = `{
  "id": "pd_v1",
  "name": "Care organization",
  "input_descriptors": [
    {
      "id": "organization_credential",
      "schema": [{"uri": "https://nuts.nl/credentials/v1"}, {"uri": "https://schema.org/Organization", "required": true}],
      "constraints": {"fields": [{"path": ["$.type"]}]}
    }
  ]
}`

const v2DefinitionJSON = `{
  "id": "pd_v2",
  "input_descriptors": [
    {
      "id": "organization_credential",
      "purpose": "Proof of organization",
      "constraints": {"fields": [{"path": ["$.type"], "filter": {"type": "string", "const": "NutsOrganizationCredential"}}]}
    }
  ]
}`

func TestParsePresentationDefinition(t *testing.T) {
	t.Run("v1", func(t *testing.T) {
		definition, err := ParsePresentationDefinition([]byte(v1DefinitionJSON))

		require.NoError(t, err)
		assert.Equal(t, V1, definition.Version)
		assert.Equal(t, "pd_v1", definition.Id)
		assert.Equal(t, "Care organization", definition.Name)
		require.Len(t, definition.InputDescriptors, 1)
		assert.Equal(t, []string{"https://nuts.nl/credentials/v1", "https://schema.org/Organization"}, definition.InputDescriptors[0].SchemaURIs())
		assert.True(t, definition.InputDescriptors[0].Schema[1].Required)
		assert.NotEmpty(t, definition.InputDescriptors[0].Constraints)
	})
	t.Run("v2", func(t *testing.T) {
		definition, err := ParsePresentationDefinition([]byte(v2DefinitionJSON))

		require.NoError(t, err)
		assert.Equal(t, V2, definition.Version)
		assert.Equal(t, "Proof of organization", definition.InputDescriptors[0].Purpose)
		assert.Empty(t, definition.InputDescriptors[0].SchemaURIs())
	})
	t.Run("mixed descriptors are neither v1 nor v2", func(t *testing.T) {
		_, err := ParsePresentationDefinition([]byte(`{"id": "1", "input_descriptors": [{"id": "a", "schema": []}, {"id": "b"}]}`))

		assert.ErrorIs(t, err, ErrInvalidDefinition)
	})
	t.Run("missing id", func(t *testing.T) {
		_, err := ParsePresentationDefinition([]byte(`{"input_descriptors": []}`))

		assert.ErrorIs(t, err, ErrInvalidDefinition)
	})
	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParsePresentationDefinition([]byte(`{`))

		assert.ErrorIs(t, err, ErrInvalidDefinition)
	})
}

func TestPresentationDefinition_asInterface(t *testing.T) {
	definition := PresentationDefinition{
		Id: "1",
		InputDescriptors: []*InputDescriptor{
			{Id: "a", Name: "A", Constraints: []byte("not json")},
			nil,
		},
	}

	document := definition.asInterface().(map[string]interface{})

	assert.Equal(t, "1", document["id"])
	descriptors := document["input_descriptors"].([]interface{})
	require.Len(t, descriptors, 2)
	assert.Equal(t, "a", descriptors[0].(map[string]interface{})["id"])
	assert.Nil(t, descriptors[1])
}
