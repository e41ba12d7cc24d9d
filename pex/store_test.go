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
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefinitions(t *testing.T, contents string) string {
	t.Helper()
	filename := path.Join(t.TempDir(), "definitions.json")
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0600))
	return filename
}

func TestDefinitionResolver_LoadFromFile(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		store := DefinitionResolver{}
		filename := writeDefinitions(t, `{"eOverdracht-overdrachtsbericht": `+v1DefinitionJSON+`, "organization": `+v2DefinitionJSON+`}`)

		err := store.LoadFromFile(filename)

		require.NoError(t, err)
		assert.Equal(t, 2, store.Scopes())
		assert.Equal(t, V1, store.ByScope("eOverdracht-overdrachtsbericht").Version)
		assert.Equal(t, V2, store.ByScope("organization").Version)
	})
	t.Run("invalid definition", func(t *testing.T) {
		store := DefinitionResolver{}
		filename := writeDefinitions(t, `{"scope": {"id": "1"}}`)

		err := store.LoadFromFile(filename)

		assert.ErrorIs(t, err, ErrInvalidDefinition)
		assert.ErrorContains(t, err, "invalid presentation definition for scope 'scope'")
		assert.Equal(t, 0, store.Scopes())
	})
	t.Run("invalid JSON", func(t *testing.T) {
		store := DefinitionResolver{}
		filename := writeDefinitions(t, `[]`)

		err := store.LoadFromFile(filename)

		assert.ErrorContains(t, err, "invalid presentation definition mapping")
	})
	t.Run("file does not exist", func(t *testing.T) {
		store := DefinitionResolver{}

		err := store.LoadFromFile(path.Join(t.TempDir(), "missing.json"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDefinitionResolver_ByScope(t *testing.T) {
	t.Run("nothing loaded", func(t *testing.T) {
		store := DefinitionResolver{}

		assert.Nil(t, store.ByScope("scope"))
	})
	t.Run("unknown scope", func(t *testing.T) {
		store := DefinitionResolver{}
		require.NoError(t, store.LoadFromFile(writeDefinitions(t, `{"organization": `+v2DefinitionJSON+`}`)))

		assert.Nil(t, store.ByScope("other"))
		assert.NotNil(t, store.ByScope("organization"))
	})
}
