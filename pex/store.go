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
	"os"
)

// ErrUnknownScope is returned when no presentation definition is configured for a scope.
var ErrUnknownScope = errors.New("no presentation definition for scope")

// DefinitionResolver is a store for presentation definitions.
// It loads a file with the mapping from scope to presentation definition.
type DefinitionResolver struct {
	// mapping holds the scope to presentation definition mapping
	mapping map[string]PresentationDefinition
}

// LoadFromFile loads the mapping from the given file.
// Every presentation definition in the file is validated and its version discovered.
func (s *DefinitionResolver) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var rawMapping map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMapping); err != nil {
		return fmt.Errorf("invalid presentation definition mapping (file=%s): %w", filename, err)
	}
	mapping := make(map[string]PresentationDefinition, len(rawMapping))
	for scope, raw := range rawMapping {
		definition, err := ParsePresentationDefinition(raw)
		if err != nil {
			return fmt.Errorf("invalid presentation definition for scope '%s': %w", scope, err)
		}
		mapping[scope] = *definition
	}
	s.mapping = mapping
	return nil
}

// ByScope returns the presentation definition for the given scope.
// Returns nil if it doesn't exist or if no mappings are loaded.
func (s *DefinitionResolver) ByScope(scope string) *PresentationDefinition {
	mapping, ok := s.mapping[scope]
	if !ok {
		return nil
	}
	return &mapping
}

// Scopes returns the number of scopes that have a presentation definition.
func (s *DefinitionResolver) Scopes() int {
	return len(s.mapping)
}
