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
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/nuts-foundation/nuts-pex/pex/schema"
)

// JSONLDCredentialFormat is the claim format designation of JSON-LD Verifiable Credentials.
const JSONLDCredentialFormat = "ldp_vc"

// PresentationSubmission describes which credentials satisfy which input descriptors of a presentation definition.
type PresentationSubmission struct {
	// Id is the id of the presentation submission, which is a UUID
	Id string `json:"id"`
	// DefinitionId is the id of the presentation definition that this submission is for
	DefinitionId string `json:"definition_id"`
	// DescriptorMap is a list of mappings from input descriptors to VCs
	DescriptorMap []InputDescriptorMappingObject `json:"descriptor_map"`
}

// InputDescriptorMappingObject maps an input descriptor to the location of the credential that satisfies it.
type InputDescriptorMappingObject struct {
	Id     string `json:"id"`
	Format string `json:"format"`
	Path   string `json:"path"`
}

// ParsePresentationSubmission validates the given JSON and parses it into a PresentationSubmission.
// It returns an error if the JSON is invalid or doesn't match the JSON schema for a PresentationSubmission.
func ParsePresentationSubmission(raw []byte) (*PresentationSubmission, error) {
	enveloped := `{"presentation_submission":` + string(raw) + `}`
	if err := schema.Validate([]byte(enveloped), schema.PresentationSubmission); err != nil {
		return nil, err
	}
	var result PresentationSubmission
	err := json.Unmarshal(raw, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Resolve returns a map where each of the input descriptors is mapped to the credentials its mappings point to,
// in descriptor map order. Paths are evaluated against the list of credentials the submission was created for.
// If a path does not point to a credential, an error is returned.
func (s PresentationSubmission) Resolve(credentials []Credential) (map[string][]Credential, error) {
	asJSON, _ := json.Marshal(credentials)
	var asInterface interface{}
	_ = json.Unmarshal(asJSON, &asInterface)

	result := make(map[string][]Credential)
	for _, mapping := range s.DescriptorMap {
		value, err := jsonpath.Get(mapping.Path, asInterface)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve credential for input descriptor '%s': %w", mapping.Id, err)
		}
		document, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unable to resolve credential for input descriptor '%s': path '%s' does not reference a credential", mapping.Id, mapping.Path)
		}
		result[mapping.Id] = append(result[mapping.Id], Credential{document: document})
	}
	return result, nil
}
