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

	"github.com/nuts-foundation/go-did/vc"
)

// CredentialSchema is an entry of a credential's credentialSchema property.
type CredentialSchema struct {
	Id   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// Credential is a Verifiable Credential as presented for evaluation.
// It keeps the credential's JSON document, so properties that are not modelled (or malformed) survive evaluation.
type Credential struct {
	document map[string]interface{}
}

// ParseCredential parses a single JSON-LD Verifiable Credential.
func ParseCredential(raw []byte) (Credential, error) {
	var document map[string]interface{}
	if err := json.Unmarshal(raw, &document); err != nil {
		return Credential{}, fmt.Errorf("invalid credential: %w", err)
	}
	return Credential{document: document}, nil
}

// ParseCredentials parses a JSON array of JSON-LD Verifiable Credentials.
func ParseCredentials(raw []byte) ([]Credential, error) {
	var documents []map[string]interface{}
	if err := json.Unmarshal(raw, &documents); err != nil {
		return nil, fmt.Errorf("invalid credential list: %w", err)
	}
	result := make([]Credential, len(documents))
	for i, document := range documents {
		if document == nil {
			return nil, fmt.Errorf("invalid credential list: entry %d is not an object", i)
		}
		result[i] = Credential{document: document}
	}
	return result, nil
}

// CredentialFromVC converts a go-did Verifiable Credential so it can be evaluated.
func CredentialFromVC(credential vc.VerifiableCredential) (Credential, error) {
	asJSON, err := json.Marshal(credential)
	if err != nil {
		return Credential{}, err
	}
	return ParseCredential(asJSON)
}

// MarshalJSON returns the credential's JSON document.
func (c Credential) MarshalJSON() ([]byte, error) {
	if c.document == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.document)
}

// UnmarshalJSON parses the credential's JSON document.
func (c *Credential) UnmarshalJSON(data []byte) error {
	parsed, err := ParseCredential(data)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ID returns the credential's id, or an empty string if it has none.
func (c Credential) ID() string {
	id, _ := c.document["id"].(string)
	return id
}

// Context returns the credential's @context as a list.
// A single context URI yields a list of one. Inline (object) contexts and other non-string values are skipped.
func (c Credential) Context() []string {
	switch value := c.document["@context"].(type) {
	case string:
		return []string{value}
	case []interface{}:
		result := make([]string, 0, len(value))
		for _, entry := range value {
			if uri, ok := entry.(string); ok {
				result = append(result, uri)
			}
		}
		return result
	default:
		return []string{}
	}
}

// CredentialSchema returns the credential's credentialSchema entries as a list.
// Both a single object and a list of objects are accepted. Entries without a string id are skipped.
func (c Credential) CredentialSchema() []CredentialSchema {
	result := make([]CredentialSchema, 0)
	switch value := c.document["credentialSchema"].(type) {
	case map[string]interface{}:
		if entry, ok := toCredentialSchema(value); ok {
			result = append(result, entry)
		}
	case []interface{}:
		for _, raw := range value {
			asMap, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			if entry, ok := toCredentialSchema(asMap); ok {
				result = append(result, entry)
			}
		}
	}
	return result
}

func toCredentialSchema(value map[string]interface{}) (CredentialSchema, bool) {
	id, ok := value["id"].(string)
	if !ok {
		return CredentialSchema{}, false
	}
	schemaType, _ := value["type"].(string)
	return CredentialSchema{Id: id, Type: schemaType}, true
}
