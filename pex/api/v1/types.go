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

package v1

import (
	"encoding/json"

	"github.com/nuts-foundation/nuts-pex/pex"
)

// EvaluateRequest is the request body of the evaluate operation.
// Either PresentationDefinition or Scope must be set.
type EvaluateRequest struct {
	// PresentationDefinition is the presentation definition to evaluate against.
	PresentationDefinition json.RawMessage `json:"presentation_definition,omitempty"`
	// Scope refers to a configured presentation definition.
	Scope string `json:"scope,omitempty"`
	// VerifiableCredentials contains the credentials to evaluate.
	VerifiableCredentials []pex.Credential `json:"verifiable_credentials"`
}

// EvaluateResponse is the response body of the evaluate operation.
type EvaluateResponse = pex.EvaluationResult

// SubmissionResponse is the response body of the get submission operation.
type SubmissionResponse = pex.PresentationSubmission
