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

import "fmt"

// Status is the outcome of a single check.
type Status string

const (
	// StatusInfo means the check passed.
	StatusInfo Status = "info"
	// StatusWarn means the check passed, but with a remark.
	StatusWarn Status = "warn"
	// StatusError means the check failed.
	StatusError Status = "error"
)

// HandlerCheckResult records the outcome of one evaluation handler for one (input descriptor, credential) pair.
// InputDescriptorPath is always $.input_descriptors[i] and VerifiableCredentialPath is always $[j],
// where i and j index the evaluated definition's input descriptors and credentials.
type HandlerCheckResult struct {
	InputDescriptorPath      string      `json:"input_descriptor_path"`
	VerifiableCredentialPath string      `json:"verifiable_credential_path"`
	Evaluator                string      `json:"evaluator"`
	Status                   Status      `json:"status"`
	Message                  string      `json:"message,omitempty"`
	Payload                  interface{} `json:"payload,omitempty"`
}

func inputDescriptorPath(index int) string {
	return fmt.Sprintf("$.input_descriptors[%d]", index)
}

func verifiableCredentialPath(index int) string {
	return fmt.Sprintf("$[%d]", index)
}
