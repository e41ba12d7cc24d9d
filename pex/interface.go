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

// Evaluator evaluates credentials against presentation definitions and keeps the resulting submissions.
type Evaluator interface {
	// Evaluate runs the evaluation handlers over the credentials and returns the check results and presentation submission.
	Evaluate(definition PresentationDefinition, credentials []Credential) (*EvaluationResult, error)
	// Submission returns a previously produced presentation submission. It returns ErrSubmissionNotFound if it doesn't exist.
	Submission(id string) (*PresentationSubmission, error)
	// DefinitionByScope returns the configured presentation definition for the scope. It returns ErrUnknownScope if there's none.
	DefinitionByScope(scope string) (*PresentationDefinition, error)
}
