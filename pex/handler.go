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

// EvaluationHandler evaluates one rule of the Presentation Exchange specification for every
// (input descriptor, credential) pair and records the outcome in the given Evaluation.
// Handlers are invoked by the EvaluationClient in a fixed order; they don't invoke each other.
type EvaluationHandler interface {
	// Name returns the name of the handler, which is used as evaluator in the check results it produces.
	Name() string
	// Handle evaluates the credentials against the presentation definition.
	Handle(evaluation *Evaluation, definition PresentationDefinition, credentials []Credential)
}
