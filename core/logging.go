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

package core

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldDefinitionID is the log field key for the ID of a Presentation Definition from the PEX module.
	LogFieldDefinitionID = "definitionID"
	// LogFieldSubmissionID is the log field key for the ID of a Presentation Submission from the PEX module.
	LogFieldSubmissionID = "submissionID"
	// LogFieldEvaluator is the log field key for the name of an evaluation handler from the PEX module.
	LogFieldEvaluator = "evaluator"
	// LogFieldScope is the log field key for the scope a Presentation Definition is resolved for.
	LogFieldScope = "scope"
)
