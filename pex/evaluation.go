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

import "sync"

// Evaluation accumulates the results of a single evaluation pass over all handlers.
// It is safe for concurrent use.
type Evaluation struct {
	mux        sync.Mutex
	results    []HandlerCheckResult
	submission *PresentationSubmission
}

// Append adds results to the evaluation, keeping their order.
func (e *Evaluation) Append(results ...HandlerCheckResult) {
	e.mux.Lock()
	defer e.mux.Unlock()
	e.results = append(e.results, results...)
}

// Results returns a copy of all results accumulated so far.
func (e *Evaluation) Results() []HandlerCheckResult {
	e.mux.Lock()
	defer e.mux.Unlock()
	result := make([]HandlerCheckResult, len(e.results))
	copy(result, e.results)
	return result
}

// SetSubmission replaces the evaluation's presentation submission.
func (e *Evaluation) SetSubmission(submission PresentationSubmission) {
	e.mux.Lock()
	defer e.mux.Unlock()
	e.submission = &submission
}

// Submission returns the presentation submission, or nil if no handler produced one.
func (e *Evaluation) Submission() *PresentationSubmission {
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.submission == nil {
		return nil
	}
	result := *e.submission
	return &result
}
