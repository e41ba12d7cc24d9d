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
	"time"

	"github.com/nuts-foundation/nuts-pex/core"
	"github.com/nuts-foundation/nuts-pex/pex/log"
)

// EvaluationResult is the outcome of evaluating credentials against a presentation definition.
type EvaluationResult struct {
	// Results contains the check results of all handlers, in handler order.
	Results []HandlerCheckResult `json:"results"`
	// Submission is the presentation submission derived during evaluation, if any handler produced one.
	Submission *PresentationSubmission `json:"presentation_submission,omitempty"`
}

// Errors returns the results with status error.
func (r EvaluationResult) Errors() []HandlerCheckResult {
	return r.withStatus(StatusError)
}

// Warnings returns the results with status warn.
func (r EvaluationResult) Warnings() []HandlerCheckResult {
	return r.withStatus(StatusWarn)
}

func (r EvaluationResult) withStatus(status Status) []HandlerCheckResult {
	result := make([]HandlerCheckResult, 0)
	for _, current := range r.Results {
		if current.Status == status {
			result = append(result, current)
		}
	}
	return result
}

// EvaluationClient runs a fixed, ordered list of evaluation handlers over a presentation definition and credentials.
type EvaluationClient struct {
	handlers []EvaluationHandler
	metrics  *Metrics
}

// ClientOption configures an EvaluationClient.
type ClientOption func(client *EvaluationClient)

// WithHandlers replaces the handlers of the client. They're invoked in the given order.
func WithHandlers(handlers ...EvaluationHandler) ClientOption {
	return func(client *EvaluationClient) {
		client.handlers = handlers
	}
}

// WithMetrics makes the client record check results and evaluation durations.
func WithMetrics(metrics *Metrics) ClientOption {
	return func(client *EvaluationClient) {
		client.metrics = metrics
	}
}

// NewEvaluationClient creates an EvaluationClient. Without WithHandlers, it only runs a sequential URIEvaluationHandler.
func NewEvaluationClient(opts ...ClientOption) *EvaluationClient {
	client := &EvaluationClient{
		handlers: []EvaluationHandler{NewURIEvaluationHandler(1, 0)},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Handlers returns the names of the client's handlers, in invocation order.
func (c *EvaluationClient) Handlers() []string {
	names := make([]string, len(c.handlers))
	for i, handler := range c.handlers {
		names[i] = handler.Name()
	}
	return names
}

// Evaluate runs all handlers on a fresh Evaluation and returns its results and submission.
func (c *EvaluationClient) Evaluate(definition PresentationDefinition, credentials []Credential) EvaluationResult {
	start := time.Now()
	evaluation := &Evaluation{}
	for _, handler := range c.handlers {
		offset := len(evaluation.Results())
		handler.Handle(evaluation, definition, credentials)
		handlerResults := evaluation.Results()[offset:]
		if c.metrics != nil {
			c.metrics.observeResults(handlerResults)
		}
		log.Logger().
			WithField(core.LogFieldDefinitionID, definition.Id).
			WithField(core.LogFieldEvaluator, handler.Name()).
			Debugf("Evaluated %d input descriptor(s) against %d credential(s): %d result(s), %d error(s)",
				len(definition.InputDescriptors), len(credentials), len(handlerResults), countStatus(handlerResults, StatusError))
	}
	if c.metrics != nil {
		c.metrics.evaluationDuration.Observe(time.Since(start).Seconds())
	}
	return EvaluationResult{
		Results:    evaluation.Results(),
		Submission: evaluation.Submission(),
	}
}

func countStatus(results []HandlerCheckResult, status Status) int {
	var count int
	for _, result := range results {
		if result.Status == status {
			count++
		}
	}
	return count
}
