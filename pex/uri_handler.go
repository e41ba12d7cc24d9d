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
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// URIEvaluationName is the name of the URI evaluation handler, as it appears in check results.
const URIEvaluationName = "UriEvaluation"

const (
	uriEvaluationPassed    = "URI evaluation passed"
	uriEvaluationDidntPass = "URI evaluation did not pass"
)

// URIEvaluationPayload is the payload of check results produced by the URIEvaluationHandler.
type URIEvaluationPayload struct {
	VerifiableCredentialURIs []string `json:"verifiableCredentialUris"`
	InputDescriptorURIs      []string `json:"inputDescriptorsUris"`
}

var _ EvaluationHandler = (*URIEvaluationHandler)(nil)

// URIEvaluationHandler checks whether a credential's @context or credentialSchema URIs
// overlap with the schema URIs of an input descriptor (v1 definitions).
// V2 dropped schema filtering, so for v2 definitions every pair passes.
// It also derives the presentation submission from the pairs that passed.
type URIEvaluationHandler struct {
	workers           int
	parallelThreshold int
}

// NewURIEvaluationHandler creates a URIEvaluationHandler.
// Pairs are evaluated by up to workers goroutines when there are at least parallelThreshold pairs,
// otherwise they're evaluated sequentially. Results are identical in both cases.
func NewURIEvaluationHandler(workers int, parallelThreshold int) *URIEvaluationHandler {
	return &URIEvaluationHandler{
		workers:           workers,
		parallelThreshold: parallelThreshold,
	}
}

// Name returns URIEvaluationName.
func (h URIEvaluationHandler) Name() string {
	return URIEvaluationName
}

// Handle evaluates every (input descriptor, credential) pair, appends one check result per pair
// and sets the presentation submission on the evaluation.
// The descriptor map only considers results of this pass, not results of previous handlers.
func (h URIEvaluationHandler) Handle(evaluation *Evaluation, definition PresentationDefinition, credentials []Credential) {
	results := h.evaluate(definition, credentials)
	evaluation.Append(results...)
	evaluation.SetSubmission(h.submission(definition, results))
}

// evaluate returns the check results ordered by (input descriptor index, credential index).
func (h URIEvaluationHandler) evaluate(definition PresentationDefinition, credentials []Credential) []HandlerCheckResult {
	results := make([]HandlerCheckResult, len(definition.InputDescriptors)*len(credentials))
	credentialURIs := make([][]string, len(credentials))
	for j, credential := range credentials {
		credentialURIs[j] = fetchCredentialURIs(credential)
	}
	evaluateDescriptor := func(i int) {
		descriptorURIs := fetchInputDescriptorURIs(definition, i)
		for j := range credentials {
			results[i*len(credentials)+j] = h.evaluateURIs(definition.Version, credentialURIs[j], descriptorURIs, i, j)
		}
	}

	if h.workers <= 1 || len(results) < h.parallelThreshold {
		for i := range definition.InputDescriptors {
			evaluateDescriptor(i)
		}
		return results
	}
	// every goroutine writes its own part of results, so no locking is needed
	group := errgroup.Group{}
	group.SetLimit(h.workers)
	for i := range definition.InputDescriptors {
		group.Go(func() error {
			evaluateDescriptor(i)
			return nil
		})
	}
	_ = group.Wait()
	return results
}

func (h URIEvaluationHandler) evaluateURIs(version Version, credentialURIs []string, descriptorURIs []string, descriptorIndex int, credentialIndex int) HandlerCheckResult {
	result := HandlerCheckResult{
		InputDescriptorPath:      inputDescriptorPath(descriptorIndex),
		VerifiableCredentialPath: verifiableCredentialPath(credentialIndex),
		Evaluator:                h.Name(),
		Payload: URIEvaluationPayload{
			VerifiableCredentialURIs: credentialURIs,
			InputDescriptorURIs:      descriptorURIs,
		},
	}
	if matchURIs(version, credentialURIs, descriptorURIs) {
		result.Status = StatusInfo
		result.Message = uriEvaluationPassed
	} else {
		result.Status = StatusError
		result.Message = uriEvaluationDidntPass
	}
	return result
}

// matchURIs returns true if at least one credential URI equals (case-sensitive) one of the descriptor URIs.
// Any version other than V1 always matches.
func matchURIs(version Version, credentialURIs []string, descriptorURIs []string) bool {
	if version != V1 {
		return true
	}
	for _, credentialURI := range credentialURIs {
		for _, descriptorURI := range descriptorURIs {
			if credentialURI == descriptorURI {
				return true
			}
		}
	}
	return false
}

// fetchInputDescriptorURIs returns the schema URIs of the i-th input descriptor for V1 definitions.
// Other versions don't have schema URIs.
func fetchInputDescriptorURIs(definition PresentationDefinition, index int) []string {
	inputDescriptor := definition.InputDescriptors[index]
	if definition.Version != V1 || inputDescriptor == nil {
		return []string{}
	}
	return inputDescriptor.SchemaURIs()
}

// fetchCredentialURIs returns the credential's @context URIs followed by its credentialSchema ids.
func fetchCredentialURIs(credential Credential) []string {
	result := credential.Context()
	for _, credentialSchema := range credential.CredentialSchema() {
		result = append(result, credentialSchema.Id)
	}
	return result
}

// submission builds the presentation submission from the results that passed, in result order.
// The format is always ldp_vc.
// TODO: derive the format from the credential's proof once JWT credentials are evaluated.
func (h URIEvaluationHandler) submission(definition PresentationDefinition, results []HandlerCheckResult) PresentationSubmission {
	document := definition.asInterface()
	descriptorMap := make([]InputDescriptorMappingObject, 0)
	for _, result := range results {
		if result.Status != StatusInfo {
			continue
		}
		descriptorMap = append(descriptorMap, InputDescriptorMappingObject{
			Id:     resolveInputDescriptorID(document, result.InputDescriptorPath),
			Format: JSONLDCredentialFormat,
			Path:   result.VerifiableCredentialPath,
		})
	}
	return PresentationSubmission{
		Id:            uuid.New().String(),
		DefinitionId:  definition.Id,
		DescriptorMap: descriptorMap,
	}
}

// resolveInputDescriptorID returns the id of the input descriptor the path points to.
// Paths are created from the definition being evaluated, so a path that doesn't resolve is a programming error.
func resolveInputDescriptorID(document interface{}, path string) string {
	value, err := jsonpath.Get(path, document)
	if err != nil {
		panic(fmt.Sprintf("input descriptor path %s does not resolve: %v", path, err))
	}
	inputDescriptor, _ := value.(map[string]interface{})
	id, _ := inputDescriptor["id"].(string)
	return id
}
