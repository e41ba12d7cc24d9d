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
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nuts-foundation/nuts-pex/core"
	"github.com/nuts-foundation/nuts-pex/pex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const v2Definition = `{"id": "pd", "input_descriptors": [{"id": "organization_credential"}]}`

type testContext struct {
	evaluator *pex.MockEvaluator
	server    http.Handler
}

func newTestContext(t *testing.T) testContext {
	ctrl := gomock.NewController(t)
	evaluator := pex.NewMockEvaluator(ctrl)
	server := core.NewEchoServer()
	(&Wrapper{Evaluator: evaluator}).Routes(server)
	return testContext{
		evaluator: evaluator,
		server:    server,
	}
}

func (ctx testContext) do(method string, target string, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	ctx.server.ServeHTTP(recorder, request)
	return recorder
}

func problemDetail(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	assert.Equal(t, "application/problem+json", recorder.Header().Get("Content-Type"))
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	return result
}

func TestWrapper_Evaluate(t *testing.T) {
	evaluationResult := &pex.EvaluationResult{
		Results: []pex.HandlerCheckResult{{
			InputDescriptorPath:      "$.input_descriptors[0]",
			VerifiableCredentialPath: "$[0]",
			Evaluator:                pex.URIEvaluationName,
			Status:                   pex.StatusInfo,
		}},
		Submission: &pex.PresentationSubmission{
			Id:            "submission",
			DefinitionId:  "pd",
			DescriptorMap: []pex.InputDescriptorMappingObject{{Id: "organization_credential", Format: pex.JSONLDCredentialFormat, Path: "$[0]"}},
		},
	}

	t.Run("with presentation definition", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.evaluator.EXPECT().Evaluate(gomock.Any(), gomock.Len(1)).DoAndReturn(func(definition pex.PresentationDefinition, credentials []pex.Credential) (*pex.EvaluationResult, error) {
			assert.Equal(t, pex.V2, definition.Version)
			assert.Equal(t, "vc", credentials[0].ID())
			return evaluationResult, nil
		})

		recorder := ctx.do(http.MethodPost, "/internal/pex/v1/evaluate", `{"presentation_definition": `+v2Definition+`, "verifiable_credentials": [{"id": "vc"}]}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		var response EvaluateResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "submission", response.Submission.Id)
		assert.Len(t, response.Results, 1)
	})
	t.Run("with scope", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.evaluator.EXPECT().DefinitionByScope("organization").Return(&pex.PresentationDefinition{Id: "pd", Version: pex.V2}, nil)
		ctx.evaluator.EXPECT().Evaluate(pex.PresentationDefinition{Id: "pd", Version: pex.V2}, gomock.Any()).Return(evaluationResult, nil)

		recorder := ctx.do(http.MethodPost, "/internal/pex/v1/evaluate", `{"scope": "organization", "verifiable_credentials": []}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("unknown scope", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.evaluator.EXPECT().DefinitionByScope("other").Return(nil, pex.ErrUnknownScope)

		recorder := ctx.do(http.MethodPost, "/internal/pex/v1/evaluate", `{"scope": "other", "verifiable_credentials": []}`)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "Evaluate failed", problemDetail(t, recorder)["title"])
	})
	t.Run("invalid presentation definition", func(t *testing.T) {
		ctx := newTestContext(t)

		recorder := ctx.do(http.MethodPost, "/internal/pex/v1/evaluate", `{"presentation_definition": {"input_descriptors": []}, "verifiable_credentials": []}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, problemDetail(t, recorder)["detail"], "invalid presentation definition")
	})
	t.Run("definition and scope", func(t *testing.T) {
		ctx := newTestContext(t)

		recorder := ctx.do(http.MethodPost, "/internal/pex/v1/evaluate", `{"presentation_definition": `+v2Definition+`, "scope": "organization"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "presentation_definition and scope are mutually exclusive", problemDetail(t, recorder)["detail"])
	})
	t.Run("neither definition nor scope", func(t *testing.T) {
		ctx := newTestContext(t)

		recorder := ctx.do(http.MethodPost, "/internal/pex/v1/evaluate", `{"verifiable_credentials": []}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("invalid credential", func(t *testing.T) {
		ctx := newTestContext(t)

		recorder := ctx.do(http.MethodPost, "/internal/pex/v1/evaluate", `{"presentation_definition": `+v2Definition+`, "verifiable_credentials": ["vc"]}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("evaluation fails", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.evaluator.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))

		recorder := ctx.do(http.MethodPost, "/internal/pex/v1/evaluate", `{"presentation_definition": `+v2Definition+`, "verifiable_credentials": []}`)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestWrapper_GetSubmission(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.evaluator.EXPECT().Submission("submission").Return(&pex.PresentationSubmission{Id: "submission", DefinitionId: "pd"}, nil)

		recorder := ctx.do(http.MethodGet, "/internal/pex/v1/submission/submission", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response SubmissionResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "pd", response.DefinitionId)
	})
	t.Run("not found", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.evaluator.EXPECT().Submission("unknown").Return(nil, pex.ErrSubmissionNotFound)

		recorder := ctx.do(http.MethodGet, "/internal/pex/v1/submission/unknown", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "presentation submission not found (id=unknown)", problemDetail(t, recorder)["detail"])
	})
	t.Run("storage disabled", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.evaluator.EXPECT().Submission("submission").Return(nil, pex.ErrSubmissionStorageDisabled)

		recorder := ctx.do(http.MethodGet, "/internal/pex/v1/submission/submission", "")

		assert.Equal(t, http.StatusPreconditionFailed, recorder.Code)
	})
}

func TestWrapper_ResolveStatusCode(t *testing.T) {
	wrapper := &Wrapper{}

	assert.Equal(t, http.StatusBadRequest, wrapper.ResolveStatusCode(pex.ErrInvalidDefinition))
	assert.Equal(t, http.StatusNotFound, wrapper.ResolveStatusCode(pex.ErrUnknownScope))
	assert.Equal(t, 0, wrapper.ResolveStatusCode(errors.New("other")))
}
