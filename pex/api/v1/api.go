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
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-pex/core"
	"github.com/nuts-foundation/nuts-pex/pex"
)

var _ core.Routable = (*Wrapper)(nil)
var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)

const (
	evaluateOperationID      = "Evaluate"
	getSubmissionOperationID = "GetSubmission"
)

// Wrapper implements the HTTP API of the PEX engine.
type Wrapper struct {
	Evaluator pex.Evaluator
}

// Routes registers the API operations on the router.
func (w *Wrapper) Routes(router core.EchoRouter) {
	router.POST("/internal/pex/v1/evaluate", w.Evaluate, w.preprocess(evaluateOperationID))
	router.GET("/internal/pex/v1/submission/:id", w.GetSubmission, w.preprocess(getSubmissionOperationID))
}

func (w *Wrapper) preprocess(operationID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(core.OperationIDContextKey, operationID)
			ctx.Set(core.ModuleNameContextKey, pex.ModuleName)
			ctx.Set(core.StatusCodeResolverContextKey, w)
			return next(ctx)
		}
	}
}

// ResolveStatusCode maps errors returned by this API to specific HTTP status codes.
func (w *Wrapper) ResolveStatusCode(err error) int {
	return core.ResolveStatusCode(err, map[error]int{
		pex.ErrInvalidDefinition:         http.StatusBadRequest,
		pex.ErrUnknownScope:              http.StatusNotFound,
		pex.ErrSubmissionNotFound:        http.StatusNotFound,
		pex.ErrSubmissionStorageDisabled: http.StatusPreconditionFailed,
	})
}

// Evaluate evaluates the credentials in the request against the given or configured presentation definition.
func (w *Wrapper) Evaluate(ctx echo.Context) error {
	request := EvaluateRequest{}
	if err := ctx.Bind(&request); err != nil {
		return err
	}
	definition, err := w.resolveDefinition(request)
	if err != nil {
		return err
	}
	result, err := w.Evaluator.Evaluate(*definition, request.VerifiableCredentials)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

func (w *Wrapper) resolveDefinition(request EvaluateRequest) (*pex.PresentationDefinition, error) {
	hasDefinition := len(request.PresentationDefinition) > 0 && string(request.PresentationDefinition) != "null"
	switch {
	case hasDefinition && request.Scope != "":
		return nil, core.InvalidInputError("presentation_definition and scope are mutually exclusive")
	case hasDefinition:
		return pex.ParsePresentationDefinition(request.PresentationDefinition)
	case request.Scope != "":
		return w.Evaluator.DefinitionByScope(request.Scope)
	default:
		return nil, core.InvalidInputError("either presentation_definition or scope must be given")
	}
}

// GetSubmission returns a previously produced presentation submission.
func (w *Wrapper) GetSubmission(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return core.InvalidInputError("missing submission id")
	}
	submission, err := w.Evaluator.Submission(id)
	if err != nil {
		if errors.Is(err, pex.ErrSubmissionNotFound) {
			return core.NotFoundError("presentation submission not found (id=%s)", id)
		}
		return err
	}
	return ctx.JSON(http.StatusOK, submission)
}
