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

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schneider.vip/problem"
)

type stubResolver map[error]int

func (s stubResolver) ResolveStatusCode(err error) int {
	return ResolveStatusCode(err, s)
}

func TestHttpErrorHandler(t *testing.T) {
	err1 := errors.New("error 1")
	server := NewEchoServer()
	do := func(t *testing.T, handler echo.HandlerFunc) (*http.Response, string) {
		t.Helper()
		server.GET("/", handler)
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		response := recorder.Result()
		body, err := io.ReadAll(response.Body)
		require.NoError(t, err)
		return response, string(body)
	}

	t.Run("is echo HTTPError", func(t *testing.T) {
		response, body := do(t, func(c echo.Context) error {
			err := errors.New("failed")
			return &echo.HTTPError{
				Code:     http.StatusForbidden,
				Message:  err.Error(),
				Internal: err,
			}
		})

		assert.Equal(t, http.StatusForbidden, response.StatusCode)
		assert.Equal(t, problem.ContentTypeJSON, response.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"detail":"failed","status":403,"title":"Operation failed"}`, body)
	})
	t.Run("error mapping from context", func(t *testing.T) {
		response, body := do(t, func(c echo.Context) error {
			c.Set(OperationIDContextKey, "test")
			c.Set(StatusCodeResolverContextKey, stubResolver{err1: http.StatusNotFound})
			return WrapError(err1, errors.New("cause"))
		})

		assert.Equal(t, http.StatusNotFound, response.StatusCode)
		assert.JSONEq(t, `{"detail":"error 1: cause","status":404,"title":"test failed"}`, body)
	})
	t.Run("predefined status code", func(t *testing.T) {
		response, body := do(t, func(c echo.Context) error {
			c.Set(OperationIDContextKey, "test")
			return InvalidInputError("missing %s", "scope")
		})

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assert.JSONEq(t, `{"detail":"missing scope","status":400,"title":"test failed"}`, body)
	})
	t.Run("unmapped", func(t *testing.T) {
		response, body := do(t, func(c echo.Context) error {
			c.Set(OperationIDContextKey, "test")
			c.Set(StatusCodeResolverContextKey, stubResolver{err1: http.StatusNotFound})
			return errors.New("other error")
		})

		assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
		assert.JSONEq(t, `{"detail":"other error","status":500,"title":"test failed"}`, body)
	})
}

func Test_NotFoundError(t *testing.T) {
	err := NotFoundError("failed: %s", "oops").(httpStatusCodeError)
	assert.EqualError(t, err, "failed: oops")
	assert.Equal(t, http.StatusNotFound, err.statusCode)
	assert.ErrorIs(t, err, NotFoundError(""))
}

func Test_InvalidInputError(t *testing.T) {
	err := InvalidInputError("failed: %s", "oops").(httpStatusCodeError)
	assert.EqualError(t, err, "failed: oops")
	assert.Equal(t, http.StatusBadRequest, err.statusCode)
	assert.ErrorIs(t, err, InvalidInputError(""))
}

func Test_Error(t *testing.T) {
	cause := errors.New("cause")

	err := Error(http.StatusConflict, "failed: %w", cause)

	assert.EqualError(t, err, "failed: cause")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusConflict, err.(HTTPStatusCodeError).StatusCode())
}

func TestResolveStatusCode(t *testing.T) {
	err1 := errors.New("error 1")
	mapping := map[error]int{err1: http.StatusNotFound}

	assert.Equal(t, http.StatusNotFound, ResolveStatusCode(err1, mapping))
	assert.Equal(t, http.StatusNotFound, ResolveStatusCode(WrapError(err1, errors.New("cause")), mapping))
	assert.Equal(t, 0, ResolveStatusCode(errors.New("other"), mapping))
}
