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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_createEchoServer(t *testing.T) {
	do := func(server http.Handler, method string) int {
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(method, "/", nil))
		return recorder.Code
	}
	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}

	t.Run("rate limits POST requests", func(t *testing.T) {
		server, err := createEchoServer(HTTPConfig{RateLimit: 0.001, RateLimitBurst: 1})
		require.NoError(t, err)
		server.POST("/", handler)
		server.GET("/", handler)

		assert.Equal(t, http.StatusNoContent, do(server.(http.Handler), http.MethodPost))
		assert.Equal(t, http.StatusTooManyRequests, do(server.(http.Handler), http.MethodPost))
		assert.Equal(t, http.StatusNoContent, do(server.(http.Handler), http.MethodGet))
	})
	t.Run("no rate limit by default", func(t *testing.T) {
		server, err := createEchoServer(HTTPConfig{})
		require.NoError(t, err)
		server.POST("/", handler)

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusNoContent, do(server.(http.Handler), http.MethodPost))
		}
	})
	t.Run("invalid burst", func(t *testing.T) {
		_, err := createEchoServer(HTTPConfig{RateLimit: 1})

		assert.EqualError(t, err, "http.ratelimitburst must be at least 1 when rate limiting is enabled")
	})
}
