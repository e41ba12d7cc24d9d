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

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsNamespace is the prometheus namespace of all metrics exposed by this application.
const MetricsNamespace = "nuts"

// NewMetricsEngine creates a new engine for exposing prometheus metrics via http.
// Metrics are exposed on /metrics, by default the GoCollector and ProcessCollector are enabled.
func NewMetricsEngine() *MetricsEngine {
	return &MetricsEngine{}
}

// MetricsEngine registers the default collectors and exposes the metrics over HTTP.
type MetricsEngine struct{}

// Name returns the name of the engine.
func (m MetricsEngine) Name() string {
	return "Metrics"
}

// Configure registers the default collectors on the default registry.
func (m MetricsEngine) Configure(_ ServerConfig) error {
	collectors := []prometheus.Collector{
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	}

	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			are := prometheus.AlreadyRegisteredError{}
			if !errors.As(err, &are) {
				return err
			}
		}
	}

	return nil
}

// Routes registers the /metrics endpoint.
func (m MetricsEngine) Routes(router EchoRouter) {
	router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
