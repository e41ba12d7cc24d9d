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
	"errors"

	"github.com/nuts-foundation/nuts-pex/core"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors of the evaluation client.
type Metrics struct {
	checkResults       *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		checkResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: "pex",
			Name:      "check_results_total",
			Help:      "Number of check results produced by evaluation handlers, by evaluator and status.",
		}, []string{"evaluator", "status"}),
		evaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: "pex",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of evaluating credentials against a presentation definition.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

// Register registers the collectors. If a collector was already registered, the existing one is used.
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	if err := registerer.Register(m.checkResults); err != nil {
		are := prometheus.AlreadyRegisteredError{}
		if !errors.As(err, &are) {
			return err
		}
		m.checkResults = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := registerer.Register(m.evaluationDuration); err != nil {
		are := prometheus.AlreadyRegisteredError{}
		if !errors.As(err, &are) {
			return err
		}
		m.evaluationDuration = are.ExistingCollector.(prometheus.Histogram)
	}
	return nil
}

func (m *Metrics) observeResults(results []HandlerCheckResult) {
	for _, result := range results {
		m.checkResults.WithLabelValues(result.Evaluator, string(result.Status)).Inc()
	}
}
