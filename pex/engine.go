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
	"fmt"
	"os"
	"path"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nuts-foundation/nuts-pex/core"
	"github.com/nuts-foundation/nuts-pex/pex/log"
	"github.com/prometheus/client_golang/prometheus"
	berrors "go.etcd.io/bbolt/errors"
)

const storeOpenAttempts = 3

var _ core.Named = (*Module)(nil)
var _ core.Injectable = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ core.Runnable = (*Module)(nil)
var _ Evaluator = (*Module)(nil)

// ErrSubmissionStorageDisabled is returned when submissions are requested, but they are not stored.
var ErrSubmissionStorageDisabled = errors.New("presentation submission storage is disabled")

var errSubmissionNotStored = errors.New("unable to store presentation submission")

// NewPEXInstance creates a new PEX engine with default config.
func NewPEXInstance() *Module {
	return &Module{
		config:      DefaultConfig(),
		metrics:     NewMetrics(),
		definitions: &DefinitionResolver{},
	}
}

// Module is the PEX engine. It evaluates credentials against presentation definitions.
type Module struct {
	config      Config
	client      *EvaluationClient
	metrics     *Metrics
	definitions *DefinitionResolver
	store       SubmissionStore
	datadir     string
}

// Name returns ModuleName.
func (m *Module) Name() string {
	return ModuleName
}

// Config returns the engine's config.
func (m *Module) Config() interface{} {
	return &m.config
}

// Configure validates the config, registers the metrics and loads the configured presentation definitions.
func (m *Module) Configure(config core.ServerConfig) error {
	if m.config.Workers < 1 {
		return errors.New("pex.workers must be at least 1")
	}
	if m.config.ParallelThreshold < 0 {
		return errors.New("pex.parallelthreshold can't be negative")
	}
	if err := m.metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("unable to register PEX metrics: %w", err)
	}
	m.client = NewEvaluationClient(
		WithHandlers(NewURIEvaluationHandler(m.config.Workers, m.config.ParallelThreshold)),
		WithMetrics(m.metrics),
	)
	if m.config.Definitions != "" {
		if err := m.definitions.LoadFromFile(m.config.Definitions); err != nil {
			return fmt.Errorf("unable to load presentation definitions (file=%s): %w", m.config.Definitions, err)
		}
		log.Logger().Infof("Loaded presentation definitions for %d scope(s)", m.definitions.Scopes())
	}
	m.datadir = config.Datadir
	return nil
}

// Start opens the submission store, if enabled.
func (m *Module) Start() error {
	if !m.config.StoreSubmissions {
		return nil
	}
	storeDir := path.Join(m.datadir, "pex")
	if err := os.MkdirAll(storeDir, os.ModePerm); err != nil {
		return fmt.Errorf("unable to create PEX data directory (dir=%s): %w", storeDir, err)
	}
	store, err := openSubmissionStore(path.Join(storeDir, "submissions.db"))
	if err != nil {
		return err
	}
	m.store = store
	return nil
}

// openSubmissionStore opens the submission store, retrying while another process holds the database lock.
func openSubmissionStore(filename string) (SubmissionStore, error) {
	var store SubmissionStore
	err := retry.Do(func() error {
		var err error
		store, err = NewBBoltSubmissionStore(filename)
		if err != nil && !errors.Is(err, berrors.ErrTimeout) {
			return retry.Unrecoverable(err)
		}
		return err
	},
		retry.Attempts(storeOpenAttempts),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			log.Logger().
				WithError(err).
				Warnf("Submission store is locked, retrying (attempt=%d)", attempt+1)
		}),
	)
	return store, err
}

// Shutdown closes the submission store.
func (m *Module) Shutdown() error {
	if m.store == nil {
		return nil
	}
	return m.store.Close()
}

// Evaluate runs the evaluation client and stores the resulting submission.
func (m *Module) Evaluate(definition PresentationDefinition, credentials []Credential) (*EvaluationResult, error) {
	result := m.client.Evaluate(definition, credentials)
	if m.store != nil && result.Submission != nil {
		if err := m.store.Put(*result.Submission); err != nil {
			log.Logger().
				WithError(err).
				WithField(core.LogFieldSubmissionID, result.Submission.Id).
				Error("Failed to store presentation submission")
			return nil, core.WrapError(errSubmissionNotStored, err)
		}
		log.Logger().
			WithField(core.LogFieldDefinitionID, definition.Id).
			WithField(core.LogFieldSubmissionID, result.Submission.Id).
			Debug("Stored presentation submission")
	}
	return &result, nil
}

// Submission returns a stored presentation submission.
func (m *Module) Submission(id string) (*PresentationSubmission, error) {
	if m.store == nil {
		return nil, ErrSubmissionStorageDisabled
	}
	return m.store.Get(id)
}

// DefinitionByScope returns the presentation definition configured for the scope.
func (m *Module) DefinitionByScope(scope string) (*PresentationDefinition, error) {
	definition := m.definitions.ByScope(scope)
	if definition == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScope, scope)
	}
	return definition, nil
}
