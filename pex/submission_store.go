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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// ErrSubmissionNotFound is returned when a presentation submission is not in the store.
var ErrSubmissionNotFound = errors.New("presentation submission not found")

var submissionsBucket = []byte("submissions")

// SubmissionStore keeps the presentation submissions produced by evaluations.
type SubmissionStore interface {
	// Put stores the submission under its id, overwriting an existing one.
	Put(submission PresentationSubmission) error
	// Get returns the submission with the given id, or ErrSubmissionNotFound.
	Get(id string) (*PresentationSubmission, error)
	// Close releases the underlying storage.
	Close() error
}

// NewBBoltSubmissionStore opens (or creates) a bbolt database at the given path.
func NewBBoltSubmissionStore(path string) (SubmissionStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("unable to open submission store (path=%s): %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(submissionsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to create submissions bucket: %w", err)
	}
	return &bboltSubmissionStore{db: db}, nil
}

type bboltSubmissionStore struct {
	db *bbolt.DB
}

func (b *bboltSubmissionStore) Put(submission PresentationSubmission) error {
	data, err := json.Marshal(submission)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(submissionsBucket).Put([]byte(submission.Id), data)
	})
}

func (b *bboltSubmissionStore) Get(id string) (*PresentationSubmission, error) {
	var result *PresentationSubmission
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(submissionsBucket).Get([]byte(id))
		if data == nil {
			return ErrSubmissionNotFound
		}
		result = &PresentationSubmission{}
		return json.Unmarshal(data, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (b *bboltSubmissionStore) Close() error {
	return b.db.Close()
}
