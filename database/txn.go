// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"errors"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"gorm.io/gorm"
)

// ErrTxnFinished is returned when committing or rolling back a
// transaction that has already completed
var ErrTxnFinished = errors.New("transaction already finished")

// Txn is a wrapper that coordinates the metadata and blob transactions.
// Metadata and blob are first-class siblings, not nested.
type Txn struct {
	db          *Database
	metadataTxn *gorm.DB
	blobTxn     *badger.Txn
	lock        sync.Mutex
	finished    bool
	readWrite   bool
}

func NewTxn(db *Database, readWrite bool) *Txn {
	return &Txn{
		db:          db,
		metadataTxn: db.Metadata().Begin(),
		blobTxn:     db.Blob().NewTransaction(readWrite),
		readWrite:   readWrite,
	}
}

func (t *Txn) DB() *Database {
	return t.db
}

// Metadata returns the underlying metadata transaction handle
func (t *Txn) Metadata() *gorm.DB {
	return t.metadataTxn
}

// Blob returns the blob transaction handle
func (t *Txn) Blob() *badger.Txn {
	return t.blobTxn
}

// Do executes the specified function in the context of the transaction.
// Any errors returned will result in the transaction being rolled back
func (t *Txn) Do(fn func(*Txn) error) error {
	if err := fn(t); err != nil {
		if err2 := t.Rollback(); err2 != nil {
			return fmt.Errorf(
				"rollback failed: %w: original error: %w",
				err2,
				err,
			)
		}
		return err
	}
	return t.Commit()
}

// Commit commits the metadata and blob transactions. The metadata
// store commits first, since it holds the authoritative ledger state.
func (t *Txn) Commit() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return ErrTxnFinished
	}
	t.finished = true
	if result := t.metadataTxn.Commit(); result.Error != nil {
		t.blobTxn.Discard()
		return result.Error
	}
	if err := t.blobTxn.Commit(); err != nil {
		return err
	}
	return nil
}

// Rollback discards both transactions
func (t *Txn) Rollback() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return ErrTxnFinished
	}
	t.finished = true
	t.blobTxn.Discard()
	if result := t.metadataTxn.Rollback(); result.Error != nil {
		return result.Error
	}
	return nil
}

// Release discards a read-only transaction without an error on reuse
func (t *Txn) Release() {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return
	}
	t.finished = true
	t.blobTxn.Discard()
	t.metadataTxn.Rollback()
}
