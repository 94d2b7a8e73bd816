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
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

const journalKeyPrefix = "j"

var journalHeadKey = []byte("journal_head")

// JournalEntry is one event recorded in the append-only journal. The
// journal is the replayable audit surface for everything the core
// emitted; entries are keyed by a monotonically increasing sequence
// number and never rewritten.
type JournalEntry struct {
	Seq     uint64          `json:"seq"`
	Height  uint64          `json:"height"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func journalEntryKey(seq uint64) []byte {
	key := []byte(journalKeyPrefix)
	key = binary.BigEndian.AppendUint64(key, seq)
	return key
}

// JournalHead returns the number of entries in the journal
func (d *Database) JournalHead(txn *Txn) (uint64, error) {
	blobTxn := d.blobTxnHandle(txn)
	if txn == nil {
		defer blobTxn.Discard()
	}
	return journalHead(blobTxn)
}

func journalHead(blobTxn *badger.Txn) (uint64, error) {
	item, err := blobTxn.Get(journalHeadKey)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get journal head: %w", err)
	}
	var head uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("malformed journal head value: %x", val)
		}
		head = binary.BigEndian.Uint64(val)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return head, nil
}

// AppendJournalEntry assigns the next sequence number to the given
// entry, marshals the provided payload, and appends it to the journal
// within the given transaction
func (d *Database) AppendJournalEntry(
	height uint64,
	entryType string,
	payload any,
	txn *Txn,
) (uint64, error) {
	if txn == nil {
		return 0, errors.New("journal append requires a transaction")
	}
	blobTxn := txn.Blob()
	head, err := journalHead(blobTxn)
	if err != nil {
		return 0, err
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal journal payload: %w", err)
	}
	entry := JournalEntry{
		Seq:     head + 1,
		Height:  height,
		Type:    entryType,
		Payload: payloadJson,
	}
	entryJson, err := json.Marshal(&entry)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal journal entry: %w", err)
	}
	if err := blobTxn.Set(journalEntryKey(entry.Seq), entryJson); err != nil {
		return 0, fmt.Errorf("failed to append journal entry: %w", err)
	}
	headVal := binary.BigEndian.AppendUint64(nil, entry.Seq)
	if err := blobTxn.Set(journalHeadKey, headVal); err != nil {
		return 0, fmt.Errorf("failed to update journal head: %w", err)
	}
	return entry.Seq, nil
}

// GetJournalEntry returns a journal entry by sequence number, or nil
// when no such entry exists
func (d *Database) GetJournalEntry(
	seq uint64,
	txn *Txn,
) (*JournalEntry, error) {
	blobTxn := d.blobTxnHandle(txn)
	if txn == nil {
		defer blobTxn.Discard()
	}
	item, err := blobTxn.Get(journalEntryKey(seq))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	var entry JournalEntry
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode journal entry: %w", err)
	}
	return &entry, nil
}

// blobTxnHandle returns the blob transaction for the given Txn, or a
// fresh read-only transaction when none is provided
func (d *Database) blobTxnHandle(txn *Txn) *badger.Txn {
	if txn != nil {
		return txn.Blob()
	}
	return d.blob.NewTransaction(false)
}
