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

// Package ledger implements the deterministic governance state
// transition core: the proposal registry, the treasury, and the
// fungible governance-token ledger. Each operation takes the
// authenticated caller identity and the current chain height as
// explicit parameters, applies all of its effects in a single database
// transaction, and publishes its events only after commit. A failed
// call leaves every ledger unchanged and emits nothing.
package ledger

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/event"
	"github.com/prometheus/client_golang/prometheus"
)

// AccountID is an opaque, globally unique account identifier. It is
// supplied by the hosting chain with every call; the core never
// fabricates one.
type AccountID string

// LedgerConfig describes the ledger core configuration
type LedgerConfig struct {
	Logger       *slog.Logger
	EventBus     *event.EventBus
	Database     *database.Database
	PromRegistry prometheus.Registerer
	// Owner is the deployment-time owner identity used by all
	// owner-gated operations
	Owner AccountID
}

// Ledger is the deterministic state-transition core. Mutating
// operations are serialized on an internal mutex: the two-store commit
// cannot tolerate overlap, so calls apply one at a time regardless of
// how the hosting environment dispatches them.
type Ledger struct {
	config   LedgerConfig
	db       *database.Database
	eventBus *event.EventBus
	logger   *slog.Logger
	metrics  *ledgerMetrics
	guard    AuthorizationGuard
	mutex    sync.Mutex
}

// NewLedger creates the governance ledger core on top of the given
// database and event bus
func NewLedger(cfg LedgerConfig) (*Ledger, error) {
	if cfg.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	l := &Ledger{
		config:   cfg,
		db:       cfg.Database,
		eventBus: cfg.EventBus,
		logger:   cfg.Logger,
		guard:    NewAuthorizationGuard(cfg.Owner),
	}
	if cfg.PromRegistry != nil {
		l.metrics = &ledgerMetrics{}
		l.metrics.init(cfg.PromRegistry)
	}
	if err := l.initTokenState(); err != nil {
		return nil, err
	}
	l.syncMetrics()
	return l, nil
}

// Owner returns the configured owner identity
func (l *Ledger) Owner() AccountID {
	return l.config.Owner
}

// pendingEvent is an event staged during a call, journaled inside the
// call's transaction and published on the bus only after commit
type pendingEvent struct {
	eventType event.EventType
	payload   any
}

type emitFunc func(event.EventType, any)

// applyAndEmit runs fn inside a read-write transaction. Events staged
// via the emit callback are appended to the blob-store journal within
// the same transaction and published on the event bus after a
// successful commit. On error nothing is committed, journaled, or
// published. Calls are serialized: an overlapping commit would let the
// metadata store land while the journal append fails on a blob-store
// conflict, leaving state mutated with no journal entry.
func (l *Ledger) applyAndEmit(
	height uint64,
	fn func(txn *database.Txn, emit emitFunc) error,
) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	var pending []pendingEvent
	emit := func(eventType event.EventType, payload any) {
		pending = append(pending, pendingEvent{
			eventType: eventType,
			payload:   payload,
		})
	}
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if err := fn(txn, emit); err != nil {
			return err
		}
		for _, evt := range pending {
			_, err := l.db.AppendJournalEntry(
				height,
				string(evt.eventType),
				evt.payload,
				txn,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if l.eventBus != nil {
		for _, evt := range pending {
			l.eventBus.Publish(
				evt.eventType,
				event.NewEvent(evt.eventType, evt.payload),
			)
		}
	}
	return nil
}

// syncMetrics refreshes the state gauges from the database. Called at
// startup so restored state is reflected immediately.
func (l *Ledger) syncMetrics() {
	if l.metrics == nil {
		return
	}
	if state, err := l.db.GetTreasuryState(nil); err == nil {
		l.metrics.treasuryBalance.Set(float64(state.Balance))
	}
	if state, err := l.db.GetTokenState(nil); err == nil {
		l.metrics.tokenSupply.Set(float64(state.TotalSupply))
	}
	if state, err := l.db.GetGovernanceState(nil); err == nil {
		l.metrics.proposalCount.Set(float64(state.ProposalCount))
	}
}

// checkedAdd returns a + b, failing instead of wrapping on overflow
func checkedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// checkedSub returns a - b, failing instead of wrapping on underflow
func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrAmountOverflow
	}
	return a - b, nil
}

// checkedMul returns a * b, failing instead of wrapping on overflow
func checkedMul(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, ErrAmountOverflow
	}
	return a * b, nil
}
