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

package agora

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blinklabs-io/agora/api"
	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/event"
	"github.com/blinklabs-io/agora/ledger"
)

// Dao hosts the governance ledger core: it owns the database, the
// event bus, and the block-height clock, and exposes the ledger to
// API consumers. Concurrent mutating calls are safe; the ledger
// serializes application internally.
type Dao struct {
	config        Config
	eventBus      *event.EventBus
	db            *database.Database
	ledger        *ledger.Ledger
	api           *api.Api
	height        uint64
	heightMutex   sync.Mutex
	shutdownFuncs []func(context.Context) error
	done          chan struct{}
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Dao, error) {
	eventBus := event.NewEventBus(cfg.promRegistry, cfg.logger)
	d := &Dao{
		config:   cfg,
		eventBus: eventBus,
		done:     make(chan struct{}),
	}
	if d.config.owner == "" {
		return nil, errors.New("no owner configured")
	}
	return d, nil
}

func (d *Dao) Run(ctx context.Context) error {
	// Configure tracing
	if d.config.tracing {
		if err := d.setupTracing(); err != nil {
			return err
		}
	}
	// Load database
	db, err := database.New(&database.Config{
		DataDir: d.config.dataDir,
		Logger:  d.config.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	d.db = db
	// Load ledger
	l, err := ledger.NewLedger(ledger.LedgerConfig{
		Logger:       d.config.logger,
		EventBus:     d.eventBus,
		Database:     d.db,
		PromRegistry: d.config.promRegistry,
		Owner:        d.config.owner,
	})
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	d.ledger = l
	// Restore the height clock from the journal
	if err := d.restoreHeight(); err != nil {
		return fmt.Errorf("failed to restore height: %w", err)
	}
	// Start API listener
	if d.config.apiListenAddress != "" {
		d.api = api.New(
			api.ApiConfig{
				ListenAddress: d.config.apiListenAddress,
			},
			d,
			d.config.logger,
		)
		if err := d.api.Start(ctx); err != nil {
			return fmt.Errorf("failed to start API listener: %w", err)
		}
	}

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case <-d.done:
	}
	return nil
}

func (d *Dao) Stop() error {
	var err error
	d.shutdownOnce.Do(func() {
		err = d.shutdown()
	})
	return err
}

func (d *Dao) shutdown() error {
	// Create shutdown context with timeout (default 30s if not configured)
	shutdownTimeout := 30 * time.Second
	if d.config.shutdownTimeout > 0 {
		shutdownTimeout = d.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	d.config.logger.Debug("starting graceful shutdown")

	if d.api != nil {
		if stopErr := d.api.Stop(ctx); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("api shutdown: %w", stopErr))
		}
	}

	// Call registered shutdown functions
	for _, fn := range d.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown function: %w", fnErr))
		}
	}
	d.shutdownFuncs = nil

	if d.eventBus != nil {
		d.eventBus.Stop()
	}

	if d.db != nil {
		if closeErr := d.db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("database close: %w", closeErr))
		}
	}

	close(d.done)

	return err
}

// Ledger returns the governance ledger core
func (d *Dao) Ledger() *ledger.Ledger {
	return d.ledger
}

// EventBus returns the event bus
func (d *Dao) EventBus() *event.EventBus {
	return d.eventBus
}

// Database returns the database
func (d *Dao) Database() *database.Database {
	return d.db
}

// CurrentHeight returns the current block height
func (d *Dao) CurrentHeight() uint64 {
	d.heightMutex.Lock()
	defer d.heightMutex.Unlock()
	return d.height
}

// AdvanceHeight increments the block height clock and returns the new
// height. The hosting environment advances the clock exactly once per
// applied call, before the call executes.
func (d *Dao) AdvanceHeight() uint64 {
	d.heightMutex.Lock()
	defer d.heightMutex.Unlock()
	d.height++
	return d.height
}

// restoreHeight seeds the height clock from the last journal entry so
// a restarted instance never reuses a height already spent
func (d *Dao) restoreHeight() error {
	head, err := d.db.JournalHead(nil)
	if err != nil {
		return err
	}
	if head == 0 {
		return nil
	}
	entry, err := d.db.GetJournalEntry(head, nil)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("journal head %d has no entry", head)
	}
	d.heightMutex.Lock()
	d.height = entry.Height
	d.heightMutex.Unlock()
	return nil
}
