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

package ledger_test

import (
	"sync"
	"testing"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/event"
	"github.com/blinklabs-io/agora/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = ledger.AccountID("owner")

type testEnv struct {
	ledger *ledger.Ledger
	db     *database.Database
	bus    *event.EventBus
}

func setupTestLedger(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	bus := event.NewEventBus(nil, nil)
	l, err := ledger.NewLedger(ledger.LedgerConfig{
		EventBus: bus,
		Database: db,
		Owner:    testOwner,
	})
	require.NoError(t, err)
	return &testEnv{
		ledger: l,
		db:     db,
		bus:    bus,
	}
}

func setupTestLedgerAt(t *testing.T, dataDir string) *testEnv {
	t.Helper()
	db, err := database.New(&database.Config{
		DataDir: dataDir,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	bus := event.NewEventBus(nil, nil)
	l, err := ledger.NewLedger(ledger.LedgerConfig{
		EventBus: bus,
		Database: db,
		Owner:    testOwner,
	})
	require.NoError(t, err)
	return &testEnv{
		ledger: l,
		db:     db,
		bus:    bus,
	}
}

// drainEvents collects all events currently buffered on a subscriber
// channel. Event delivery is synchronous, so anything published by a
// completed call is already buffered.
func drainEvents(ch <-chan event.Event) []event.Event {
	var out []event.Event
	for {
		select {
		case evt := <-ch:
			out = append(out, evt)
		default:
			return out
		}
	}
}

func TestFailedCallLeavesNoTrace(t *testing.T) {
	env := setupTestLedger(t)
	_, voteCh := env.bus.Subscribe(ledger.VoteCastEventType)

	head, err := env.db.JournalHead(nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), head)

	// Vote on a proposal that does not exist
	err = env.ledger.CastVote("alice", 10, 1, true, 100)
	require.ErrorIs(t, err, ledger.ErrProposalNotFound)

	// Nothing journaled, nothing published
	head, err = env.db.JournalHead(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), head)
	assert.Empty(t, drainEvents(voteCh))
}

func TestJournalGrowsOnlyOnSuccess(t *testing.T) {
	env := setupTestLedger(t)

	_, err := env.ledger.CreateProposal("alice", 10, "Fund grants", "Grant round one")
	require.NoError(t, err)

	head, err := env.db.JournalHead(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), head)

	entry, err := env.db.GetJournalEntry(1, nil)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, uint64(1), entry.Seq)
	assert.Equal(t, uint64(10), entry.Height)
	assert.Equal(t, string(ledger.ProposalCreatedEventType), entry.Type)

	// A failed call in between must not advance the journal
	err = env.ledger.CastVote("alice", 11, 1, true, 0)
	require.ErrorIs(t, err, ledger.ErrInvalidVoteAmount)

	head, err = env.db.JournalHead(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), head)

	err = env.ledger.CastVote("alice", 11, 1, true, 100)
	require.NoError(t, err)

	head, err = env.db.JournalHead(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), head)
}

func TestMintJournalsBothEvents(t *testing.T) {
	env := setupTestLedger(t)

	err := env.ledger.Mint("alice", 5, 1_000_000, "alice")
	require.NoError(t, err)

	head, err := env.db.JournalHead(nil)
	require.NoError(t, err)
	require.Equal(t, uint64(2), head)

	first, err := env.db.GetJournalEntry(1, nil)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, string(ledger.TokenAssetEventType), first.Type)

	second, err := env.db.GetJournalEntry(2, nil)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, string(ledger.TokenMintEventType), second.Type)
}

// applyTestSequence runs a fixed call sequence covering all three
// sub-ledgers. Calls are applied at strictly increasing heights, one
// height per call.
func applyTestSequence(t *testing.T, env *testEnv) {
	t.Helper()
	height := uint64(0)
	next := func() uint64 {
		height++
		return height
	}
	_, err := env.ledger.CreateProposal(
		"alice", next(), "Fund grants", "Grant round one",
	)
	require.NoError(t, err)
	require.NoError(t, env.ledger.Mint("bob", next(), 5_000_000, "bob"))
	require.NoError(t, env.ledger.CastVote("bob", next(), 1, true, 3_000_000))
	require.NoError(t, env.ledger.CastVote("carol", next(), 1, false, 1_000_000))
	require.NoError(t, env.ledger.Deposit("alice", next(), 9_000))
	require.NoError(
		t,
		env.ledger.Withdraw(testOwner, next(), 2_500, "bob", "grant payout"),
	)
	require.NoError(t, env.ledger.Transfer("bob", next(), 1_000_000, "bob", "carol", ""))
	require.NoError(t, env.ledger.Burn("bob", next(), 500_000))
}

func TestReplayDeterminism(t *testing.T) {
	env1 := setupTestLedgerAt(t, t.TempDir())
	env2 := setupTestLedgerAt(t, t.TempDir())

	applyTestSequence(t, env1)
	applyTestSequence(t, env2)

	// Journals must be byte-for-byte identical
	head1, err := env1.db.JournalHead(nil)
	require.NoError(t, err)
	head2, err := env2.db.JournalHead(nil)
	require.NoError(t, err)
	require.Equal(t, head1, head2)
	for seq := uint64(1); seq <= head1; seq++ {
		entry1, err := env1.db.GetJournalEntry(seq, nil)
		require.NoError(t, err)
		require.NotNil(t, entry1)
		entry2, err := env2.db.GetJournalEntry(seq, nil)
		require.NoError(t, err)
		require.NotNil(t, entry2)
		assert.Equal(t, entry1.Type, entry2.Type)
		assert.Equal(t, entry1.Height, entry2.Height)
		assert.JSONEq(t, string(entry1.Payload), string(entry2.Payload))
	}

	// Final states must match
	votes1, err := env1.ledger.GetProposalVotes(1)
	require.NoError(t, err)
	votes2, err := env2.ledger.GetProposalVotes(1)
	require.NoError(t, err)
	assert.Equal(t, votes1, votes2)

	balance1, err := env1.ledger.GetTreasuryBalance()
	require.NoError(t, err)
	balance2, err := env2.ledger.GetTreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, balance1, balance2)

	supply1, err := env1.ledger.GetTotalSupply()
	require.NoError(t, err)
	supply2, err := env2.ledger.GetTotalSupply()
	require.NoError(t, err)
	assert.Equal(t, supply1, supply2)
}

func TestConcurrentDeposits(t *testing.T) {
	env := setupTestLedger(t)

	const workers = 8
	const callsPerWorker = 50
	const total = workers * callsPerWorker

	// Every call must fully commit. A lost journal entry or a state
	// mutation from a failed call would leave the journal unable to
	// reproduce the balance.
	errs := make(chan error, total)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerWorker; j++ {
				errs <- env.ledger.Deposit("depositor", 1, 1)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	balance, err := env.ledger.GetTreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(total), balance)

	deposits, err := env.ledger.GetTotalDeposits()
	require.NoError(t, err)
	assert.Equal(t, uint64(total), deposits)

	head, err := env.db.JournalHead(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(total), head)
}
