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
	"testing"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(&Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	return db
}

func TestStateRowsSeeded(t *testing.T) {
	db := setupTestDatabase(t)

	govState, err := db.GetGovernanceState(nil)
	require.NoError(t, err)
	require.NotNil(t, govState)
	assert.Equal(t, uint64(0), govState.ProposalCount)

	treasuryState, err := db.GetTreasuryState(nil)
	require.NoError(t, err)
	require.NotNil(t, treasuryState)
	assert.Equal(t, uint64(0), treasuryState.Balance)

	tokenState, err := db.GetTokenState(nil)
	require.NoError(t, err)
	require.NotNil(t, tokenState)
	assert.Equal(t, uint64(0), tokenState.TotalSupply)
}

func TestProposalRoundTrip(t *testing.T) {
	db := setupTestDatabase(t)

	// Initially absent
	proposal, err := db.GetProposal(1, nil)
	require.NoError(t, err)
	assert.Nil(t, proposal)

	err = db.SetProposal(&models.Proposal{
		ID:          1,
		Creator:     "alice",
		Title:       "Fund grants",
		Description: "Grant round one",
		StartHeight: 101,
		EndHeight:   1109,
		Status:      models.ProposalStatusActive,
	}, nil)
	require.NoError(t, err)

	proposal, err = db.GetProposal(1, nil)
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.Equal(t, "alice", proposal.Creator)
	assert.Equal(t, uint64(101), proposal.StartHeight)

	// Save updates in place
	proposal.VotesFor = 500
	require.NoError(t, db.SetProposal(proposal, nil))
	proposal, err = db.GetProposal(1, nil)
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.Equal(t, uint64(500), proposal.VotesFor)
}

func TestVoteUniqueness(t *testing.T) {
	db := setupTestDatabase(t)

	err := db.SetVote(&models.Vote{
		ProposalID: 1,
		Voter:      "bob",
		VoteFor:    true,
		Amount:     100,
		Height:     101,
	}, nil)
	require.NoError(t, err)

	// Same voter on the same proposal violates the unique index
	err = db.SetVote(&models.Vote{
		ProposalID: 1,
		Voter:      "bob",
		VoteFor:    false,
		Amount:     200,
		Height:     102,
	}, nil)
	require.Error(t, err)

	// Same voter on a different proposal is fine
	err = db.SetVote(&models.Vote{
		ProposalID: 2,
		Voter:      "bob",
		VoteFor:    true,
		Amount:     100,
		Height:     103,
	}, nil)
	require.NoError(t, err)

	vote, err := db.GetVote(1, "bob", nil)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.True(t, vote.VoteFor)
	assert.Equal(t, uint64(100), vote.Amount)

	vote, err = db.GetVote(1, "carol", nil)
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestTokenBalanceUpsert(t *testing.T) {
	db := setupTestDatabase(t)

	require.NoError(t, db.SetTokenBalance(&models.TokenBalance{
		Account: "alice",
		Amount:  1_000,
	}, nil))
	require.NoError(t, db.SetTokenBalance(&models.TokenBalance{
		Account: "bob",
		Amount:  500,
	}, nil))

	// Upsert replaces the existing row rather than adding another
	require.NoError(t, db.SetTokenBalance(&models.TokenBalance{
		Account: "alice",
		Amount:  2_000,
	}, nil))

	balance, err := db.GetTokenBalance("alice", nil)
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, uint64(2_000), balance.Amount)

	sum, err := db.SumTokenBalances(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_500), sum)
}

func TestJournalAppend(t *testing.T) {
	db := setupTestDatabase(t)

	// Appending outside a transaction is rejected
	_, err := db.AppendJournalEntry(10, "test.event", nil, nil)
	require.Error(t, err)

	head, err := db.JournalHead(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), head)

	type testPayload struct {
		Value string `json:"value"`
	}

	txn := db.Transaction(true)
	err = txn.Do(func(txn *Txn) error {
		seq, err := db.AppendJournalEntry(
			10,
			"test.event",
			testPayload{Value: "first"},
			txn,
		)
		if err != nil {
			return err
		}
		if seq != 1 {
			return errors.New("unexpected sequence number")
		}
		seq, err = db.AppendJournalEntry(
			10,
			"test.event",
			testPayload{Value: "second"},
			txn,
		)
		if err != nil {
			return err
		}
		if seq != 2 {
			return errors.New("unexpected sequence number")
		}
		return nil
	})
	require.NoError(t, err)

	head, err = db.JournalHead(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), head)

	entry, err := db.GetJournalEntry(2, nil)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, uint64(2), entry.Seq)
	assert.Equal(t, uint64(10), entry.Height)
	assert.Equal(t, "test.event", entry.Type)
	assert.JSONEq(t, `{"value":"second"}`, string(entry.Payload))

	entry, err = db.GetJournalEntry(3, nil)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestTxnRollback(t *testing.T) {
	db := setupTestDatabase(t)

	errBoom := errors.New("boom")
	txn := db.Transaction(true)
	err := txn.Do(func(txn *Txn) error {
		if err := db.SetProposal(&models.Proposal{
			ID:      1,
			Creator: "alice",
			Title:   "Fund grants",
			Status:  models.ProposalStatusActive,
		}, txn); err != nil {
			return err
		}
		if _, err := db.AppendJournalEntry(
			10, "test.event", nil, txn,
		); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	// Neither store committed anything
	proposal, err := db.GetProposal(1, nil)
	require.NoError(t, err)
	assert.Nil(t, proposal)
	head, err := db.JournalHead(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), head)
}

func TestTxnFinished(t *testing.T) {
	db := setupTestDatabase(t)

	txn := db.Transaction(true)
	require.NoError(t, txn.Commit())
	require.ErrorIs(t, txn.Commit(), ErrTxnFinished)
	require.ErrorIs(t, txn.Rollback(), ErrTxnFinished)
}
