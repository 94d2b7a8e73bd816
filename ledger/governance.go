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

package ledger

import (
	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
)

// VotingWindow is the fixed length of a proposal's voting window in
// chain heights
const VotingWindow = 1008

// ProposalVotes is the tally summary returned by GetProposalVotes
type ProposalVotes struct {
	VotesFor     uint64
	VotesAgainst uint64
	Total        uint64
}

// CreateProposal creates a new proposal and returns its ID. The
// proposal takes effect one height after the call: its voting window
// runs from height+1 through height+1+VotingWindow.
func (l *Ledger) CreateProposal(
	caller AccountID,
	height uint64,
	title string,
	description string,
) (uint64, error) {
	if title == "" {
		return 0, ErrEmptyTitle
	}
	if description == "" {
		return 0, ErrEmptyDescription
	}
	startHeight, err := checkedAdd(height, 1)
	if err != nil {
		return 0, err
	}
	endHeight, err := checkedAdd(startHeight, VotingWindow)
	if err != nil {
		return 0, err
	}
	var proposalId uint64
	err = l.applyAndEmit(height, func(txn *database.Txn, emit emitFunc) error {
		state, err := l.db.GetGovernanceState(txn)
		if err != nil {
			return err
		}
		proposalId, err = checkedAdd(state.ProposalCount, 1)
		if err != nil {
			return err
		}
		proposal := &models.Proposal{
			ID:          proposalId,
			Creator:     string(caller),
			Title:       title,
			Description: description,
			StartHeight: startHeight,
			EndHeight:   endHeight,
			Status:      models.ProposalStatusActive,
		}
		if err := l.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		state.ProposalCount = proposalId
		if err := l.db.UpdateGovernanceState(state, txn); err != nil {
			return err
		}
		emit(ProposalCreatedEventType, ProposalCreatedEvent{
			ProposalId: proposalId,
			Creator:    caller,
			Title:      title,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	if l.metrics != nil {
		l.metrics.proposalCount.Set(float64(proposalId))
	}
	l.logger.Info(
		"proposal created",
		"component", "governance",
		"proposal_id", proposalId,
		"creator", caller,
	)
	return proposalId, nil
}

// CastVote records a vote on an active proposal. The amount is the
// caller-asserted voting weight.
//
// The weight is NOT cross-checked against the caller's token balance;
// the registry trusts the hosting transaction to have constrained it.
// This is a known correctness gap carried over deliberately from the
// deployed behavior and must not be silently "fixed" here.
func (l *Ledger) CastVote(
	caller AccountID,
	height uint64,
	proposalId uint64,
	voteFor bool,
	amount uint64,
) error {
	err := l.applyAndEmit(height, func(txn *database.Txn, emit emitFunc) error {
		proposal, err := l.db.GetProposal(proposalId, txn)
		if err != nil {
			return err
		}
		if proposal == nil {
			return ErrProposalNotFound
		}
		if proposal.Finalized || height > proposal.EndHeight {
			return ErrProposalNotActive
		}
		if amount == 0 {
			return ErrInvalidVoteAmount
		}
		existing, err := l.db.GetVote(proposalId, string(caller), txn)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyVoted
		}
		if voteFor {
			proposal.VotesFor, err = checkedAdd(proposal.VotesFor, amount)
		} else {
			proposal.VotesAgainst, err = checkedAdd(proposal.VotesAgainst, amount)
		}
		if err != nil {
			return err
		}
		if err := l.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		vote := &models.Vote{
			ProposalID: proposalId,
			Voter:      string(caller),
			VoteFor:    voteFor,
			Amount:     amount,
			Height:     height,
		}
		if err := l.db.SetVote(vote, txn); err != nil {
			return err
		}
		emit(VoteCastEventType, VoteCastEvent{
			ProposalId: proposalId,
			Voter:      caller,
			VoteFor:    voteFor,
			Amount:     amount,
		})
		return nil
	})
	if err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.votesCastTotal.Inc()
	}
	return nil
}

// FinalizeProposal closes a proposal whose voting window has ended and
// fixes its outcome. Returns true iff the proposal passed. A tie
// resolves to rejected.
func (l *Ledger) FinalizeProposal(
	caller AccountID,
	height uint64,
	proposalId uint64,
) (bool, error) {
	var passed bool
	err := l.applyAndEmit(height, func(txn *database.Txn, emit emitFunc) error {
		proposal, err := l.db.GetProposal(proposalId, txn)
		if err != nil {
			return err
		}
		if proposal == nil {
			return ErrProposalNotFound
		}
		if height < proposal.EndHeight {
			return ErrProposalNotEnded
		}
		if proposal.Finalized {
			return ErrProposalAlreadyFinalized
		}
		passed = proposal.VotesFor > proposal.VotesAgainst
		proposal.Finalized = true
		if passed {
			proposal.Status = models.ProposalStatusPassed
		} else {
			proposal.Status = models.ProposalStatusRejected
		}
		if err := l.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		emit(ProposalFinalizedEventType, ProposalFinalizedEvent{
			ProposalId:   proposalId,
			Status:       proposal.Status,
			VotesFor:     proposal.VotesFor,
			VotesAgainst: proposal.VotesAgainst,
		})
		return nil
	})
	if err != nil {
		return false, err
	}
	if l.metrics != nil {
		status := models.ProposalStatusRejected
		if passed {
			status = models.ProposalStatusPassed
		}
		l.metrics.proposalsFinalized.WithLabelValues(status).Inc()
	}
	l.logger.Info(
		"proposal finalized",
		"component", "governance",
		"proposal_id", proposalId,
		"passed", passed,
	)
	return passed, nil
}

// SetVoteTokenContract designates the governance-token contract
// identity. Owner only.
func (l *Ledger) SetVoteTokenContract(
	caller AccountID,
	account AccountID,
) error {
	if !l.guard.IsOwner(caller) {
		return ErrOwnerOnly
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	txn := l.db.Transaction(true)
	return txn.Do(func(txn *database.Txn) error {
		state, err := l.db.GetGovernanceState(txn)
		if err != nil {
			return err
		}
		state.VoteTokenContract = string(account)
		return l.db.UpdateGovernanceState(state, txn)
	})
}

// GetProposal returns a proposal by ID, or nil when no such proposal exists
func (l *Ledger) GetProposal(proposalId uint64) (*models.Proposal, error) {
	return l.db.GetProposal(proposalId, nil)
}

// GetVote returns the vote cast by a voter on a proposal, or nil when
// the voter has not voted
func (l *Ledger) GetVote(
	proposalId uint64,
	voter AccountID,
) (*models.Vote, error) {
	return l.db.GetVote(proposalId, string(voter), nil)
}

// GetProposalCount returns the number of proposals created
func (l *Ledger) GetProposalCount() (uint64, error) {
	state, err := l.db.GetGovernanceState(nil)
	if err != nil {
		return 0, err
	}
	return state.ProposalCount, nil
}

// GetProposalStatus returns the status string for a proposal
func (l *Ledger) GetProposalStatus(proposalId uint64) (string, error) {
	proposal, err := l.db.GetProposal(proposalId, nil)
	if err != nil {
		return "", err
	}
	if proposal == nil {
		return "", ErrProposalNotFound
	}
	return proposal.Status, nil
}

// GetProposalVotes returns the tally summary for a proposal
func (l *Ledger) GetProposalVotes(proposalId uint64) (*ProposalVotes, error) {
	proposal, err := l.db.GetProposal(proposalId, nil)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}
	total, err := checkedAdd(proposal.VotesFor, proposal.VotesAgainst)
	if err != nil {
		return nil, err
	}
	return &ProposalVotes{
		VotesFor:     proposal.VotesFor,
		VotesAgainst: proposal.VotesAgainst,
		Total:        total,
	}, nil
}

// HasVoted reports whether the voter has a vote entry for the proposal
func (l *Ledger) HasVoted(
	proposalId uint64,
	voter AccountID,
) (bool, error) {
	vote, err := l.db.GetVote(proposalId, string(voter), nil)
	if err != nil {
		return false, err
	}
	return vote != nil, nil
}

// IsProposalActive reports whether the proposal can still accept votes
// at the given height. A proposal is active until it is finalized or
// the height passes its end height; heights before the start height
// still count as active.
func (l *Ledger) IsProposalActive(
	proposalId uint64,
	height uint64,
) (bool, error) {
	proposal, err := l.db.GetProposal(proposalId, nil)
	if err != nil {
		return false, err
	}
	if proposal == nil {
		return false, ErrProposalNotFound
	}
	return !proposal.Finalized && height <= proposal.EndHeight, nil
}

// GetVoteTokenContract returns the designated governance-token
// contract identity, or the configured owner when none has been set
func (l *Ledger) GetVoteTokenContract() (AccountID, error) {
	state, err := l.db.GetGovernanceState(nil)
	if err != nil {
		return "", err
	}
	if state.VoteTokenContract == "" {
		return l.config.Owner, nil
	}
	return AccountID(state.VoteTokenContract), nil
}
