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

import "errors"

// Caller-visible error values. These are stable and matched exactly by
// callers via errors.Is; every failure leaves all ledger state
// unchanged.
var (
	// ErrEmptyTitle is returned when creating a proposal with an empty title
	ErrEmptyTitle = errors.New("empty proposal title")
	// ErrEmptyDescription is returned when creating a proposal with an empty description
	ErrEmptyDescription = errors.New("empty proposal description")
	// ErrProposalNotFound is returned for operations on an unknown proposal ID
	ErrProposalNotFound = errors.New("proposal not found")
	// ErrProposalNotActive is returned when voting on a finalized or expired proposal
	ErrProposalNotActive = errors.New("proposal not active")
	// ErrInvalidVoteAmount is returned when casting a vote with zero weight
	ErrInvalidVoteAmount = errors.New("invalid vote amount")
	// ErrAlreadyVoted is returned when a voter already has a vote on the proposal
	ErrAlreadyVoted = errors.New("already voted")
	// ErrProposalNotEnded is returned when finalizing before the voting window ends
	ErrProposalNotEnded = errors.New("proposal voting window not ended")
	// ErrProposalAlreadyFinalized is returned when finalizing twice
	ErrProposalAlreadyFinalized = errors.New("proposal already finalized")
	// ErrInvalidAmount is returned for a zero amount on any value-moving call
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnauthorized is returned when the caller is neither the owner
	// nor the designated governance contract
	ErrUnauthorized = errors.New("unauthorized")
	// ErrOwnerOnly is returned when an owner-only operation is called
	// by anyone else
	ErrOwnerOnly = errors.New("owner only")
	// ErrNotTokenOwner is returned when transferring from an account
	// other than the caller's own
	ErrNotTokenOwner = errors.New("not token owner")
	// ErrInsufficientBalance is returned when burning more than the
	// caller's balance or withdrawing more than the treasury holds
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientFunds is the generic fungible-ledger error for a
	// transfer exceeding the sender's balance
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAmountOverflow is returned when arithmetic would wrap in
	// either direction
	ErrAmountOverflow = errors.New("amount out of range")
)
