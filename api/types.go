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
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package api

// ErrorResponse is the standard error response body
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// RootResponse is returned from GET /
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

// TipResponse is returned from GET /v1/tip
type TipResponse struct {
	Height uint64 `json:"height"`
}

// CreateProposalRequest is the body for POST /v1/governance/proposals
type CreateProposalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateProposalResponse is returned from POST /v1/governance/proposals
type CreateProposalResponse struct {
	ProposalId uint64 `json:"proposal_id"`
	Height     uint64 `json:"height"`
}

// ProposalResponse describes a proposal
type ProposalResponse struct {
	ProposalId   uint64 `json:"proposal_id"`
	Creator      string `json:"creator"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	StartHeight  uint64 `json:"start_height"`
	EndHeight    uint64 `json:"end_height"`
	VotesFor     uint64 `json:"votes_for"`
	VotesAgainst uint64 `json:"votes_against"`
	Status       string `json:"status"`
	Finalized    bool   `json:"finalized"`
	Executed     bool   `json:"executed"`
	Active       bool   `json:"active"`
}

// ProposalVotesResponse describes the vote tallies for a proposal
type ProposalVotesResponse struct {
	VotesFor     uint64 `json:"votes_for"`
	VotesAgainst uint64 `json:"votes_against"`
	Total        uint64 `json:"total"`
}

// CastVoteRequest is the body for POST /v1/governance/proposals/{id}/votes
type CastVoteRequest struct {
	VoteFor bool   `json:"vote_for"`
	Amount  uint64 `json:"amount"`
}

// VoteResponse describes a recorded vote
type VoteResponse struct {
	ProposalId uint64 `json:"proposal_id"`
	Voter      string `json:"voter"`
	VoteFor    bool   `json:"vote_for"`
	Amount     uint64 `json:"amount"`
	Height     uint64 `json:"height"`
}

// FinalizeProposalResponse is returned from
// POST /v1/governance/proposals/{id}/finalize
type FinalizeProposalResponse struct {
	ProposalId uint64 `json:"proposal_id"`
	Passed     bool   `json:"passed"`
	Status     string `json:"status"`
}

// SetAccountRequest sets an account-valued configuration item
type SetAccountRequest struct {
	Account string `json:"account"`
}

// TreasuryResponse describes the treasury state
type TreasuryResponse struct {
	Balance            uint64 `json:"balance"`
	TotalDeposits      uint64 `json:"total_deposits"`
	TotalWithdrawals   uint64 `json:"total_withdrawals"`
	SpendingCount      uint64 `json:"spending_count"`
	GovernanceContract string `json:"governance_contract"`
}

// DepositRequest is the body for POST /v1/treasury/deposits
type DepositRequest struct {
	Amount uint64 `json:"amount"`
}

// WithdrawRequest is the body for POST /v1/treasury/withdrawals
type WithdrawRequest struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	Reason    string `json:"reason"`
}

// EmergencyWithdrawRequest is the body for
// POST /v1/treasury/emergency-withdrawals
type EmergencyWithdrawRequest struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// SpendingRecordResponse describes a treasury spending record
type SpendingRecordResponse struct {
	SpendingId uint64 `json:"spending_id"`
	Recipient  string `json:"recipient"`
	Amount     uint64 `json:"amount"`
	Reason     string `json:"reason"`
	Height     uint64 `json:"height"`
	ApprovedBy string `json:"approved_by"`
}

// TokenResponse describes the governance token
type TokenResponse struct {
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Decimals     uint   `json:"decimals"`
	TotalSupply  uint64 `json:"total_supply"`
	ExchangeRate uint64 `json:"exchange_rate"`
	URI          string `json:"uri"`
}

// TokenBalanceResponse describes a single account balance
type TokenBalanceResponse struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

// MintRequest is the body for POST /v1/token/mints
type MintRequest struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// BurnRequest is the body for POST /v1/token/burns
type BurnRequest struct {
	Amount uint64 `json:"amount"`
}

// TransferRequest is the body for POST /v1/token/transfers
type TransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
	Memo   string `json:"memo,omitempty"`
}

// SetTokenURIRequest is the body for POST /v1/token/uri
type SetTokenURIRequest struct {
	URI string `json:"uri"`
}
