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

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/blinklabs-io/agora/ledger"
)

const apiVersion = "0.1.0"

// callerHeader carries the authenticated caller identity. The API
// trusts the value as-is and expects authentication to happen in a
// fronting proxy.
const callerHeader = "X-Agora-Caller"

// writeJSON writes a JSON response with the given status
// code.
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError writes a standard error response.
func writeError(
	w http.ResponseWriter,
	status int,
	errStr string,
	message string,
) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      errStr,
		Message:    message,
	})
}

// writeLedgerError maps ledger errors onto HTTP status codes.
func writeLedgerError(
	w http.ResponseWriter,
	err error,
) {
	switch {
	case errors.Is(err, ledger.ErrProposalNotFound):
		writeError(
			w,
			http.StatusNotFound,
			"Not Found",
			err.Error(),
		)
	case errors.Is(err, ledger.ErrUnauthorized),
		errors.Is(err, ledger.ErrOwnerOnly),
		errors.Is(err, ledger.ErrNotTokenOwner):
		writeError(
			w,
			http.StatusForbidden,
			"Forbidden",
			err.Error(),
		)
	case errors.Is(err, ledger.ErrAlreadyVoted),
		errors.Is(err, ledger.ErrProposalAlreadyFinalized):
		writeError(
			w,
			http.StatusConflict,
			"Conflict",
			err.Error(),
		)
	case errors.Is(err, ledger.ErrEmptyTitle),
		errors.Is(err, ledger.ErrEmptyDescription),
		errors.Is(err, ledger.ErrProposalNotActive),
		errors.Is(err, ledger.ErrProposalNotEnded),
		errors.Is(err, ledger.ErrInvalidVoteAmount),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrAmountOverflow):
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			err.Error(),
		)
	default:
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			err.Error(),
		)
	}
}

// requestCaller extracts the caller identity from the request
// headers. An empty identity is rejected before it can reach the
// ledger.
func requestCaller(
	w http.ResponseWriter,
	r *http.Request,
) (ledger.AccountID, bool) {
	caller := r.Header.Get(callerHeader)
	if caller == "" {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"missing "+callerHeader+" header",
		)
		return "", false
	}
	return ledger.AccountID(caller), true
}

// decodeRequest decodes a JSON request body.
func decodeRequest(
	w http.ResponseWriter,
	r *http.Request,
	v any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid request body",
		)
		return false
	}
	return true
}

// pathId parses the {id} path segment.
func pathId(
	w http.ResponseWriter,
	r *http.Request,
) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid id",
		)
		return 0, false
	}
	return id, true
}

// handleRoot handles GET / and returns API metadata.
func (a *Api) handleRoot(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:    "agora",
		Version: apiVersion,
	})
}

// handleHealth handles GET /health and returns node health
// status.
func (a *Api) handleHealth(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
	})
}

// handleTip handles GET /v1/tip and returns the current block
// height.
func (a *Api) handleTip(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, TipResponse{
		Height: a.node.CurrentHeight(),
	})
}

// handleCreateProposal handles POST /v1/governance/proposals.
func (a *Api) handleCreateProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req CreateProposalRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	height := a.node.AdvanceHeight()
	proposalId, err := a.node.Ledger().CreateProposal(
		caller,
		height,
		req.Title,
		req.Description,
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateProposalResponse{
		ProposalId: proposalId,
		Height:     height,
	})
}

// handleGetProposal handles GET /v1/governance/proposals/{id}.
func (a *Api) handleGetProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	proposalId, ok := pathId(w, r)
	if !ok {
		return
	}
	proposal, err := a.node.Ledger().GetProposal(proposalId)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if proposal == nil {
		writeError(
			w,
			http.StatusNotFound,
			"Not Found",
			"no such proposal",
		)
		return
	}
	active, err := a.node.Ledger().IsProposalActive(
		proposalId,
		a.node.CurrentHeight(),
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProposalResponse{
		ProposalId:   proposal.ID,
		Creator:      proposal.Creator,
		Title:        proposal.Title,
		Description:  proposal.Description,
		StartHeight:  proposal.StartHeight,
		EndHeight:    proposal.EndHeight,
		VotesFor:     proposal.VotesFor,
		VotesAgainst: proposal.VotesAgainst,
		Status:       proposal.Status,
		Finalized:    proposal.Finalized,
		Executed:     proposal.Executed,
		Active:       active,
	})
}

// handleGetProposalVotes handles
// GET /v1/governance/proposals/{id}/votes.
func (a *Api) handleGetProposalVotes(
	w http.ResponseWriter,
	r *http.Request,
) {
	proposalId, ok := pathId(w, r)
	if !ok {
		return
	}
	votes, err := a.node.Ledger().GetProposalVotes(proposalId)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProposalVotesResponse{
		VotesFor:     votes.VotesFor,
		VotesAgainst: votes.VotesAgainst,
		Total:        votes.Total,
	})
}

// handleCastVote handles POST /v1/governance/proposals/{id}/votes.
func (a *Api) handleCastVote(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	proposalId, ok := pathId(w, r)
	if !ok {
		return
	}
	var req CastVoteRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	height := a.node.AdvanceHeight()
	err := a.node.Ledger().CastVote(
		caller,
		height,
		proposalId,
		req.VoteFor,
		req.Amount,
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, VoteResponse{
		ProposalId: proposalId,
		Voter:      string(caller),
		VoteFor:    req.VoteFor,
		Amount:     req.Amount,
		Height:     height,
	})
}

// handleGetVote handles
// GET /v1/governance/proposals/{id}/voters/{account}.
func (a *Api) handleGetVote(
	w http.ResponseWriter,
	r *http.Request,
) {
	proposalId, ok := pathId(w, r)
	if !ok {
		return
	}
	voter := ledger.AccountID(r.PathValue("account"))
	vote, err := a.node.Ledger().GetVote(proposalId, voter)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if vote == nil {
		writeError(
			w,
			http.StatusNotFound,
			"Not Found",
			"no such vote",
		)
		return
	}
	writeJSON(w, http.StatusOK, VoteResponse{
		ProposalId: vote.ProposalID,
		Voter:      vote.Voter,
		VoteFor:    vote.VoteFor,
		Amount:     vote.Amount,
		Height:     vote.Height,
	})
}

// handleFinalizeProposal handles
// POST /v1/governance/proposals/{id}/finalize.
func (a *Api) handleFinalizeProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	proposalId, ok := pathId(w, r)
	if !ok {
		return
	}
	height := a.node.AdvanceHeight()
	passed, err := a.node.Ledger().FinalizeProposal(
		caller,
		height,
		proposalId,
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	status, err := a.node.Ledger().GetProposalStatus(proposalId)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FinalizeProposalResponse{
		ProposalId: proposalId,
		Passed:     passed,
		Status:     status,
	})
}

// handleSetVoteTokenContract handles
// POST /v1/governance/vote-token-contract.
func (a *Api) handleSetVoteTokenContract(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req SetAccountRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	err := a.node.Ledger().SetVoteTokenContract(
		caller,
		ledger.AccountID(req.Account),
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetTreasury handles GET /v1/treasury.
func (a *Api) handleGetTreasury(
	w http.ResponseWriter,
	_ *http.Request,
) {
	l := a.node.Ledger()
	balance, err := l.GetTreasuryBalance()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	deposits, err := l.GetTotalDeposits()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	withdrawals, err := l.GetTotalWithdrawals()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	spendingCount, err := l.GetSpendingCount()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	govContract, err := l.GetGovernanceContract()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TreasuryResponse{
		Balance:            balance,
		TotalDeposits:      deposits,
		TotalWithdrawals:   withdrawals,
		SpendingCount:      spendingCount,
		GovernanceContract: string(govContract),
	})
}

// handleDeposit handles POST /v1/treasury/deposits.
func (a *Api) handleDeposit(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req DepositRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	height := a.node.AdvanceHeight()
	err := a.node.Ledger().Deposit(caller, height, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleWithdraw handles POST /v1/treasury/withdrawals.
func (a *Api) handleWithdraw(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req WithdrawRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	height := a.node.AdvanceHeight()
	err := a.node.Ledger().Withdraw(
		caller,
		height,
		req.Amount,
		ledger.AccountID(req.Recipient),
		req.Reason,
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleEmergencyWithdraw handles
// POST /v1/treasury/emergency-withdrawals.
func (a *Api) handleEmergencyWithdraw(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req EmergencyWithdrawRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	height := a.node.AdvanceHeight()
	err := a.node.Ledger().EmergencyWithdraw(
		caller,
		height,
		req.Amount,
		ledger.AccountID(req.Recipient),
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetSpendingRecord handles
// GET /v1/treasury/spending-records/{id}.
func (a *Api) handleGetSpendingRecord(
	w http.ResponseWriter,
	r *http.Request,
) {
	spendingId, ok := pathId(w, r)
	if !ok {
		return
	}
	record, err := a.node.Ledger().GetSpendingRecord(spendingId)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if record == nil {
		writeError(
			w,
			http.StatusNotFound,
			"Not Found",
			"no such spending record",
		)
		return
	}
	writeJSON(w, http.StatusOK, SpendingRecordResponse{
		SpendingId: record.ID,
		Recipient:  record.Recipient,
		Amount:     record.Amount,
		Reason:     record.Reason,
		Height:     record.Height,
		ApprovedBy: record.ApprovedBy,
	})
}

// handleSetGovernanceContract handles
// POST /v1/treasury/governance-contract.
func (a *Api) handleSetGovernanceContract(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req SetAccountRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	err := a.node.Ledger().SetGovernanceContract(
		caller,
		ledger.AccountID(req.Account),
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetToken handles GET /v1/token.
func (a *Api) handleGetToken(
	w http.ResponseWriter,
	_ *http.Request,
) {
	l := a.node.Ledger()
	totalSupply, err := l.GetTotalSupply()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	uri, err := l.GetTokenURI()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{
		Name:         l.GetTokenName(),
		Symbol:       l.GetTokenSymbol(),
		Decimals:     l.GetTokenDecimals(),
		TotalSupply:  totalSupply,
		ExchangeRate: l.GetExchangeRate(),
		URI:          uri,
	})
}

// handleGetTokenBalance handles GET /v1/token/balances/{account}.
func (a *Api) handleGetTokenBalance(
	w http.ResponseWriter,
	r *http.Request,
) {
	account := r.PathValue("account")
	amount, err := a.node.Ledger().GetTokenBalance(
		ledger.AccountID(account),
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenBalanceResponse{
		Account: account,
		Amount:  amount,
	})
}

// handleMint handles POST /v1/token/mints.
func (a *Api) handleMint(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req MintRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	recipient := ledger.AccountID(req.Recipient)
	if recipient == "" {
		recipient = caller
	}
	height := a.node.AdvanceHeight()
	err := a.node.Ledger().Mint(caller, height, req.Amount, recipient)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleBurn handles POST /v1/token/burns.
func (a *Api) handleBurn(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req BurnRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	height := a.node.AdvanceHeight()
	err := a.node.Ledger().Burn(caller, height, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTransfer handles POST /v1/token/transfers.
func (a *Api) handleTransfer(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req TransferRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	from := ledger.AccountID(req.From)
	if from == "" {
		from = caller
	}
	height := a.node.AdvanceHeight()
	err := a.node.Ledger().Transfer(
		caller,
		height,
		req.Amount,
		from,
		ledger.AccountID(req.To),
		req.Memo,
	)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetTokenURI handles POST /v1/token/uri.
func (a *Api) handleSetTokenURI(
	w http.ResponseWriter,
	r *http.Request,
) {
	caller, ok := requestCaller(w, r)
	if !ok {
		return
	}
	var req SetTokenURIRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	err := a.node.Ledger().SetTokenURI(caller, req.URI)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
