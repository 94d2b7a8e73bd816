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
	"github.com/blinklabs-io/agora/event"
)

const (
	ProposalCreatedEventType   event.EventType = "governance.proposal.created"
	VoteCastEventType          event.EventType = "governance.vote.cast"
	ProposalFinalizedEventType event.EventType = "governance.proposal.finalized"

	TreasuryDepositEventType             event.EventType = "treasury.deposit"
	TreasuryWithdrawalEventType          event.EventType = "treasury.withdrawal"
	TreasuryEmergencyWithdrawalEventType event.EventType = "treasury.emergency_withdrawal"

	TokenAssetEventType    event.EventType = "token.asset"
	TokenMintEventType     event.EventType = "token.mint"
	TokenBurnEventType     event.EventType = "token.burn"
	TokenTransferEventType event.EventType = "token.transfer"
)

// ProposalCreatedEvent is emitted when a proposal is created
type ProposalCreatedEvent struct {
	ProposalId uint64    `json:"proposalId"`
	Creator    AccountID `json:"creator"`
	Title      string    `json:"title"`
}

// VoteCastEvent is emitted when a vote is cast on a proposal
type VoteCastEvent struct {
	ProposalId uint64    `json:"proposalId"`
	Voter      AccountID `json:"voter"`
	VoteFor    bool      `json:"voteFor"`
	Amount     uint64    `json:"amount"`
}

// ProposalFinalizedEvent is emitted when a proposal is finalized
type ProposalFinalizedEvent struct {
	ProposalId   uint64 `json:"proposalId"`
	Status       string `json:"status"`
	VotesFor     uint64 `json:"votesFor"`
	VotesAgainst uint64 `json:"votesAgainst"`
}

// TreasuryDepositEvent is emitted when funds are deposited into the treasury
type TreasuryDepositEvent struct {
	Sender AccountID `json:"sender"`
	Amount uint64    `json:"amount"`
}

// TreasuryWithdrawalEvent is emitted on a normal audited withdrawal
type TreasuryWithdrawalEvent struct {
	SpendingId uint64    `json:"spendingId"`
	Recipient  AccountID `json:"recipient"`
	Amount     uint64    `json:"amount"`
	Reason     string    `json:"reason"`
}

// TreasuryEmergencyWithdrawalEvent is emitted on an emergency
// withdrawal, which bypasses the spending ledger
type TreasuryEmergencyWithdrawalEvent struct {
	Recipient AccountID `json:"recipient"`
	Amount    uint64    `json:"amount"`
}

// AssetAction represents the direction of a fungible-asset event
type AssetAction string

const (
	AssetActionMint AssetAction = "mint"
	AssetActionBurn AssetAction = "burn"
)

// TokenAssetEvent is the raw fungible-asset event accompanying a mint
// or burn, mirroring the asset movement itself
type TokenAssetEvent struct {
	Action  AssetAction `json:"action"`
	Account AccountID   `json:"account"`
	Amount  uint64      `json:"amount"`
}

// TokenMintEvent is the descriptive event emitted on mint. AssetCost is
// the advisory external-asset cost computed from the exchange rate; no
// external transfer is performed by this core.
type TokenMintEvent struct {
	Amount    uint64    `json:"amount"`
	Recipient AccountID `json:"recipient"`
	AssetCost uint64    `json:"assetCost"`
}

// TokenBurnEvent is the descriptive event emitted on burn. AssetRefund
// is the advisory external-asset refund computed from the exchange rate.
type TokenBurnEvent struct {
	Amount      uint64    `json:"amount"`
	Sender      AccountID `json:"sender"`
	AssetRefund uint64    `json:"assetRefund"`
}

// TokenTransferEvent is the standard fungible-transfer event
type TokenTransferEvent struct {
	Amount    uint64    `json:"amount"`
	Sender    AccountID `json:"sender"`
	Recipient AccountID `json:"recipient"`
	Memo      string    `json:"memo,omitempty"`
}
