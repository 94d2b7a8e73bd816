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

package models

// stateRowID is the fixed primary key for the singleton state rows
const StateRowID = 1

// GovernanceState holds the scalar variables of the proposal registry.
// Exactly one row exists per store.
type GovernanceState struct {
	ID                uint   `gorm:"primarykey"`
	ProposalCount     uint64 `gorm:"not null"`
	VoteTokenContract string `gorm:"size:128"`
}

// TableName returns the table name
func (GovernanceState) TableName() string {
	return "governance_state"
}

// TreasuryState holds the scalar variables of the treasury. Exactly one
// row exists per store. GovernanceContract is empty until the owner
// designates one.
type TreasuryState struct {
	ID                 uint   `gorm:"primarykey"`
	Balance            uint64 `gorm:"not null"`
	TotalDeposits      uint64 `gorm:"not null"`
	TotalWithdrawals   uint64 `gorm:"not null"`
	SpendingCount      uint64 `gorm:"not null"`
	GovernanceContract string `gorm:"size:128"`
}

// TableName returns the table name
func (TreasuryState) TableName() string {
	return "treasury_state"
}

// TokenState holds the scalar variables of the governance-token ledger.
// Exactly one row exists per store.
type TokenState struct {
	ID          uint   `gorm:"primarykey"`
	TotalSupply uint64 `gorm:"not null"`
	TokenURI    string `gorm:"column:token_uri;size:256"`
}

// TableName returns the table name
func (TokenState) TableName() string {
	return "token_state"
}
