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

// Proposal status values. A proposal stays active until finalization,
// which fixes it as passed or rejected.
const (
	ProposalStatusActive   = "active"
	ProposalStatusPassed   = "passed"
	ProposalStatusRejected = "rejected"
)

// Proposal represents a governance item with a bounded voting window and
// a for/against tally. IDs are assigned sequentially starting at 1 by
// the governance ledger, not by the database.
type Proposal struct {
	ID           uint64 `gorm:"primarykey;autoIncrement:false"`
	Creator      string `gorm:"size:128;not null"`
	Title        string `gorm:"size:256;not null"`
	Description  string `gorm:"size:1024;not null"`
	StartHeight  uint64 `gorm:"not null"`
	EndHeight    uint64 `gorm:"index;not null"`
	VotesFor     uint64 `gorm:"not null"`
	VotesAgainst uint64 `gorm:"not null"`
	Finalized    bool   `gorm:"not null"`
	Executed     bool   `gorm:"not null"`
	Status       string `gorm:"size:16;not null"`
}

// TableName returns the table name
func (Proposal) TableName() string {
	return "proposal"
}
