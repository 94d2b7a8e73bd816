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
	"fmt"

	"github.com/blinklabs-io/agora/database/models"
	"gorm.io/gorm"
)

// gormHandle returns the metadata handle for the given transaction, or
// the bare store handle when no transaction is provided
func (d *Database) gormHandle(txn *Txn) *gorm.DB {
	if txn != nil {
		return txn.Metadata()
	}
	return d.metadata
}

// GetProposal returns a proposal by ID, or nil when no such proposal exists
func (d *Database) GetProposal(
	proposalId uint64,
	txn *Txn,
) (*models.Proposal, error) {
	var proposal models.Proposal
	result := d.gormHandle(txn).
		Where("id = ?", proposalId).
		First(&proposal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get proposal: %w", result.Error)
	}
	return &proposal, nil
}

// SetProposal stores a proposal, replacing any existing row with the same ID
func (d *Database) SetProposal(
	proposal *models.Proposal,
	txn *Txn,
) error {
	if result := d.gormHandle(txn).Save(proposal); result.Error != nil {
		return fmt.Errorf("failed to set proposal: %w", result.Error)
	}
	return nil
}

// GetVote returns the vote cast by a voter on a proposal, or nil when
// the voter has not voted
func (d *Database) GetVote(
	proposalId uint64,
	voter string,
	txn *Txn,
) (*models.Vote, error) {
	var vote models.Vote
	result := d.gormHandle(txn).
		Where("proposal_id = ? AND voter = ?", proposalId, voter).
		First(&vote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", result.Error)
	}
	return &vote, nil
}

// SetVote stores a new vote entry
func (d *Database) SetVote(
	vote *models.Vote,
	txn *Txn,
) error {
	if result := d.gormHandle(txn).Create(vote); result.Error != nil {
		return fmt.Errorf("failed to set vote: %w", result.Error)
	}
	return nil
}

// GetGovernanceState returns the singleton governance state row
func (d *Database) GetGovernanceState(
	txn *Txn,
) (*models.GovernanceState, error) {
	var state models.GovernanceState
	result := d.gormHandle(txn).
		Where("id = ?", models.StateRowID).
		First(&state)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"failed to get governance state: %w",
			result.Error,
		)
	}
	return &state, nil
}

// UpdateGovernanceState stores the singleton governance state row
func (d *Database) UpdateGovernanceState(
	state *models.GovernanceState,
	txn *Txn,
) error {
	state.ID = models.StateRowID
	if result := d.gormHandle(txn).Save(state); result.Error != nil {
		return fmt.Errorf(
			"failed to update governance state: %w",
			result.Error,
		)
	}
	return nil
}
