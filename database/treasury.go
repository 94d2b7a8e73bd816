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

// GetTreasuryState returns the singleton treasury state row
func (d *Database) GetTreasuryState(
	txn *Txn,
) (*models.TreasuryState, error) {
	var state models.TreasuryState
	result := d.gormHandle(txn).
		Where("id = ?", models.StateRowID).
		First(&state)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"failed to get treasury state: %w",
			result.Error,
		)
	}
	return &state, nil
}

// UpdateTreasuryState stores the singleton treasury state row
func (d *Database) UpdateTreasuryState(
	state *models.TreasuryState,
	txn *Txn,
) error {
	state.ID = models.StateRowID
	if result := d.gormHandle(txn).Save(state); result.Error != nil {
		return fmt.Errorf(
			"failed to update treasury state: %w",
			result.Error,
		)
	}
	return nil
}

// GetSpendingRecord returns a spending record by ID, or nil when no
// such record exists
func (d *Database) GetSpendingRecord(
	spendingId uint64,
	txn *Txn,
) (*models.SpendingRecord, error) {
	var record models.SpendingRecord
	result := d.gormHandle(txn).
		Where("id = ?", spendingId).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"failed to get spending record: %w",
			result.Error,
		)
	}
	return &record, nil
}

// SetSpendingRecord appends a new spending record
func (d *Database) SetSpendingRecord(
	record *models.SpendingRecord,
	txn *Txn,
) error {
	if result := d.gormHandle(txn).Create(record); result.Error != nil {
		return fmt.Errorf(
			"failed to set spending record: %w",
			result.Error,
		)
	}
	return nil
}
