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

// GetTokenState returns the singleton token state row
func (d *Database) GetTokenState(
	txn *Txn,
) (*models.TokenState, error) {
	var state models.TokenState
	result := d.gormHandle(txn).
		Where("id = ?", models.StateRowID).
		First(&state)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"failed to get token state: %w",
			result.Error,
		)
	}
	return &state, nil
}

// UpdateTokenState stores the singleton token state row
func (d *Database) UpdateTokenState(
	state *models.TokenState,
	txn *Txn,
) error {
	state.ID = models.StateRowID
	if result := d.gormHandle(txn).Save(state); result.Error != nil {
		return fmt.Errorf(
			"failed to update token state: %w",
			result.Error,
		)
	}
	return nil
}

// GetTokenBalance returns the balance row for an account, or nil when
// the account holds no tokens
func (d *Database) GetTokenBalance(
	account string,
	txn *Txn,
) (*models.TokenBalance, error) {
	var balance models.TokenBalance
	result := d.gormHandle(txn).
		Where("account = ?", account).
		First(&balance)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"failed to get token balance: %w",
			result.Error,
		)
	}
	return &balance, nil
}

// SetTokenBalance stores a balance row, replacing any existing row for
// the same account
func (d *Database) SetTokenBalance(
	balance *models.TokenBalance,
	txn *Txn,
) error {
	if balance.ID == 0 {
		// Reuse the existing row ID on upsert
		existing, err := d.GetTokenBalance(balance.Account, txn)
		if err != nil {
			return err
		}
		if existing != nil {
			balance.ID = existing.ID
		}
	}
	if result := d.gormHandle(txn).Save(balance); result.Error != nil {
		return fmt.Errorf(
			"failed to set token balance: %w",
			result.Error,
		)
	}
	return nil
}

// SumTokenBalances returns the sum of all account balances. Used for
// supply-conservation checks.
func (d *Database) SumTokenBalances(txn *Txn) (uint64, error) {
	var total *uint64
	result := d.gormHandle(txn).
		Model(&models.TokenBalance{}).
		Select("SUM(amount)").
		Scan(&total)
	if result.Error != nil {
		return 0, fmt.Errorf(
			"failed to sum token balances: %w",
			result.Error,
		)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
