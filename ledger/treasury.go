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

// Deposit adds funds to the pooled treasury balance
func (l *Ledger) Deposit(
	caller AccountID,
	height uint64,
	amount uint64,
) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	err := l.applyAndEmit(height, func(txn *database.Txn, emit emitFunc) error {
		state, err := l.db.GetTreasuryState(txn)
		if err != nil {
			return err
		}
		state.Balance, err = checkedAdd(state.Balance, amount)
		if err != nil {
			return err
		}
		state.TotalDeposits, err = checkedAdd(state.TotalDeposits, amount)
		if err != nil {
			return err
		}
		if err := l.db.UpdateTreasuryState(state, txn); err != nil {
			return err
		}
		emit(TreasuryDepositEventType, TreasuryDepositEvent{
			Sender: caller,
			Amount: amount,
		})
		return nil
	})
	if err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.treasuryBalance.Add(float64(amount))
		l.metrics.treasuryDeposits.Add(float64(amount))
	}
	return nil
}

// Withdraw spends treasury funds through the audited path. The caller
// must be the owner or the designated governance contract. Every
// withdrawal appends a spending record.
func (l *Ledger) Withdraw(
	caller AccountID,
	height uint64,
	amount uint64,
	recipient AccountID,
	reason string,
) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	var spendingId uint64
	err := l.applyAndEmit(height, func(txn *database.Txn, emit emitFunc) error {
		state, err := l.db.GetTreasuryState(txn)
		if err != nil {
			return err
		}
		if !l.guard.IsAuthorized(caller, AccountID(state.GovernanceContract)) {
			return ErrUnauthorized
		}
		if amount > state.Balance {
			return ErrInsufficientBalance
		}
		spendingId, err = checkedAdd(state.SpendingCount, 1)
		if err != nil {
			return err
		}
		record := &models.SpendingRecord{
			ID:         spendingId,
			Recipient:  string(recipient),
			Amount:     amount,
			Reason:     reason,
			Height:     height,
			ApprovedBy: string(caller),
		}
		if err := l.db.SetSpendingRecord(record, txn); err != nil {
			return err
		}
		state.SpendingCount = spendingId
		state.Balance, err = checkedSub(state.Balance, amount)
		if err != nil {
			return err
		}
		state.TotalWithdrawals, err = checkedAdd(state.TotalWithdrawals, amount)
		if err != nil {
			return err
		}
		if err := l.db.UpdateTreasuryState(state, txn); err != nil {
			return err
		}
		emit(TreasuryWithdrawalEventType, TreasuryWithdrawalEvent{
			SpendingId: spendingId,
			Recipient:  recipient,
			Amount:     amount,
			Reason:     reason,
		})
		return nil
	})
	if err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.treasuryBalance.Sub(float64(amount))
		l.metrics.treasuryWithdrawals.Add(float64(amount))
	}
	l.logger.Info(
		"treasury withdrawal",
		"component", "treasury",
		"spending_id", spendingId,
		"recipient", recipient,
		"amount", amount,
	)
	return nil
}

// EmergencyWithdraw spends treasury funds without touching the
// spending ledger or the total-withdrawals counter. Owner only; the
// designated governance contract is not authorized for this path.
//
// Bypassing the audit trail is deliberate. Keep this path isolated so
// an audit-everything mode can wrap it without touching Withdraw.
func (l *Ledger) EmergencyWithdraw(
	caller AccountID,
	height uint64,
	amount uint64,
	recipient AccountID,
) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if !l.guard.IsOwner(caller) {
		return ErrOwnerOnly
	}
	err := l.applyAndEmit(height, func(txn *database.Txn, emit emitFunc) error {
		state, err := l.db.GetTreasuryState(txn)
		if err != nil {
			return err
		}
		if amount > state.Balance {
			return ErrInsufficientBalance
		}
		state.Balance, err = checkedSub(state.Balance, amount)
		if err != nil {
			return err
		}
		if err := l.db.UpdateTreasuryState(state, txn); err != nil {
			return err
		}
		emit(TreasuryEmergencyWithdrawalEventType, TreasuryEmergencyWithdrawalEvent{
			Recipient: recipient,
			Amount:    amount,
		})
		return nil
	})
	if err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.treasuryBalance.Sub(float64(amount))
	}
	l.logger.Warn(
		"treasury emergency withdrawal",
		"component", "treasury",
		"recipient", recipient,
		"amount", amount,
	)
	return nil
}

// SetGovernanceContract designates the secondary identity authorized
// for Withdraw. Owner only; may be re-set at any time.
func (l *Ledger) SetGovernanceContract(
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
		state, err := l.db.GetTreasuryState(txn)
		if err != nil {
			return err
		}
		state.GovernanceContract = string(account)
		return l.db.UpdateTreasuryState(state, txn)
	})
}

// GetTreasuryBalance returns the current pooled balance
func (l *Ledger) GetTreasuryBalance() (uint64, error) {
	state, err := l.db.GetTreasuryState(nil)
	if err != nil {
		return 0, err
	}
	return state.Balance, nil
}

// GetTotalDeposits returns the cumulative amount deposited
func (l *Ledger) GetTotalDeposits() (uint64, error) {
	state, err := l.db.GetTreasuryState(nil)
	if err != nil {
		return 0, err
	}
	return state.TotalDeposits, nil
}

// GetTotalWithdrawals returns the cumulative amount withdrawn through
// the audited path. Emergency withdrawals are not included.
func (l *Ledger) GetTotalWithdrawals() (uint64, error) {
	state, err := l.db.GetTreasuryState(nil)
	if err != nil {
		return 0, err
	}
	return state.TotalWithdrawals, nil
}

// GetSpendingRecord returns a spending record by ID, or nil when no
// such record exists
func (l *Ledger) GetSpendingRecord(
	spendingId uint64,
) (*models.SpendingRecord, error) {
	return l.db.GetSpendingRecord(spendingId, nil)
}

// GetSpendingCount returns the number of spending records
func (l *Ledger) GetSpendingCount() (uint64, error) {
	state, err := l.db.GetTreasuryState(nil)
	if err != nil {
		return 0, err
	}
	return state.SpendingCount, nil
}

// GetGovernanceContract returns the designated governance contract
// identity, or empty when none has been set
func (l *Ledger) GetGovernanceContract() (AccountID, error) {
	state, err := l.db.GetTreasuryState(nil)
	if err != nil {
		return "", err
	}
	return AccountID(state.GovernanceContract), nil
}
