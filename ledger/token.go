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

// Governance token metadata and exchange constants
const (
	TokenName     = "Vote Token"
	TokenSymbol   = "VOTE"
	TokenDecimals = 6
	// ExchangeRate is the fixed external-asset exchange rate used by
	// the advisory pricing helpers
	ExchangeRate = 1000
	// DefaultTokenURI is the metadata URI set at deployment
	DefaultTokenURI = "https://sbtcvoter.vercel.app/token-metadata.json"

	tokenUnit = 1_000_000 // 10^TokenDecimals
)

// initTokenState applies the deployment-time token metadata defaults
func (l *Ledger) initTokenState() error {
	state, err := l.db.GetTokenState(nil)
	if err != nil {
		return err
	}
	if state.TokenURI == "" {
		state.TokenURI = DefaultTokenURI
		if err := l.db.UpdateTokenState(state, nil); err != nil {
			return err
		}
	}
	return nil
}

// CalculateAssetCost returns the advisory external-asset cost of
// minting the given vote amount at the fixed exchange rate
func CalculateAssetCost(voteAmount uint64) (uint64, error) {
	product, err := checkedMul(voteAmount, ExchangeRate)
	if err != nil {
		return 0, err
	}
	return product / tokenUnit, nil
}

// CalculateVoteAmount returns the vote amount purchasable with the
// given external-asset amount at the fixed exchange rate
func CalculateVoteAmount(assetAmount uint64) (uint64, error) {
	product, err := checkedMul(assetAmount, tokenUnit)
	if err != nil {
		return 0, err
	}
	return product / ExchangeRate, nil
}

// Mint credits newly created tokens to the recipient and grows the
// total supply. The external-asset cost is computed purely for the
// emitted event; no external balance is moved by this core.
func (l *Ledger) Mint(
	caller AccountID,
	height uint64,
	amount uint64,
	recipient AccountID,
) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	assetCost, err := CalculateAssetCost(amount)
	if err != nil {
		return err
	}
	err = l.applyAndEmit(height, func(txn *database.Txn, emit emitFunc) error {
		balance, err := l.db.GetTokenBalance(string(recipient), txn)
		if err != nil {
			return err
		}
		if balance == nil {
			balance = &models.TokenBalance{Account: string(recipient)}
		}
		balance.Amount, err = checkedAdd(balance.Amount, amount)
		if err != nil {
			return err
		}
		if err := l.db.SetTokenBalance(balance, txn); err != nil {
			return err
		}
		state, err := l.db.GetTokenState(txn)
		if err != nil {
			return err
		}
		state.TotalSupply, err = checkedAdd(state.TotalSupply, amount)
		if err != nil {
			return err
		}
		if err := l.db.UpdateTokenState(state, txn); err != nil {
			return err
		}
		emit(TokenAssetEventType, TokenAssetEvent{
			Action:  AssetActionMint,
			Account: recipient,
			Amount:  amount,
		})
		emit(TokenMintEventType, TokenMintEvent{
			Amount:    amount,
			Recipient: recipient,
			AssetCost: assetCost,
		})
		return nil
	})
	if err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.tokenSupply.Add(float64(amount))
		l.metrics.tokenMintedTotal.Add(float64(amount))
	}
	return nil
}

// Burn destroys tokens from the caller's own balance and shrinks the
// total supply. The external-asset refund is computed purely for the
// emitted event.
func (l *Ledger) Burn(
	caller AccountID,
	height uint64,
	amount uint64,
) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	assetRefund, err := CalculateAssetCost(amount)
	if err != nil {
		return err
	}
	err = l.applyAndEmit(height, func(txn *database.Txn, emit emitFunc) error {
		balance, err := l.db.GetTokenBalance(string(caller), txn)
		if err != nil {
			return err
		}
		if balance == nil || amount > balance.Amount {
			return ErrInsufficientBalance
		}
		balance.Amount, err = checkedSub(balance.Amount, amount)
		if err != nil {
			return err
		}
		if err := l.db.SetTokenBalance(balance, txn); err != nil {
			return err
		}
		state, err := l.db.GetTokenState(txn)
		if err != nil {
			return err
		}
		state.TotalSupply, err = checkedSub(state.TotalSupply, amount)
		if err != nil {
			return err
		}
		if err := l.db.UpdateTokenState(state, txn); err != nil {
			return err
		}
		emit(TokenAssetEventType, TokenAssetEvent{
			Action:  AssetActionBurn,
			Account: caller,
			Amount:  amount,
		})
		emit(TokenBurnEventType, TokenBurnEvent{
			Amount:      amount,
			Sender:      caller,
			AssetRefund: assetRefund,
		})
		return nil
	})
	if err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.tokenSupply.Sub(float64(amount))
		l.metrics.tokenBurnedTotal.Add(float64(amount))
	}
	return nil
}

// Transfer moves tokens between accounts. Only the holder may move
// their own tokens; total supply is unchanged.
func (l *Ledger) Transfer(
	caller AccountID,
	height uint64,
	amount uint64,
	from AccountID,
	to AccountID,
	memo string,
) error {
	if caller != from {
		return ErrNotTokenOwner
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	err := l.applyAndEmit(height, func(txn *database.Txn, emit emitFunc) error {
		fromBalance, err := l.db.GetTokenBalance(string(from), txn)
		if err != nil {
			return err
		}
		if fromBalance == nil || amount > fromBalance.Amount {
			return ErrInsufficientFunds
		}
		fromBalance.Amount, err = checkedSub(fromBalance.Amount, amount)
		if err != nil {
			return err
		}
		if err := l.db.SetTokenBalance(fromBalance, txn); err != nil {
			return err
		}
		toBalance, err := l.db.GetTokenBalance(string(to), txn)
		if err != nil {
			return err
		}
		if toBalance == nil {
			toBalance = &models.TokenBalance{Account: string(to)}
		}
		toBalance.Amount, err = checkedAdd(toBalance.Amount, amount)
		if err != nil {
			return err
		}
		if err := l.db.SetTokenBalance(toBalance, txn); err != nil {
			return err
		}
		emit(TokenTransferEventType, TokenTransferEvent{
			Amount:    amount,
			Sender:    from,
			Recipient: to,
			Memo:      memo,
		})
		return nil
	})
	if err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.tokenTransfersTotal.Inc()
	}
	return nil
}

// SetTokenURI updates the token metadata URI. Owner only.
func (l *Ledger) SetTokenURI(caller AccountID, uri string) error {
	if !l.guard.IsOwner(caller) {
		return ErrOwnerOnly
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	txn := l.db.Transaction(true)
	return txn.Do(func(txn *database.Txn) error {
		state, err := l.db.GetTokenState(txn)
		if err != nil {
			return err
		}
		state.TokenURI = uri
		return l.db.UpdateTokenState(state, txn)
	})
}

// GetTokenName returns the token name
func (l *Ledger) GetTokenName() string {
	return TokenName
}

// GetTokenSymbol returns the token symbol
func (l *Ledger) GetTokenSymbol() string {
	return TokenSymbol
}

// GetTokenDecimals returns the token decimal places
func (l *Ledger) GetTokenDecimals() uint {
	return TokenDecimals
}

// GetExchangeRate returns the fixed external-asset exchange rate
func (l *Ledger) GetExchangeRate() uint64 {
	return ExchangeRate
}

// GetTokenURI returns the token metadata URI
func (l *Ledger) GetTokenURI() (string, error) {
	state, err := l.db.GetTokenState(nil)
	if err != nil {
		return "", err
	}
	return state.TokenURI, nil
}

// GetTotalSupply returns the current total token supply
func (l *Ledger) GetTotalSupply() (uint64, error) {
	state, err := l.db.GetTokenState(nil)
	if err != nil {
		return 0, err
	}
	return state.TotalSupply, nil
}

// GetTokenBalance returns the balance held by an account. Accounts
// with no balance row hold zero.
func (l *Ledger) GetTokenBalance(account AccountID) (uint64, error) {
	balance, err := l.db.GetTokenBalance(string(account), nil)
	if err != nil {
		return 0, err
	}
	if balance == nil {
		return 0, nil
	}
	return balance.Amount, nil
}
