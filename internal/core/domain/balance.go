package domain

import (
	"math/big"

	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

// TokenBalance is the signed net amount of a token.
type TokenBalance struct {
	TokenID string
	Value   *big.Int
}

// BalanceSheet keeps the net balances of a trade in insertion order, with the
// native currency always first.
type BalanceSheet struct {
	balances []TokenBalance
}

func NewBalanceSheet() *BalanceSheet {
	return &BalanceSheet{
		balances: []TokenBalance{{NativeTokenID, mathutil.Zero()}},
	}
}

func (b *BalanceSheet) index(tokenID string) int {
	for i, tb := range b.balances {
		if tb.TokenID == tokenID {
			return i
		}
	}
	b.balances = append(b.balances, TokenBalance{tokenID, mathutil.Zero()})
	return len(b.balances) - 1
}

// Get returns a copy of the balance of the given token, zero if unknown.
func (b *BalanceSheet) Get(tokenID string) *big.Int {
	for _, tb := range b.balances {
		if tb.TokenID == tokenID {
			return mathutil.Copy(tb.Value)
		}
	}
	return mathutil.Zero()
}

func (b *BalanceSheet) Credit(tokenID string, amount *big.Int) {
	v := b.balances[b.index(tokenID)].Value
	v.Add(v, mathutil.Copy(amount))
}

func (b *BalanceSheet) Debit(tokenID string, amount *big.Int) {
	v := b.balances[b.index(tokenID)].Value
	v.Sub(v, mathutil.Copy(amount))
}

// TokenIDs returns the tokens of the sheet in order.
func (b *BalanceSheet) TokenIDs() []string {
	ids := make([]string, 0, len(b.balances))
	for _, tb := range b.balances {
		ids = append(ids, tb.TokenID)
	}
	return ids
}

// Balances returns a copy of the ordered balances.
func (b *BalanceSheet) Balances() []TokenBalance {
	return b.Clone().balances
}

func (b *BalanceSheet) Clone() *BalanceSheet {
	balances := make([]TokenBalance, 0, len(b.balances))
	for _, tb := range b.balances {
		balances = append(balances, TokenBalance{tb.TokenID, mathutil.Copy(tb.Value)})
	}
	return &BalanceSheet{balances}
}

// Deficits returns the tokens with a negative balance, in order.
func (b *BalanceSheet) Deficits() []string {
	ids := make([]string, 0)
	for _, tb := range b.balances {
		if mathutil.IsNegative(tb.Value) {
			ids = append(ids, tb.TokenID)
		}
	}
	return ids
}
