package domain

import (
	"math/big"
	"sort"

	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

// SelectCoins covers every negative balance of the sheet, in order, by
// picking unused coins largest-first. Every picked coin credits the native
// balance and, if any, the balance of the token it carries. The sheet is
// updated in place and, on success, has no negative balance left.
//
// Only token-less coins are eligible for covering the native balance, while
// only plain fungible coins of the same token are eligible for a token.
func SelectCoins(
	walletName string, balances *BalanceSheet, unspents []Unspent,
) ([]Unspent, error) {
	used := make(map[Outpoint]struct{})
	selected := make([]Unspent, 0)

	for _, tokenID := range balances.TokenIDs() {
		candidates := coinCandidates(tokenID, unspents)

		for mathutil.IsNegative(balances.Get(tokenID)) {
			var coin *Unspent
			for i := range candidates {
				if _, ok := used[candidates[i].Outpoint]; !ok {
					coin = &candidates[i]
					break
				}
			}
			if coin == nil {
				return nil, &InsufficientFundsError{walletName, tokenID}
			}

			used[coin.Outpoint] = struct{}{}
			selected = append(selected, *coin)
			balances.Credit(NativeTokenID, coin.Amount)
			if coin.Token != nil {
				balances.Credit(coin.Token.TokenID, coin.Token.Amount)
			}
		}
	}
	return selected, nil
}

// coinCandidates returns the coins eligible to cover the given token balance,
// sorted by descending amount of that token.
func coinCandidates(tokenID string, unspents []Unspent) []Unspent {
	candidates := make([]Unspent, 0)
	amountOf := func(u Unspent) *big.Int { return u.Amount }

	if tokenID == NativeTokenID {
		for _, u := range unspents {
			if u.Token == nil && mathutil.IsPositive(u.Amount) {
				candidates = append(candidates, u)
			}
		}
	} else {
		amountOf = func(u Unspent) *big.Int { return u.Token.Amount }
		for _, u := range unspents {
			if u.Token.IsPlainFungible() && u.Token.TokenID == tokenID &&
				mathutil.IsPositive(u.Token.Amount) {
				candidates = append(candidates, u)
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return amountOf(candidates[i]).Cmp(amountOf(candidates[j])) > 0
	})
	return candidates
}
