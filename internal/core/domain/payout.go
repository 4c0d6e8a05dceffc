package domain

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// PayoutAmountRuleType is the kind of amount a payout rule assigns.
type PayoutAmountRuleType int

const (
	// PayoutAmountRuleChange pays back whatever is left after the trade.
	PayoutAmountRuleChange PayoutAmountRuleType = iota
)

// SpendingParameters tell how an output paid by a rule can be spent later,
// in case the oracle chains it into a following transaction.
type SpendingParameters struct {
	Type CoinType
	Key  *btcec.PrivateKey
}

// PayoutRule tells the oracle where and how to pay the outputs of a trade.
type PayoutRule struct {
	Type                      PayoutAmountRuleType
	LockingScript             []byte
	SpendingParameters        SpendingParameters
	AllowMixingNativeAndToken bool
	BurnDecider               BurnDecider
}

// Decide returns the burn decision for the given payout amount. Without a
// decider, everything is kept.
func (r PayoutRule) Decide(tokenID string, amount *big.Int) (BurnDecision, error) {
	if r.BurnDecider == nil {
		return BurnDecisionKeep, nil
	}
	return r.BurnDecider.ShouldBurn(tokenID, amount)
}
