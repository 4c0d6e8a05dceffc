package domain

import (
	"fmt"
	"math/big"

	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

// BurnDecision tells the transaction builder what to do with a leftover
// payout amount.
type BurnDecision int

const (
	BurnDecisionKeep BurnDecision = iota
	BurnDecisionBurn
)

func (d BurnDecision) String() string {
	switch d {
	case BurnDecisionKeep:
		return "KEEP"
	case BurnDecisionBurn:
		return "BURN"
	default:
		return "UNKNOWN"
	}
}

// BurnDecider is invoked for every change output before it is finalized.
type BurnDecider interface {
	ShouldBurn(tokenID string, amount *big.Int) (BurnDecision, error)
}

// DustBurnPolicy decides to burn token change whose value in native currency,
// derived from the rates of the trade, is under DustThreshold.
// A policy must not outlive the funding pass it was made for since it caches
// the token rates.
type DustBurnPolicy struct {
	tradeSums   TradeSums
	enabled     bool
	denominator *big.Int
	threshold   *big.Int
	rates       map[string]*big.Int
}

func NewDustBurnPolicy(tradeSums TradeSums, enabled bool) *DustBurnPolicy {
	return &DustBurnPolicy{
		tradeSums:   tradeSums,
		enabled:     enabled,
		denominator: RateDenominator(),
		threshold:   big.NewInt(DustThreshold),
		rates:       make(map[string]*big.Int),
	}
}

// NativeValue returns the value in native currency of the given token amount.
func (p *DustBurnPolicy) NativeValue(tokenID string, amount *big.Int) (*big.Int, error) {
	if tokenID == NativeTokenID {
		return mathutil.Copy(amount), nil
	}
	rate, err := p.rate(tokenID)
	if err != nil {
		return nil, err
	}
	return mathutil.MulDiv(amount, rate, p.denominator), nil
}

func (p *DustBurnPolicy) ShouldBurn(
	tokenID string, amount *big.Int,
) (BurnDecision, error) {
	if tokenID == NativeTokenID {
		return BurnDecisionKeep, nil
	}
	value, err := p.NativeValue(tokenID, amount)
	if err != nil {
		return BurnDecisionKeep, err
	}
	if p.enabled && value.Cmp(p.threshold) < 0 {
		return BurnDecisionBurn, nil
	}
	return BurnDecisionKeep, nil
}

func (p *DustBurnPolicy) rate(tokenID string) (*big.Int, error) {
	if rate, ok := p.rates[tokenID]; ok {
		return rate, nil
	}

	var rate *big.Int
	if ts, ok := p.tradeSums.BySupplyToken(tokenID); ok && mathutil.IsPositive(ts.Supply) {
		rate = mathutil.MulDiv(ts.Demand, p.denominator, ts.Supply)
	} else if ts, ok := p.tradeSums.ByDemandToken(tokenID); ok && mathutil.IsPositive(ts.Demand) {
		rate = mathutil.MulDiv(ts.Supply, p.denominator, ts.Demand)
	}
	if rate == nil {
		return nil, fmt.Errorf("%w %s", ErrUnknownTokenRate, tokenID)
	}

	p.rates[tokenID] = rate
	return rate, nil
}
