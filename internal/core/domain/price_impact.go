package domain

import (
	"math/big"

	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

// WeightedAverageRate returns Σ(native_i × token_i) / Σ(token_i) over the
// given pools, computed exactly.
func WeightedAverageRate(pools []Pool) (*big.Rat, error) {
	num, den := new(big.Int), new(big.Int)
	for _, p := range pools {
		num.Add(num, new(big.Int).Mul(mathutil.Copy(p.Amount), mathutil.Copy(p.TokenAmount)))
		den.Add(den, mathutil.Copy(p.TokenAmount))
	}
	if den.Sign() == 0 {
		return nil, ErrUndefinedWeightedRate
	}
	return new(big.Rat).SetFrac(num, den), nil
}

// PriceImpact returns the relative change of the weighted average rate of the
// given pools caused by executing the given entries. Only the final ratio is
// approximated as float.
func PriceImpact(pools []Pool, entries []TradeEntry) (float64, error) {
	before, err := WeightedAverageRate(pools)
	if err != nil {
		return 0, err
	}
	after, err := WeightedAverageRate(ApplyTradeEntries(pools, entries))
	if err != nil {
		return 0, err
	}
	change, err := mathutil.RelativeChange(before, after)
	if err != nil {
		return 0, ErrUndefinedWeightedRate
	}
	impact, _ := change.Float64()
	return impact, nil
}
