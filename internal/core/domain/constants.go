package domain

import "math/big"

const (
	// NativeTokenID identifies the native currency in balances and entries.
	NativeTokenID = "BCH"

	// PoolVersion0 is the only pool contract version supported.
	PoolVersion0 = "0"

	// DustThreshold is the native value under which a leftover token output
	// is considered dust. A value equal to the threshold is not dust.
	DustThreshold int64 = 800
)

var rateDenominator = new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil)

// RateDenominator returns the fixed denominator used to express token rates
// as integers.
func RateDenominator() *big.Int {
	return new(big.Int).Set(rateDenominator)
}
