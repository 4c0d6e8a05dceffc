package mathutil

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// ErrZeroReference is returned when a relative change is computed against a
// zero reference value.
var ErrZeroReference = errors.New("reference value must not be zero")

// RelativeChange returns the exact ratio (after - before) / before.
func RelativeChange(before, after *big.Rat) (*big.Rat, error) {
	if before == nil || before.Sign() == 0 {
		return nil, ErrZeroReference
	}
	diff := new(big.Rat).Sub(after, before)
	return diff.Quo(diff, before), nil
}

// RatToDecimal converts the given rational to a decimal rounded at the
// given number of decimal places. Meant for display only.
func RatToDecimal(r *big.Rat, places int32) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	return num.DivRound(den, places)
}

// SatsToDecimal expresses an amount of the smallest unit as a decimal with
// the given precision, ie. 150000000 sats with precision 8 is 1.5.
func SatsToDecimal(amount *big.Int, precision int32) decimal.Decimal {
	return decimal.NewFromBigInt(Copy(amount), -precision)
}
