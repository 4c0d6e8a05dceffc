package domain

import "math/big"

// DefaultFeeReserve is an estimate of the native amount to keep aside for
// paying the network fees of a trade chain: 200 per entry plus 1000. It is
// not derived from the actual transaction sizes.
var DefaultFeeReserve = FeeReserve{PerEntry: 200, Base: 1000}

// FeeReserve is a linear estimate of the fees of a trade with n entries.
type FeeReserve struct {
	PerEntry int64
	Base     int64
}

func (r FeeReserve) Validate() error {
	if r.PerEntry < 0 || r.Base < 0 {
		return ErrInvalidFeeReserve
	}
	return nil
}

// Amount returns PerEntry·numEntries + Base.
func (r FeeReserve) Amount(numEntries int) *big.Int {
	amount := big.NewInt(r.PerEntry)
	amount.Mul(amount, big.NewInt(int64(numEntries)))
	return amount.Add(amount, big.NewInt(r.Base))
}
