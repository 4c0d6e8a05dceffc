package mathutil

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	maxExponent = 18
	minExponent = -32
)

var maxInteger = decimal.NewFromInt(math.MaxInt64)

// ParseInteger parses a base-10 number into a big integer. Exponent notation
// is accepted, as JSON encoders of some indexers emit it for large amounts
// (ie. 1.5e+18), but the value must be integral and fit in 64 bits.
func ParseInteger(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if d.IsZero() {
		return new(big.Int), nil
	}
	// Bound the exponent before any rescaling, which expands the value.
	exp := d.Exponent()
	if exp > maxExponent || exp < minExponent || d.Abs().GreaterThan(maxInteger) {
		return nil, fmt.Errorf("number %q is out of range", s)
	}
	if !d.IsInteger() {
		return nil, fmt.Errorf("number %q is not an integer", s)
	}
	return d.BigInt(), nil
}

// ParseNonNegativeInteger is like ParseInteger but also rejects negative
// values.
func ParseNonNegativeInteger(s string) (*big.Int, error) {
	n, err := ParseInteger(s)
	if err != nil {
		return nil, err
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("number %q must not be negative", s)
	}
	return n, nil
}
