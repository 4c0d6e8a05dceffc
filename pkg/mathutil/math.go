package mathutil

import (
	"math/big"
)

// Zero returns a new big.Int set to 0.
func Zero() *big.Int {
	return new(big.Int)
}

// Copy returns a deep copy of x. A nil x is copied as zero.
func Copy(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x)
}

// IsPositive returns whether x is not nil and strictly greater than zero.
func IsPositive(x *big.Int) bool {
	return x != nil && x.Sign() > 0
}

// IsNegative returns whether x is not nil and strictly lower than zero.
func IsNegative(x *big.Int) bool {
	return x != nil && x.Sign() < 0
}

// BigAdd takes two big integers and returns x + y as a new value.
// A nil operand is treated as zero.
func BigAdd(x, y *big.Int) *big.Int {
	return new(big.Int).Add(Copy(x), Copy(y))
}

// BigSub takes two big integers and returns x - y as a new value.
// A nil operand is treated as zero.
func BigSub(x, y *big.Int) *big.Int {
	return new(big.Int).Sub(Copy(x), Copy(y))
}

// MulDiv returns x * y / z truncated toward zero, without intermediate
// overflow.
func MulDiv(x, y, z *big.Int) *big.Int {
	num := new(big.Int).Mul(Copy(x), Copy(y))
	return num.Quo(num, z)
}
