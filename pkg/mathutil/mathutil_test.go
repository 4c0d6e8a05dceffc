package mathutil_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

func TestBigArithmetic(t *testing.T) {
	x, y := big.NewInt(7), big.NewInt(3)

	require.Equal(t, "10", mathutil.BigAdd(x, y).String())
	require.Equal(t, "4", mathutil.BigSub(x, y).String())
	require.Equal(t, "-3", mathutil.BigSub(nil, y).String())
	require.Equal(t, "7", x.String())

	// 7·3/2 truncated.
	require.Equal(t, "10", mathutil.MulDiv(x, y, big.NewInt(2)).String())

	c := mathutil.Copy(x)
	c.SetInt64(0)
	require.Equal(t, "7", x.String())
	require.Equal(t, "0", mathutil.Copy(nil).String())

	require.True(t, mathutil.IsPositive(x))
	require.False(t, mathutil.IsPositive(nil))
	require.False(t, mathutil.IsPositive(mathutil.Zero()))
	require.True(t, mathutil.IsNegative(big.NewInt(-1)))
	require.False(t, mathutil.IsNegative(nil))
}

func TestRelativeChange(t *testing.T) {
	change, err := mathutil.RelativeChange(big.NewRat(200, 1), big.NewRat(270, 1))
	require.NoError(t, err)
	require.Equal(t, "7/20", change.RatString())

	change, err = mathutil.RelativeChange(big.NewRat(4, 1), big.NewRat(3, 1))
	require.NoError(t, err)
	require.Equal(t, "-1/4", change.RatString())

	_, err = mathutil.RelativeChange(new(big.Rat), big.NewRat(1, 1))
	require.ErrorIs(t, err, mathutil.ErrZeroReference)
	_, err = mathutil.RelativeChange(nil, big.NewRat(1, 1))
	require.ErrorIs(t, err, mathutil.ErrZeroReference)
}

func TestDecimalConversions(t *testing.T) {
	require.Equal(t, "0.3333", mathutil.RatToDecimal(big.NewRat(1, 3), 4).String())
	require.Equal(t, "0", mathutil.RatToDecimal(nil, 4).String())
	require.Equal(t, "1.5", mathutil.SatsToDecimal(big.NewInt(150000000), 8).String())
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		name     string
		str      string
		expected string
	}{
		{"plain", "1250000", "1250000"},
		{"max", "9223372036854775807", "9223372036854775807"},
		{"exponent", "1.5e+18", "1500000000000000000"},
		{"zero_exponent", "0e1000000", "0"},
		{"integral_decimal", "42.000", "42"},
		{"negative", "-10", "-10"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n, err := mathutil.ParseInteger(tt.str)
			require.NoError(t, err)
			require.Equal(t, tt.expected, n.String())
		})
	}

	for _, bad := range []string{
		"", "abc", "1.5", "1e-3", "9223372036854775808",
		"123456789012345678901234567890", "1e19", "1e1000000", "-1e1000000",
		"1e-1000000",
	} {
		_, err := mathutil.ParseInteger(bad)
		require.Error(t, err, bad)
	}

	_, err := mathutil.ParseNonNegativeInteger("-1")
	require.Error(t, err)
	n, err := mathutil.ParseNonNegativeInteger("0")
	require.NoError(t, err)
	require.Equal(t, "0", n.String())
}
