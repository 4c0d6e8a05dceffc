package domain_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
)

func TestWeightedAverageRate(t *testing.T) {
	t.Parallel()

	pools := []domain.Pool{
		newPool(t, 0, tokenX, 2000, 1000),
		newPool(t, 1, tokenX, 1000, 3000),
	}

	rate, err := domain.WeightedAverageRate(pools)
	require.NoError(t, err)
	require.Zero(t, rate.Cmp(big.NewRat(5000, 3)))

	t.Run("homogeneous", func(t *testing.T) {
		doubled := []domain.Pool{
			newPool(t, 0, tokenX, 4000, 2000),
			newPool(t, 1, tokenX, 2000, 6000),
		}
		doubledRate, err := domain.WeightedAverageRate(doubled)
		require.NoError(t, err)
		expected := new(big.Rat).Mul(rate, big.NewRat(2, 1))
		require.Zero(t, doubledRate.Cmp(expected))
	})

	t.Run("undefined", func(t *testing.T) {
		_, err := domain.WeightedAverageRate(nil)
		require.ErrorIs(t, err, domain.ErrUndefinedWeightedRate)

		_, err = domain.WeightedAverageRate([]domain.Pool{
			newPool(t, 0, tokenX, 0, 1000),
		})
		require.ErrorIs(t, err, domain.ErrUndefinedWeightedRate)
	})
}

func TestPriceImpact(t *testing.T) {
	t.Parallel()

	p1 := newPool(t, 0, tokenX, 2000, 1000)
	p2 := newPool(t, 1, tokenX, 1000, 3000)
	pools := []domain.Pool{p1, p2}
	entries := []domain.TradeEntry{
		newEntry(p1, tokenX, domain.NativeTokenID, 100, 50),
	}

	impact, err := domain.PriceImpact(pools, entries)
	require.NoError(t, err)
	require.InDelta(t, -515000.0/15500000.0, impact, 1e-12)

	t.Run("no_entries", func(t *testing.T) {
		impact, err := domain.PriceImpact(pools, nil)
		require.NoError(t, err)
		require.Zero(t, impact)
	})

	t.Run("scaled", func(t *testing.T) {
		s1 := newPool(t, 0, tokenX, 4000, 2000)
		s2 := newPool(t, 1, tokenX, 2000, 6000)
		scaledImpact, err := domain.PriceImpact(
			[]domain.Pool{s1, s2},
			[]domain.TradeEntry{newEntry(s1, tokenX, domain.NativeTokenID, 200, 100)},
		)
		require.NoError(t, err)
		require.Equal(t, impact, scaledImpact)
	})

	t.Run("empty_pools", func(t *testing.T) {
		_, err := domain.PriceImpact(nil, entries)
		require.ErrorIs(t, err, domain.ErrUndefinedWeightedRate)
	})
}
