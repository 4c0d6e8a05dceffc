package domain_test

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
)

func TestSelectCoins(t *testing.T) {
	t.Parallel()

	pool := newPool(t, 0, tokenX, 2000, 1000)

	t.Run("native_only", func(t *testing.T) {
		t.Parallel()

		// Supply 500 BCH, demand 1000 X: wallet holds no X and needs none.
		entries := []domain.TradeEntry{
			newEntry(pool, domain.NativeTokenID, tokenX, 500, 1000),
		}
		_, balances, err := domain.NetTradeEntries(entries, domain.DefaultFeeReserve)
		require.NoError(t, err)

		coin := newUnspent(t, 0, 2000, nil)
		selected, err := domain.SelectCoins("alice", balances, []domain.Unspent{coin})
		require.NoError(t, err)
		require.Equal(t, []domain.Unspent{coin}, selected)
		require.Equal(t, "300", balances.Get(domain.NativeTokenID).String())
		require.Equal(t, "1000", balances.Get(tokenX).String())
	})

	t.Run("native_and_token", func(t *testing.T) {
		t.Parallel()

		// Supply 1000 X, demand 500 BCH.
		entries := []domain.TradeEntry{
			newEntry(pool, tokenX, domain.NativeTokenID, 1000, 500),
		}
		_, balances, err := domain.NetTradeEntries(entries, domain.DefaultFeeReserve)
		require.NoError(t, err)
		require.Equal(t, "-700", balances.Get(domain.NativeTokenID).String())

		big5000 := newUnspent(t, 0, 5000, nil)
		small300 := newUnspent(t, 1, 300, nil)
		x600 := newUnspent(t, 2, 1000, fungible(tokenX, 600))
		x700 := newUnspent(t, 3, 1000, fungible(tokenX, 700))
		minting := newUnspent(t, 4, 1000, &domain.TokenPayload{
			TokenID: tokenX, Amount: big.NewInt(10000), Capability: "minting",
		})
		nft := newUnspent(t, 5, 1000, &domain.TokenPayload{
			TokenID: tokenX, Amount: big.NewInt(10000), Commitment: []byte{0x01},
		})
		y := newUnspent(t, 6, 1000, fungible(tokenY, 10000))
		unspents := []domain.Unspent{small300, x600, minting, big5000, nft, x700, y}

		selected, err := domain.SelectCoins("alice", balances, unspents)
		require.NoError(t, err)
		require.Equal(t, []domain.Unspent{big5000, x700, x600}, selected)
		require.Equal(t, "6300", balances.Get(domain.NativeTokenID).String())
		require.Equal(t, "300", balances.Get(tokenX).String())
		require.Empty(t, balances.Deficits())
	})

	t.Run("exact_ordering_of_large_amounts", func(t *testing.T) {
		t.Parallel()

		huge := new(big.Int).Lsh(big.NewInt(1), 70)
		hugePlusOne := new(big.Int).Add(huge, big.NewInt(1))

		balances := domain.NewBalanceSheet()
		balances.Debit(tokenX, big.NewInt(1))

		c1 := newUnspent(t, 0, 1000, &domain.TokenPayload{TokenID: tokenX, Amount: huge})
		c2 := newUnspent(t, 1, 1000, &domain.TokenPayload{TokenID: tokenX, Amount: hugePlusOne})

		selected, err := domain.SelectCoins("alice", balances, []domain.Unspent{c1, c2})
		require.NoError(t, err)
		require.Len(t, selected, 1)
		require.Equal(t, c2.Outpoint, selected[0].Outpoint)
		require.Equal(t, huge.String(), balances.Get(tokenX).String())
	})

	t.Run("same_coin_not_selected_twice", func(t *testing.T) {
		t.Parallel()

		balances := domain.NewBalanceSheet()
		balances.Debit(domain.NativeTokenID, big.NewInt(1500))

		coin := newUnspent(t, 0, 1000, nil)
		_, err := domain.SelectCoins("alice", balances, []domain.Unspent{coin, coin})
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})
}

func TestFailingSelectCoins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		tokenID         string
		deficit         int64
		unspents        []domain.Unspent
		expectedTokenID string
	}{
		{
			name:            "no_native_coins",
			tokenID:         domain.NativeTokenID,
			deficit:         1000,
			unspents:        []domain.Unspent{newUnspent(t, 0, 5000, fungible(tokenX, 10))},
			expectedTokenID: domain.NativeTokenID,
		},
		{
			name:            "not_enough_native",
			tokenID:         domain.NativeTokenID,
			deficit:         1000,
			unspents:        []domain.Unspent{newUnspent(t, 0, 400, nil), newUnspent(t, 1, 599, nil)},
			expectedTokenID: domain.NativeTokenID,
		},
		{
			name:            "not_enough_token",
			tokenID:         tokenX,
			deficit:         1000,
			unspents:        []domain.Unspent{newUnspent(t, 0, 1000, fungible(tokenX, 999))},
			expectedTokenID: tokenX,
		},
		{
			name:            "zero_token_amount",
			tokenID:         tokenX,
			deficit:         1,
			unspents:        []domain.Unspent{newUnspent(t, 0, 1000, fungible(tokenX, 0))},
			expectedTokenID: tokenX,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			balances := domain.NewBalanceSheet()
			balances.Debit(tt.tokenID, big.NewInt(tt.deficit))

			selected, err := domain.SelectCoins("alice", balances, tt.unspents)
			require.Error(t, err)
			require.Nil(t, selected)
			require.ErrorIs(t, err, domain.ErrInsufficientFunds)

			var fundsErr *domain.InsufficientFundsError
			require.True(t, errors.As(err, &fundsErr))
			require.Equal(t, "alice", fundsErr.Wallet)
			require.Equal(t, tt.expectedTokenID, fundsErr.TokenID)
		})
	}
}

func newUnspent(
	t *testing.T, index uint32, amount int64, token *domain.TokenPayload,
) domain.Unspent {
	o, err := domain.NewOutpoint(strings.Repeat("ef", 32), index)
	require.NoError(t, err)
	return domain.Unspent{Outpoint: o, Amount: big.NewInt(amount), Token: token}
}

func fungible(tokenID string, amount int64) *domain.TokenPayload {
	return &domain.TokenPayload{TokenID: tokenID, Amount: big.NewInt(amount)}
}
