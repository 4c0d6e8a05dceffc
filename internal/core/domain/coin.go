package domain

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

// TokenPayload is the token data optionally carried by a coin.
type TokenPayload struct {
	TokenID    string
	Amount     *big.Int
	Capability string
	Commitment []byte
}

// IsPlainFungible returns whether the payload is a plain fungible holding,
// ie. it has neither a capability nor a commitment.
func (t *TokenPayload) IsPlainFungible() bool {
	return t != nil && t.Capability == "" && t.Commitment == nil
}

func (t *TokenPayload) clone() *TokenPayload {
	if t == nil {
		return nil
	}
	var commitment []byte
	if t.Commitment != nil {
		commitment = append([]byte{}, t.Commitment...)
	}
	return &TokenPayload{t.TokenID, mathutil.Copy(t.Amount), t.Capability, commitment}
}

// Unspent is a wallet coin as returned by the wallet enumeration.
type Unspent struct {
	Outpoint Outpoint
	Amount   *big.Int
	Token    *TokenPayload
}

// TokenAmount returns the token amount of the coin, zero if it carries no
// token.
func (u Unspent) TokenAmount() *big.Int {
	if u.Token == nil {
		return mathutil.Zero()
	}
	return mathutil.Copy(u.Token.Amount)
}

// CoinType is the type of script locking a spendable coin.
type CoinType int

const (
	CoinTypeP2PKH CoinType = iota
)

func (t CoinType) String() string {
	switch t {
	case CoinTypeP2PKH:
		return "P2PKH"
	default:
		return "UNKNOWN"
	}
}

// SpendableCoin is an unspent output with what is needed to spend it.
type SpendableCoin struct {
	Type          CoinType
	Outpoint      Outpoint
	LockingScript []byte
	Key           *btcec.PrivateKey
	Amount        *big.Int
	Token         *TokenPayload
}

// NewSpendableCoin binds the given unspent to the P2PKH script and key of its
// owner.
func NewSpendableCoin(
	u Unspent, lockingScript []byte, key *btcec.PrivateKey,
) SpendableCoin {
	return SpendableCoin{
		Type:          CoinTypeP2PKH,
		Outpoint:      u.Outpoint,
		LockingScript: lockingScript,
		Key:           key,
		Amount:        mathutil.Copy(u.Amount),
		Token:         u.Token.clone(),
	}
}
