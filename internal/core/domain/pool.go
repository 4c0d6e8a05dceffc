package domain

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

// Outpoint identifies a transaction output.
type Outpoint struct {
	TxID  chainhash.Hash
	Index uint32
}

// NewOutpoint parses the given hex txid (in the usual reversed byte order).
func NewOutpoint(txid string, index uint32) (Outpoint, error) {
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil || len(txid) != chainhash.MaxHashStringSize {
		return Outpoint{}, ErrInvalidOutpoint
	}
	return Outpoint{*hash, index}, nil
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID, o.Index)
}

// PoolParameters are the contract parameters a pool locking script commits
// to.
type PoolParameters struct {
	WithdrawPubKeyHash []byte
}

// Pool is the in-memory view of a liquidity pool position. The LockingScript
// is a pure function of Version and Parameters.
type Pool struct {
	Version       string
	Parameters    PoolParameters
	Outpoint      Outpoint
	LockingScript []byte
	TokenID       string
	// TokenAmount is the token reserve.
	TokenAmount *big.Int
	// Amount is the native reserve.
	Amount *big.Int
}

// NewPool returns a validated pool. The locking script is left empty and is
// expected to be filled by the caller.
func NewPool(
	outpoint Outpoint, withdrawPKH []byte, tokenID string,
	tokenAmount, amount *big.Int,
) (*Pool, error) {
	p := &Pool{
		Version:     PoolVersion0,
		Parameters:  PoolParameters{WithdrawPubKeyHash: withdrawPKH},
		Outpoint:    outpoint,
		TokenID:     tokenID,
		TokenAmount: tokenAmount,
		Amount:      amount,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pool) Validate() error {
	if len(p.Parameters.WithdrawPubKeyHash) != 20 {
		return ErrPoolInvalidWithdrawPubKeyHash
	}
	if p.TokenID == "" || p.TokenID == NativeTokenID {
		return ErrPoolInvalidTokenID
	}
	if p.TokenAmount == nil || p.Amount == nil ||
		p.TokenAmount.Sign() < 0 || p.Amount.Sign() < 0 {
		return ErrPoolNegativeReserve
	}
	return nil
}

// Clone returns a deep copy of the pool.
func (p Pool) Clone() Pool {
	p.Parameters.WithdrawPubKeyHash = bytes.Clone(p.Parameters.WithdrawPubKeyHash)
	p.LockingScript = bytes.Clone(p.LockingScript)
	p.TokenAmount = mathutil.Copy(p.TokenAmount)
	p.Amount = mathutil.Copy(p.Amount)
	return p
}

// ApplyTradeEntries returns a copy of the given pools with the reserves of
// those matched by any entry updated as if the trade was executed. The input
// pools are left untouched.
func ApplyTradeEntries(pools []Pool, entries []TradeEntry) []Pool {
	after := make([]Pool, 0, len(pools))
	index := make(map[Outpoint]int, len(pools))
	for i, p := range pools {
		after = append(after, p.Clone())
		index[p.Outpoint] = i
	}

	for _, e := range entries {
		i, ok := index[e.Pool.Outpoint]
		if !ok {
			continue
		}
		p := &after[i]
		if e.DemandTokenID == NativeTokenID {
			p.Amount = mathutil.BigSub(p.Amount, e.Demand)
			p.TokenAmount = mathutil.BigAdd(p.TokenAmount, e.Supply)
			continue
		}
		p.Amount = mathutil.BigAdd(p.Amount, e.Supply)
		p.TokenAmount = mathutil.BigSub(p.TokenAmount, e.Demand)
	}
	return after
}
