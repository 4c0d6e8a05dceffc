package ports

import (
	"context"
	"math/big"
	"time"
)

// PoolRecord is an active pool position as reported by an indexer.
type PoolRecord struct {
	OwnerP2PKHAddr string
	// OwnerPKH is the hex encoded withdraw pubkey hash of the pool owner.
	OwnerPKH string
	Sats     *big.Int
	TokenID  string
	Tokens   *big.Int
	TxPos    uint32
	TxID     string
}

// PoolIndexer discovers the active pools trading a token. An indexer that
// knows no pool for the token returns an empty list, not an error.
type PoolIndexer interface {
	GetActivePools(ctx context.Context, tokenID string) ([]PoolRecord, error)
}

// PoolCache keeps recently fetched pool records by token.
type PoolCache interface {
	Get(tokenID string) ([]PoolRecord, bool)
	Set(tokenID string, records []PoolRecord, ttl time.Duration)
	Invalidate(tokenID string)
}
