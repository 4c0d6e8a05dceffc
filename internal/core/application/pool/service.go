package pool

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

// Service fetches the active pools of a token, from the cache if fresh
// enough, otherwise from the indexer.
type Service struct {
	indexer  ports.PoolIndexer
	cache    ports.PoolCache
	cacheTTL time.Duration
}

// NewService returns a pool service. The cache is optional.
func NewService(
	indexer ports.PoolIndexer, cache ports.PoolCache, cacheTTL time.Duration,
) (*Service, error) {
	if indexer == nil {
		return nil, fmt.Errorf("missing pool indexer")
	}
	if cache != nil && cacheTTL <= 0 {
		return nil, fmt.Errorf("pool cache ttl must be positive")
	}
	return &Service{indexer, cache, cacheTTL}, nil
}

// GetActivePools returns the pools trading the given token. With noCache the
// cache is not read but it is still refreshed with the fetched records. An
// empty result is never cached, any entry for the token is dropped instead.
func (s *Service) GetActivePools(
	ctx context.Context, tokenID string, noCache bool,
) ([]domain.Pool, error) {
	records, err := s.GetActivePoolRecords(ctx, tokenID, noCache)
	if err != nil {
		return nil, err
	}
	return PoolsFromRecords(records)
}

func (s *Service) GetActivePoolRecords(
	ctx context.Context, tokenID string, noCache bool,
) ([]ports.PoolRecord, error) {
	if s.cache != nil && !noCache {
		if records, ok := s.cache.Get(tokenID); ok {
			log.Debugf("using %d cached pools for token %s", len(records), tokenID)
			return records, nil
		}
	}

	records, err := s.indexer.GetActivePools(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active pools: %w", err)
	}
	log.Debugf("fetched %d active pools for token %s", len(records), tokenID)

	if s.cache != nil {
		if len(records) <= 0 {
			s.cache.Invalidate(tokenID)
		} else {
			s.cache.Set(tokenID, records, s.cacheTTL)
		}
	}
	return records, nil
}

// PoolsFromRecords turns indexer records into pools. The returned pools have
// no locking script.
func PoolsFromRecords(records []ports.PoolRecord) ([]domain.Pool, error) {
	pools := make([]domain.Pool, 0, len(records))
	for _, r := range records {
		outpoint, err := domain.NewOutpoint(r.TxID, r.TxPos)
		if err != nil {
			return nil, fmt.Errorf("pool %s:%d: %w", r.TxID, r.TxPos, err)
		}
		pkh, err := hex.DecodeString(r.OwnerPKH)
		if err != nil {
			return nil, fmt.Errorf(
				"pool %s: invalid owner pubkey hash: %w", outpoint, err,
			)
		}
		p, err := domain.NewPool(outpoint, pkh, r.TokenID, copyInt(r.Tokens), copyInt(r.Sats))
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", outpoint, err)
		}
		pools = append(pools, *p)
	}
	return pools, nil
}

func copyInt(x *big.Int) *big.Int {
	if x == nil {
		return nil
	}
	return new(big.Int).Set(x)
}
