// Package cache implements a ports.PoolCache backed by ristretto.
package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

const (
	defaultMaxTokens = 1000
)

type poolCache struct {
	cache *ristretto.Cache
}

// NewPoolCache returns a cache able to hold the pool sets of up to maxTokens
// tokens. A zero maxTokens means the default.
func NewPoolCache(maxTokens int64) (ports.PoolCache, error) {
	if maxTokens < 0 {
		return nil, fmt.Errorf("pool cache size must not be negative")
	}
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxTokens * 10,
		MaxCost:     maxTokens,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &poolCache{cache}, nil
}

func (c *poolCache) Get(tokenID string) ([]ports.PoolRecord, bool) {
	v, ok := c.cache.Get(tokenID)
	if !ok {
		return nil, false
	}
	records, ok := v.([]ports.PoolRecord)
	if !ok {
		return nil, false
	}
	return copyRecords(records), true
}

func (c *poolCache) Set(
	tokenID string, records []ports.PoolRecord, ttl time.Duration,
) {
	if ttl <= 0 {
		return
	}
	if ok := c.cache.SetWithTTL(tokenID, copyRecords(records), 1, ttl); !ok {
		log.Debugf("pool cache dropped pools of token %s", tokenID)
		return
	}
	// Make the entry visible to the next Get.
	c.cache.Wait()
}

func (c *poolCache) Invalidate(tokenID string) {
	c.cache.Del(tokenID)
}

func copyRecords(records []ports.PoolRecord) []ports.PoolRecord {
	out := make([]ports.PoolRecord, 0, len(records))
	for _, r := range records {
		r.Sats = mathutil.Copy(r.Sats)
		r.Tokens = mathutil.Copy(r.Tokens)
		out = append(out, r)
	}
	return out
}
