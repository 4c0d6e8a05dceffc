package application

import (
	"fmt"
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tdex-network/tdex-cauldron/internal/core/application/pool"
	"github.com/tdex-network/tdex-cauldron/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-cauldron/internal/core/application/trade"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
	"github.com/tdex-network/tdex-cauldron/internal/infrastructure/cache"
	cauldronindexer "github.com/tdex-network/tdex-cauldron/internal/infrastructure/indexer/cauldron"
	rostrumindexer "github.com/tdex-network/tdex-cauldron/internal/infrastructure/indexer/rostrum"
	"github.com/tdex-network/tdex-cauldron/internal/infrastructure/metrics"
	webhookpubsub "github.com/tdex-network/tdex-cauldron/internal/infrastructure/pubsub"
)

const (
	IndexerREST    = "rest"
	IndexerRostrum = "rostrum"
)

var (
	SupportedIndexerType = map[string]struct{}{
		IndexerREST:    {},
		IndexerRostrum: {},
	}
)

// Config wires the services of the engine with their infrastructure. Every
// service is built lazily and at most once.
type Config struct {
	IndexerType              string
	IndexerURL               string
	RostrumURL               string
	IndexerTimeout           time.Duration
	IndexerRequestsPerSecond int
	// A zero PoolCacheTTL disables the pool cache.
	PoolCacheTTL time.Duration

	WebhookEndpoints []string
	WebhookSecret    string
	MetricsRegistry  *prometheus.Registry

	// Oracle is required by the trade service only.
	Oracle         ports.TradeOracle
	FeeReserve     domain.FeeReserve
	TxFeePerByte   *big.Int
	BurnDustTokens bool

	indexer ports.PoolIndexer
	cache   ports.PoolCache
	pools   *pool.Service
	pubsub  *pubsub.Service
	metrics *metrics.Service
	trade   *trade.Service
}

func (c *Config) Validate() error {
	if _, ok := SupportedIndexerType[c.IndexerType]; !ok {
		return fmt.Errorf("unsupported indexer type %s", c.IndexerType)
	}
	if c.PoolCacheTTL < 0 {
		return fmt.Errorf("pool cache ttl must not be negative")
	}
	if _, err := c.poolIndexer(); err != nil {
		return err
	}
	if _, err := c.pubsubService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) PoolService() (*pool.Service, error) {
	return c.poolService()
}

func (c *Config) PubSubService() (*pubsub.Service, error) {
	return c.pubsubService()
}

func (c *Config) Metrics() *metrics.Service {
	if c.metrics == nil {
		c.metrics = metrics.NewService("", c.MetricsRegistry)
	}
	return c.metrics
}

// TradeService returns the trade service, or an error if the oracle or the
// fee settings are missing.
func (c *Config) TradeService() (*trade.Service, error) {
	return c.tradeService()
}

func (c *Config) poolIndexer() (ports.PoolIndexer, error) {
	if c.indexer == nil {
		var (
			indexer ports.PoolIndexer
			err     error
		)
		switch c.IndexerType {
		case IndexerRostrum:
			indexer, err = rostrumindexer.NewService(c.RostrumURL, c.IndexerTimeout)
		default:
			indexer, err = cauldronindexer.NewService(
				c.IndexerURL, c.IndexerTimeout, c.IndexerRequestsPerSecond,
			)
		}
		if err != nil {
			return nil, err
		}
		c.indexer = indexer
	}
	return c.indexer, nil
}

func (c *Config) poolCache() (ports.PoolCache, error) {
	if c.cache == nil && c.PoolCacheTTL > 0 {
		poolCache, err := cache.NewPoolCache(0)
		if err != nil {
			return nil, err
		}
		c.cache = poolCache
	}
	return c.cache, nil
}

func (c *Config) poolService() (*pool.Service, error) {
	if c.pools == nil {
		indexer, err := c.poolIndexer()
		if err != nil {
			return nil, err
		}
		poolCache, err := c.poolCache()
		if err != nil {
			return nil, err
		}
		pools, err := pool.NewService(indexer, poolCache, c.PoolCacheTTL)
		if err != nil {
			return nil, err
		}
		c.pools = pools
	}
	return c.pools, nil
}

func (c *Config) pubsubService() (*pubsub.Service, error) {
	if c.pubsub == nil {
		webhooks, err := webhookpubsub.NewService(0)
		if err != nil {
			return nil, err
		}
		svc, err := pubsub.NewService(webhooks)
		if err != nil {
			return nil, err
		}
		for _, endpoint := range c.WebhookEndpoints {
			if _, err := svc.AddWebhook(
				ports.AnyTopic, endpoint, c.WebhookSecret,
			); err != nil {
				return nil, err
			}
		}
		c.pubsub = svc
	}
	return c.pubsub, nil
}

func (c *Config) tradeService() (*trade.Service, error) {
	if c.trade == nil {
		pools, err := c.poolService()
		if err != nil {
			return nil, err
		}
		pubsub, err := c.pubsubService()
		if err != nil {
			return nil, err
		}
		svc, err := trade.NewService(trade.ServiceOpts{
			Pools:          pools,
			Oracle:         c.Oracle,
			PubSub:         pubsub,
			Metrics:        c.Metrics(),
			FeeReserve:     c.FeeReserve,
			TxFeePerByte:   c.TxFeePerByte,
			BurnDustTokens: c.BurnDustTokens,
		})
		if err != nil {
			return nil, err
		}
		c.trade = svc
	}
	return c.trade, nil
}
