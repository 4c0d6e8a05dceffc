package trade

import (
	"fmt"
	"math/big"

	"github.com/tdex-network/tdex-cauldron/internal/core/application/pool"
	"github.com/tdex-network/tdex-cauldron/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

type ServiceOpts struct {
	Pools  *pool.Service
	Oracle ports.TradeOracle
	// PubSub and Metrics are optional.
	PubSub  *pubsub.Service
	Metrics ports.TradeMetrics

	FeeReserve     domain.FeeReserve
	TxFeePerByte   *big.Int
	BurnDustTokens bool
}

func (o ServiceOpts) validate() error {
	if o.Pools == nil {
		return fmt.Errorf("missing pool service")
	}
	if o.Oracle == nil {
		return fmt.Errorf("missing trade oracle")
	}
	if err := o.FeeReserve.Validate(); err != nil {
		return err
	}
	if o.TxFeePerByte == nil || o.TxFeePerByte.Sign() <= 0 {
		return ErrInvalidFeeRate
	}
	return nil
}

// Service proposes, funds and broadcasts trades against cauldron pools.
// Funding passes for the same wallet must not run concurrently since coins
// are claimed only within a pass.
type Service struct {
	pools   *pool.Service
	oracle  ports.TradeOracle
	pubsub  *pubsub.Service
	metrics ports.TradeMetrics

	feeReserve     domain.FeeReserve
	txFeePerByte   *big.Int
	burnDustTokens bool
}

func NewService(opts ServiceOpts) (*Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		pools:          opts.Pools,
		oracle:         opts.Oracle,
		pubsub:         opts.PubSub,
		metrics:        metrics,
		feeReserve:     opts.FeeReserve,
		txFeePerByte:   new(big.Int).Set(opts.TxFeePerByte),
		burnDustTokens: opts.BurnDustTokens,
	}, nil
}

func (s *Service) feeRate(override *big.Int) (*big.Int, error) {
	rate := s.txFeePerByte
	if override != nil {
		rate = override
	}
	if rate.Sign() <= 0 {
		return nil, ErrInvalidFeeRate
	}
	return new(big.Int).Set(rate), nil
}
