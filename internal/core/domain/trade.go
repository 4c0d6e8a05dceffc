package domain

import (
	"math/big"
)

// TradeEntry is a single conversion matched against one pool.
type TradeEntry struct {
	Pool          Pool
	SupplyTokenID string
	DemandTokenID string
	Supply        *big.Int
	Demand        *big.Int
}

func (e TradeEntry) validate() error {
	if e.SupplyTokenID == "" || e.DemandTokenID == "" ||
		e.SupplyTokenID == e.DemandTokenID {
		return ErrInvalidTradeEntry
	}
	if e.Supply == nil || e.Demand == nil ||
		e.Supply.Sign() < 0 || e.Demand.Sign() < 0 {
		return ErrInvalidTradeEntry
	}
	return nil
}

// TradeSummary aggregates the totals of a trade as reported by the oracle
// that matched it.
type TradeSummary struct {
	Supply   *big.Int
	Demand   *big.Int
	TradeFee *big.Int
}

// TradeResult is the ordered list of entries matched for a trade.
type TradeResult struct {
	Entries []TradeEntry
	Summary TradeSummary
}

// TradeProposal is a TradeResult with the price impact it would cause on the
// pool set it was matched against.
type TradeProposal struct {
	TradeResult
	SupplyTokenID string
	DemandTokenID string
	// PriceImpact is the signed relative change of the pools weighted rate.
	PriceImpact float64
}
