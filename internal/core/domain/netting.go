package domain

import (
	"math/big"

	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

// TradeSum is the aggregate of all entries converting SupplyTokenID into
// DemandTokenID.
type TradeSum struct {
	SupplyTokenID string
	DemandTokenID string
	Supply        *big.Int
	Demand        *big.Int
}

// TradeSums is the per-pair table of a trade, in order of first appearance.
type TradeSums []TradeSum

func (s TradeSums) find(supplyTokenID, demandTokenID string) int {
	for i, ts := range s {
		if ts.SupplyTokenID == supplyTokenID && ts.DemandTokenID == demandTokenID {
			return i
		}
	}
	return -1
}

// BySupplyToken returns the first pair supplying the given token.
func (s TradeSums) BySupplyToken(tokenID string) (TradeSum, bool) {
	for _, ts := range s {
		if ts.SupplyTokenID == tokenID {
			return ts, true
		}
	}
	return TradeSum{}, false
}

// ByDemandToken returns the first pair demanding the given token.
func (s TradeSums) ByDemandToken(tokenID string) (TradeSum, bool) {
	for _, ts := range s {
		if ts.DemandTokenID == tokenID {
			return ts, true
		}
	}
	return TradeSum{}, false
}

// opposes returns whether an already accumulated pair converts tokens in the
// opposite direction of the given entry.
func (s TradeSums) opposes(e TradeEntry) bool {
	for _, ts := range s {
		if ts.SupplyTokenID == e.SupplyTokenID && ts.DemandTokenID == e.DemandTokenID {
			continue
		}
		if ts.SupplyTokenID == e.DemandTokenID || ts.DemandTokenID == e.SupplyTokenID {
			return true
		}
	}
	return false
}

// NetTradeEntries walks the given entries once and returns the per-pair trade
// sums and the net balance of every token involved, with the native balance
// further debited by the fee reserve. Nothing is returned in case of error.
func NetTradeEntries(
	entries []TradeEntry, reserve FeeReserve,
) (TradeSums, *BalanceSheet, error) {
	if len(entries) <= 0 {
		return nil, nil, ErrEmptyTradeEntries
	}
	if err := reserve.Validate(); err != nil {
		return nil, nil, err
	}

	sums := make(TradeSums, 0)
	balances := NewBalanceSheet()
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, nil, err
		}
		if sums.opposes(e) {
			return nil, nil, ErrOpposedTradeEntries
		}

		i := sums.find(e.SupplyTokenID, e.DemandTokenID)
		if i < 0 {
			sums = append(sums, TradeSum{
				SupplyTokenID: e.SupplyTokenID,
				DemandTokenID: e.DemandTokenID,
				Supply:        mathutil.Zero(),
				Demand:        mathutil.Zero(),
			})
			i = len(sums) - 1
		}
		sums[i].Supply = mathutil.BigAdd(sums[i].Supply, e.Supply)
		sums[i].Demand = mathutil.BigAdd(sums[i].Demand, e.Demand)

		balances.Credit(e.DemandTokenID, e.Demand)
		balances.Debit(e.SupplyTokenID, e.Supply)
	}

	balances.Debit(NativeTokenID, reserve.Amount(len(entries)))
	return sums, balances, nil
}
