package trade

import (
	"math/big"

	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

type ProposeTradeOpts struct {
	SupplyTokenID string
	DemandTokenID string
	// DemandAmount takes precedence over SupplyAmount if both are given.
	DemandAmount *big.Int
	SupplyAmount *big.Int
	// TxFeePerByte overrides the service default if not nil.
	TxFeePerByte *big.Int
	NoCache      bool
	// ActivePools, if not nil, is used instead of querying the indexer.
	ActivePools []ports.PoolRecord
}

func (o ProposeTradeOpts) validate() error {
	supplyIsNative := o.SupplyTokenID == domain.NativeTokenID
	demandIsNative := o.DemandTokenID == domain.NativeTokenID
	if o.SupplyTokenID == "" || o.DemandTokenID == "" ||
		supplyIsNative == demandIsNative {
		return ErrInvalidTradePair
	}
	amount := o.DemandAmount
	if amount == nil {
		amount = o.SupplyAmount
	}
	if amount == nil {
		return ErrMissingTradeAmount
	}
	if amount.Sign() <= 0 {
		return ErrInvalidTradeAmount
	}
	return nil
}

func (o ProposeTradeOpts) tokenID() string {
	if o.SupplyTokenID == domain.NativeTokenID {
		return o.DemandTokenID
	}
	return o.SupplyTokenID
}

type FundTradeOpts struct {
	Wallet   ports.Wallet
	Proposal *domain.TradeProposal
	// TxFeePerByte overrides the service default if not nil.
	TxFeePerByte *big.Int
	// BurnDustTokens overrides the service default if not nil.
	BurnDustTokens *bool
}

func (o FundTradeOpts) validate() error {
	if o.Wallet == nil {
		return ErrNullWallet
	}
	if o.Proposal == nil {
		return ErrNullProposal
	}
	return nil
}

// FundResult is the outcome of a funding pass.
type FundResult struct {
	// PassID identifies the funding pass in logs and events.
	PassID   string
	Proposal *domain.TradeProposal
	// Txs are the verified transactions, in chain order.
	Txs []domain.TradeTx
	// SelectedCoins are the wallet coins made available to the oracle.
	SelectedCoins []domain.SpendableCoin
	// ConsumedCoins are the coins actually spent by the chain, step by step.
	ConsumedCoins []domain.SpendableCoin
	Steps         []ports.ChainStep
	// Balances are the net token balances after coin selection.
	Balances []domain.TokenBalance
}
