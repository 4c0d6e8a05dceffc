package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-cauldron/internal/core/application/pool"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

const (
	fundingFailedInvalidTrade      = "invalid_trade"
	fundingFailedInsufficientFunds = "insufficient_funds"
	fundingFailedWallet            = "wallet"
	fundingFailedConstruction      = "construction"
	fundingFailedVerification      = "verification"
)

// ProposeTrade matches the requested trade against the active pools of the
// traded token and attaches the price impact it would cause.
func (s *Service) ProposeTrade(
	ctx context.Context, opts ProposeTradeOpts,
) (*domain.TradeProposal, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	feeRate, err := s.feeRate(opts.TxFeePerByte)
	if err != nil {
		return nil, err
	}

	var pools []domain.Pool
	if opts.ActivePools != nil {
		pools, err = pool.PoolsFromRecords(opts.ActivePools)
	} else {
		pools, err = s.pools.GetActivePools(ctx, opts.tokenID(), opts.NoCache)
	}
	if err != nil {
		return nil, err
	}
	if len(pools) <= 0 {
		return nil, ErrNoLiquidity
	}
	tokenID := opts.tokenID()
	for _, p := range pools {
		if p.TokenID != tokenID {
			return nil, fmt.Errorf(
				"%w: pool %s trades %s", ErrPoolTokenMismatch, p.Outpoint, p.TokenID,
			)
		}
	}

	for i := range pools {
		script, err := s.oracle.PoolLockingScript(pools[i].Version, pools[i].Parameters)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to derive locking script of pool %s: %w", pools[i].Outpoint, err,
			)
		}
		pools[i].LockingScript = script
	}

	var result *domain.TradeResult
	if opts.DemandAmount != nil {
		result, err = s.oracle.BestRateForTargetDemand(
			opts.SupplyTokenID, opts.DemandTokenID, opts.DemandAmount, pools, feeRate,
		)
	} else {
		result, err = s.oracle.BestRateForTargetSupply(
			opts.SupplyTokenID, opts.DemandTokenID, opts.SupplyAmount, pools, feeRate,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to match trade: %w", err)
	}

	impact, err := domain.PriceImpact(pools, result.Entries)
	if err != nil {
		return nil, err
	}

	s.metrics.ProposalCreated(opts.SupplyTokenID, opts.DemandTokenID)
	log.Debugf(
		"proposed trade %s -> %s with %d entries, price impact %f",
		opts.SupplyTokenID, opts.DemandTokenID, len(result.Entries), impact,
	)

	return &domain.TradeProposal{
		TradeResult:   *result,
		SupplyTokenID: opts.SupplyTokenID,
		DemandTokenID: opts.DemandTokenID,
		PriceImpact:   impact,
	}, nil
}

// FundProposedTrade selects the wallet coins covering the given proposal and
// has the oracle write the chain of transactions executing it. Every
// transaction is verified before returning.
func (s *Service) FundProposedTrade(
	ctx context.Context, opts FundTradeOpts,
) (*FundResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	feeRate, err := s.feeRate(opts.TxFeePerByte)
	if err != nil {
		return nil, err
	}
	burnDustTokens := s.burnDustTokens
	if opts.BurnDustTokens != nil {
		burnDustTokens = *opts.BurnDustTokens
	}

	passID := uuid.New().String()
	w := opts.Wallet
	entries := opts.Proposal.Entries

	tradeSums, balances, err := domain.NetTradeEntries(entries, s.feeReserve)
	if err != nil {
		s.metrics.FundingFailed(fundingFailedInvalidTrade)
		return nil, err
	}

	key := w.PrivateKey()
	if key == nil {
		s.metrics.FundingFailed(fundingFailedWallet)
		return nil, ErrNullWalletKey
	}
	lockingScript, err := w.LockingScript()
	if err != nil {
		s.metrics.FundingFailed(fundingFailedWallet)
		return nil, fmt.Errorf("failed to get wallet locking script: %w", err)
	}
	unspents, err := w.ListUnspents(ctx)
	if err != nil {
		s.metrics.FundingFailed(fundingFailedWallet)
		return nil, fmt.Errorf("failed to list wallet unspents: %w", err)
	}

	selected, err := domain.SelectCoins(w.Name(), balances, unspents)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			s.metrics.FundingFailed(fundingFailedInsufficientFunds)
		}
		return nil, err
	}
	inputCoins := spendableCoins(selected, w, lockingScript)
	log.Debugf(
		"pass %s: selected %d of %d coins of wallet %s",
		passID, len(inputCoins), len(unspents), w.Name(),
	)

	payoutRules := []domain.PayoutRule{
		{
			Type:          domain.PayoutAmountRuleChange,
			LockingScript: lockingScript,
			SpendingParameters: domain.SpendingParameters{
				Type: domain.CoinTypeP2PKH,
				Key:  key,
			},
			AllowMixingNativeAndToken: false,
			BurnDecider:               domain.NewDustBurnPolicy(tradeSums, burnDustTokens),
		},
	}

	recorder := newCoinUsageRecorder(passID)
	txs, err := s.oracle.WriteChainedTradeTx(
		entries, inputCoins, payoutRules, feeRate, recorder,
	)
	if err != nil {
		s.metrics.FundingFailed(fundingFailedConstruction)
		return nil, fmt.Errorf("failed to write trade chain: %w", err)
	}
	if len(txs) <= 0 {
		s.metrics.FundingFailed(fundingFailedConstruction)
		return nil, ErrEmptyTradeChain
	}

	for i, tx := range txs {
		if err := s.oracle.VerifyTradeTx(tx); err != nil {
			s.metrics.FundingFailed(fundingFailedVerification)
			return nil, &ChainVerificationError{i, err}
		}
	}
	log.Debugf("pass %s: written and verified %d trade txs", passID, len(txs))

	return &FundResult{
		PassID:        passID,
		Proposal:      opts.Proposal,
		Txs:           txs,
		SelectedCoins: inputCoins,
		ConsumedCoins: recorder.consumed,
		Steps:         recorder.steps,
		Balances:      balances.Balances(),
	}, nil
}

// BroadcastTrade submits the given transactions one by one in chain order and
// returns their ids in the same order. Submission stops at the first failure,
// reported as a *PartialBroadcastError.
func (s *Service) BroadcastTrade(
	ctx context.Context, w ports.Wallet, txs []domain.TradeTx,
) ([]string, error) {
	return s.broadcast(ctx, w, txs, nil)
}

// BroadcastFundedTrade is like BroadcastTrade for the result of a funding
// pass, whose proposal is included in the published event.
func (s *Service) BroadcastFundedTrade(
	ctx context.Context, w ports.Wallet, result *FundResult,
) ([]string, error) {
	if result == nil {
		return nil, ErrEmptyTradeChain
	}
	return s.broadcast(ctx, w, result.Txs, result.Proposal)
}

func (s *Service) broadcast(
	ctx context.Context, w ports.Wallet, txs []domain.TradeTx,
	proposal *domain.TradeProposal,
) ([]string, error) {
	if w == nil {
		return nil, ErrNullWallet
	}
	if len(txs) <= 0 {
		return nil, ErrEmptyTradeChain
	}

	txids := make([]string, 0, len(txs))
	for i, tx := range txs {
		txid, err := w.SubmitTransaction(ctx, tx.TxBin)
		if err != nil {
			s.metrics.TransactionsBroadcasted(len(txids))
			s.metrics.ChainFailed()
			log.WithError(err).Warnf(
				"trade chain broken at tx %d of %d, %d already broadcasted",
				i, len(txs), len(txids),
			)
			if s.pubsub != nil {
				if err := s.pubsub.PublishTradeChainFailedEvent(
					w.Name(), txids, i, err,
				); err != nil {
					log.WithError(err).Warn("failed to publish trade chain failure")
				}
			}
			return nil, &PartialBroadcastError{txids, i, err}
		}
		log.Debugf("broadcasted trade tx %d of %d: %s", i+1, len(txs), txid)
		txids = append(txids, txid)
	}

	s.metrics.TransactionsBroadcasted(len(txids))
	if s.pubsub != nil {
		if err := s.pubsub.PublishTradeBroadcastedEvent(
			w.Name(), txids, proposal,
		); err != nil {
			log.WithError(err).Warn("failed to publish trade broadcasted event")
		}
	}
	return txids, nil
}
