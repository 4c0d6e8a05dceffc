package trade_test

import (
	"context"
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

// **** Indexer ****

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) GetActivePools(
	ctx context.Context, tokenID string,
) ([]ports.PoolRecord, error) {
	args := m.Called(ctx, tokenID)

	var res []ports.PoolRecord
	if a := args.Get(0); a != nil {
		res = a.([]ports.PoolRecord)
	}
	return res, args.Error(1)
}

// **** Oracle ****

type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) PoolLockingScript(
	version string, params domain.PoolParameters,
) ([]byte, error) {
	args := m.Called(version, params)

	var res []byte
	if a := args.Get(0); a != nil {
		res = a.([]byte)
	}
	return res, args.Error(1)
}

func (m *mockOracle) BestRateForTargetDemand(
	supplyTokenID, demandTokenID string, demand *big.Int,
	pools []domain.Pool, txFeePerByte *big.Int,
) (*domain.TradeResult, error) {
	args := m.Called(supplyTokenID, demandTokenID, demand, pools, txFeePerByte)

	var res *domain.TradeResult
	if a := args.Get(0); a != nil {
		res = a.(*domain.TradeResult)
	}
	return res, args.Error(1)
}

func (m *mockOracle) BestRateForTargetSupply(
	supplyTokenID, demandTokenID string, supply *big.Int,
	pools []domain.Pool, txFeePerByte *big.Int,
) (*domain.TradeResult, error) {
	args := m.Called(supplyTokenID, demandTokenID, supply, pools, txFeePerByte)

	var res *domain.TradeResult
	if a := args.Get(0); a != nil {
		res = a.(*domain.TradeResult)
	}
	return res, args.Error(1)
}

func (m *mockOracle) WriteChainedTradeTx(
	entries []domain.TradeEntry, inputCoins []domain.SpendableCoin,
	payoutRules []domain.PayoutRule, txFeePerByte *big.Int,
	observer ports.ChainStepObserver,
) ([]domain.TradeTx, error) {
	args := m.Called(entries, inputCoins, payoutRules, txFeePerByte, observer)

	var res []domain.TradeTx
	if a := args.Get(0); a != nil {
		res = a.([]domain.TradeTx)
	}
	return res, args.Error(1)
}

func (m *mockOracle) VerifyTradeTx(tx domain.TradeTx) error {
	return m.Called(tx).Error(0)
}

// **** Wallet ****

type mockWallet struct {
	mock.Mock
	lock      sync.Mutex
	submitted []string
}

func (m *mockWallet) Name() string {
	return "alice"
}

func (m *mockWallet) ListUnspents(ctx context.Context) ([]domain.Unspent, error) {
	args := m.Called(ctx)

	var res []domain.Unspent
	if a := args.Get(0); a != nil {
		res = a.([]domain.Unspent)
	}
	return res, args.Error(1)
}

func (m *mockWallet) LockingScript() ([]byte, error) {
	args := m.Called()

	var res []byte
	if a := args.Get(0); a != nil {
		res = a.([]byte)
	}
	return res, args.Error(1)
}

func (m *mockWallet) PrivateKey() *btcec.PrivateKey {
	args := m.Called()

	var res *btcec.PrivateKey
	if a := args.Get(0); a != nil {
		res = a.(*btcec.PrivateKey)
	}
	return res
}

func (m *mockWallet) SubmitTransaction(ctx context.Context, txBin []byte) (string, error) {
	args := m.Called(ctx, txBin)
	txid := args.String(0)
	if err := args.Error(1); err != nil {
		return "", err
	}

	m.lock.Lock()
	m.submitted = append(m.submitted, txid)
	m.lock.Unlock()
	return txid, nil
}

// **** Metrics ****

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) ProposalCreated(supplyTokenID, demandTokenID string) {
	m.Called(supplyTokenID, demandTokenID)
}

func (m *mockMetrics) FundingFailed(reason string) {
	m.Called(reason)
}

func (m *mockMetrics) TransactionsBroadcasted(count int) {
	m.Called(count)
}

func (m *mockMetrics) ChainFailed() {
	m.Called()
}

// **** PubSub ****

type mockPubSub struct {
	mock.Mock
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)
	return args.String(0), args.Error(1)
}

func (m *mockPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	args := m.Called(topic)

	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res
}

func (m *mockPubSub) Publish(topic string, message string) error {
	return m.Called(topic, message).Error(0)
}
