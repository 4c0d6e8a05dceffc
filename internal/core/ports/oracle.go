package ports

import (
	"math/big"

	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
)

// ChainStep is a transaction produced by the oracle while writing a trade
// chain, with the input coins it consumed.
type ChainStep struct {
	Index      int
	Tx         domain.TradeTx
	InputCoins []domain.SpendableCoin
}

// ChainStepObserver is notified by the oracle after every transaction of a
// chain is produced. Returning an error aborts the construction.
type ChainStepObserver interface {
	OnChainStep(step ChainStep) error
}

// TradeOracle matches trades against pools at the best rate and builds and
// verifies the signed transactions that execute them. The pricing formula
// and the transaction encoding are owned by the implementation.
type TradeOracle interface {
	// PoolLockingScript returns the locking script of a pool with the given
	// contract version and parameters.
	PoolLockingScript(version string, params domain.PoolParameters) ([]byte, error)
	// BestRateForTargetDemand matches a trade that receives exactly the
	// given demand amount.
	BestRateForTargetDemand(
		supplyTokenID, demandTokenID string, demand *big.Int,
		pools []domain.Pool, txFeePerByte *big.Int,
	) (*domain.TradeResult, error)
	// BestRateForTargetSupply matches a trade that spends exactly the given
	// supply amount.
	BestRateForTargetSupply(
		supplyTokenID, demandTokenID string, supply *big.Int,
		pools []domain.Pool, txFeePerByte *big.Int,
	) (*domain.TradeResult, error)
	// WriteChainedTradeTx builds the signed transactions executing the given
	// entries. Later transactions may spend outputs of earlier ones.
	WriteChainedTradeTx(
		entries []domain.TradeEntry, inputCoins []domain.SpendableCoin,
		payoutRules []domain.PayoutRule, txFeePerByte *big.Int,
		observer ChainStepObserver,
	) ([]domain.TradeTx, error)
	// VerifyTradeTx checks the structural correctness of a trade transaction.
	VerifyTradeTx(tx domain.TradeTx) error
}
