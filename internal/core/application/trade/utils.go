package trade

import (
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

// coinUsageRecorder collects the coins consumed by every step of a chain
// written by the oracle.
type coinUsageRecorder struct {
	passID   string
	steps    []ports.ChainStep
	consumed []domain.SpendableCoin
}

func newCoinUsageRecorder(passID string) *coinUsageRecorder {
	return &coinUsageRecorder{
		passID:   passID,
		steps:    make([]ports.ChainStep, 0),
		consumed: make([]domain.SpendableCoin, 0),
	}
}

func (r *coinUsageRecorder) OnChainStep(step ports.ChainStep) error {
	r.steps = append(r.steps, step)
	r.consumed = append(r.consumed, step.InputCoins...)
	log.Debugf(
		"pass %s: chain step %d consumed %d coins (%d so far)",
		r.passID, step.Index, len(step.InputCoins), len(r.consumed),
	)
	return nil
}

type noopMetrics struct{}

func (noopMetrics) ProposalCreated(_, _ string)   {}
func (noopMetrics) FundingFailed(_ string)        {}
func (noopMetrics) TransactionsBroadcasted(_ int) {}
func (noopMetrics) ChainFailed()                  {}

func spendableCoins(
	unspents []domain.Unspent, w ports.Wallet, lockingScript []byte,
) []domain.SpendableCoin {
	coins := make([]domain.SpendableCoin, 0, len(unspents))
	for _, u := range unspents {
		coins = append(coins, domain.NewSpendableCoin(u, lockingScript, w.PrivateKey()))
	}
	return coins
}
