package ports

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
)

// Wallet is a single-key P2PKH wallet funding trades.
type Wallet interface {
	Name() string
	ListUnspents(ctx context.Context) ([]domain.Unspent, error)
	LockingScript() ([]byte, error)
	PrivateKey() *btcec.PrivateKey
	// SubmitTransaction broadcasts the given serialized transaction and
	// returns its id.
	SubmitTransaction(ctx context.Context, txBin []byte) (string, error)
}
