package domain

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Payout is an output of a trade transaction paid according to a rule.
type Payout struct {
	LockingScript []byte
	Amount        *big.Int
	Token         *TokenPayload
}

// TradeTx is a signed transaction of a trade chain.
type TradeTx struct {
	TxBin      []byte
	InputCoins []SpendableCoin
	Entries    []TradeEntry
	Payouts    []Payout
}

// TxID returns the hex id of the transaction, in the usual reversed order.
func (t TradeTx) TxID() string {
	return chainhash.DoubleHashH(t.TxBin).String()
}
