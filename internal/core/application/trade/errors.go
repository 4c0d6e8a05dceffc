package trade

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTradePair is returned when neither or both sides of a trade
	// are the native currency.
	ErrInvalidTradePair = errors.New(
		"trade must convert the native currency into a token or vice versa",
	)
	// ErrMissingTradeAmount is returned when neither the demand nor the supply
	// amount is given.
	ErrMissingTradeAmount = errors.New("either demand or supply amount is required")
	// ErrInvalidTradeAmount ...
	ErrInvalidTradeAmount = errors.New("trade amount must be positive")
	// ErrInvalidFeeRate ...
	ErrInvalidFeeRate = errors.New("tx fee per byte must be a positive integer")
	// ErrNoLiquidity is returned when no pool is active for the traded token.
	ErrNoLiquidity = errors.New("no active pool for the traded token")
	// ErrPoolTokenMismatch is returned when an active pool does not trade the
	// token of the proposal.
	ErrPoolTokenMismatch = errors.New("pool does not trade the requested token")
	// ErrNullProposal ...
	ErrNullProposal = errors.New("trade proposal must not be null")
	// ErrNullWallet ...
	ErrNullWallet = errors.New("wallet must not be null")
	// ErrNullWalletKey ...
	ErrNullWalletKey = errors.New("wallet private key must not be null")
	// ErrEmptyTradeChain is returned when there are no transactions to
	// broadcast, or the oracle did not produce any.
	ErrEmptyTradeChain = errors.New("trade chain has no transactions")
)

// ChainVerificationError is returned when a transaction of a chain fails
// verification. None of the chain transactions must be broadcasted.
type ChainVerificationError struct {
	Index int
	Err   error
}

func (e *ChainVerificationError) Error() string {
	return fmt.Sprintf("trade tx %d failed verification: %s", e.Index, e.Err)
}

func (e *ChainVerificationError) Unwrap() error {
	return e.Err
}

// PartialBroadcastError is returned when the broadcast of a chain stops at
// FailedIndex. The transactions in Broadcasted are already published and
// must be reconciled by the caller.
type PartialBroadcastError struct {
	Broadcasted []string
	FailedIndex int
	Err         error
}

func (e *PartialBroadcastError) Error() string {
	return fmt.Sprintf(
		"failed to broadcast trade tx %d (%d already broadcasted): %s",
		e.FailedIndex, len(e.Broadcasted), e.Err,
	)
}

func (e *PartialBroadcastError) Unwrap() error {
	return e.Err
}
