package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOutpoint is returned when a pool or coin outpoint has a
	// malformed transaction id.
	ErrInvalidOutpoint = errors.New("outpoint txid must be a 32-byte hex string")
	// ErrPoolInvalidWithdrawPubKeyHash ...
	ErrPoolInvalidWithdrawPubKeyHash = errors.New(
		"pool withdraw public key hash must be 20 bytes long",
	)
	// ErrPoolInvalidTokenID is returned when the token of a pool is missing or
	// is the native currency.
	ErrPoolInvalidTokenID = errors.New("pool token id must be a non-native token")
	// ErrPoolNegativeReserve ...
	ErrPoolNegativeReserve = errors.New("pool reserves must be non-negative")
	// ErrInvalidTradeEntry is returned when an entry has missing or equal
	// token ids, or negative amounts.
	ErrInvalidTradeEntry = errors.New("trade entry is malformed")
	// ErrEmptyTradeEntries ...
	ErrEmptyTradeEntries = errors.New("trade must contain at least one entry")
	// ErrOpposedTradeEntries is returned when a trade contains entries
	// converting the same tokens in opposite directions.
	ErrOpposedTradeEntries = errors.New(
		"trade contains entries with opposed supply and demand tokens",
	)
	// ErrUndefinedWeightedRate is returned when the weighted average rate of a
	// pool set cannot be computed because the sum of token reserves is zero.
	ErrUndefinedWeightedRate = errors.New(
		"weighted rate is undefined for pools with zero token reserves",
	)
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnknownTokenRate is returned by the dust burn policy for a token that
	// is not traded by any entry.
	ErrUnknownTokenRate = errors.New("cannot derive native rate for token")
	// ErrInvalidFeeReserve ...
	ErrInvalidFeeReserve = errors.New("fee reserve coefficients must be non-negative")
)

// InsufficientFundsError tells which token of which wallet could not be
// covered by the available coins.
type InsufficientFundsError struct {
	Wallet  string
	TokenID string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"%s: wallet %s cannot cover balance of %s", ErrInsufficientFunds, e.Wallet, e.TokenID,
	)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
