package wallet

import "errors"

var (
	// ErrInvalidPrivateKey ...
	ErrInvalidPrivateKey = errors.New(
		"private key must be either in WIF format or a 32-byte hex string",
	)
	// ErrNullPrivateKey ...
	ErrNullPrivateKey = errors.New("private key must not be null")
)
