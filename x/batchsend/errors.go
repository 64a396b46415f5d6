package batchsend

import (
	"github.com/iov-one/weave/errors"
)

var (
	// ErrInitialized is returned when trying to initialize the
	// configuration while one exists already.
	ErrInitialized = errors.Register(1100, "already initialized")

	// ErrAccountCount is returned when the number of bound destination
	// accounts does not match the number of transfers.
	ErrAccountCount = errors.Register(1101, "account count mismatch")

	// ErrAccountMismatch is returned when a bound destination account does
	// not match the destination declared by the transfer at the same
	// position.
	ErrAccountMismatch = errors.Register(1102, "account mismatch")

	// ErrInsufficientFunds is returned when the source balance does not
	// cover the sum of all transfers plus the fee.
	ErrInsufficientFunds = errors.Register(1103, "insufficient funds")
)
