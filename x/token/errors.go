package token

import (
	"github.com/iov-one/weave/errors"
)

var (
	// ErrNoHolding is returned when an operation expects an existing
	// holding of a token and none was opened for the given address.
	ErrNoHolding = errors.Register(1110, "no holding")
)
