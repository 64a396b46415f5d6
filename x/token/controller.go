package token

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/orm"
)

// Controller implements token transfer logic on top of the holding bucket.
// It is safe to share a single instance, the controller itself is
// stateless.
type Controller struct {
	holdings orm.ModelBucket
}

func NewController() Controller {
	return Controller{holdings: NewHoldingBucket()}
}

// Balance returns the funds held by the given address. It fails with
// ErrNoHolding if no holding of that token was opened for the address.
func (c Controller) Balance(db weave.KVStore, owner weave.Address, ticker string) (coin.Coin, error) {
	h, err := c.holding(db, owner, ticker)
	if err != nil {
		return coin.Coin{}, err
	}
	return h.Balance, nil
}

// Move transfers tokens between two existing holdings. The amount must be
// positive and both sides must hold the token. The destination balance is
// computed before any write, a failing move leaves the store untouched.
func (c Controller) Move(db weave.KVStore, src weave.Address, dest weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	from, err := c.holding(db, src, amount.Ticker)
	if err != nil {
		return err
	}
	fromBalance, err := from.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	if !fromBalance.IsNonNegative() {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: only %s available", from.Balance)
	}
	// A transfer within a single holding changes nothing.
	if src.Equals(dest) {
		return nil
	}
	to, err := c.holding(db, dest, amount.Ticker)
	if err != nil {
		return err
	}
	toBalance, err := to.Balance.Add(amount)
	if err != nil {
		return err
	}

	from.Balance = fromBalance
	if _, err := c.holdings.Put(db, HoldingKey(src, amount.Ticker), from); err != nil {
		return errors.Wrap(err, "cannot update source holding")
	}
	to.Balance = toBalance
	if _, err := c.holdings.Put(db, HoldingKey(dest, amount.Ticker), to); err != nil {
		return errors.Wrap(err, "cannot update destination holding")
	}
	return nil
}

// Issue creates new units of a token on an existing holding.
func (c Controller) Issue(db weave.KVStore, dest weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	h, err := c.holding(db, dest, amount.Ticker)
	if err != nil {
		return err
	}
	balance, err := h.Balance.Add(amount)
	if err != nil {
		return err
	}
	h.Balance = balance
	if _, err := c.holdings.Put(db, HoldingKey(dest, amount.Ticker), h); err != nil {
		return errors.Wrap(err, "cannot update holding")
	}
	return nil
}

func (c Controller) holding(db weave.KVStore, owner weave.Address, ticker string) (*Holding, error) {
	var h Holding
	switch err := c.holdings.One(db, HoldingKey(owner, ticker), &h); {
	case err == nil:
		return &h, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNoHolding, "%s holding of %s", ticker, owner)
	default:
		return nil, errors.Wrap(err, "cannot load holding")
	}
}
