package batchsend

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
)

// CashController allows to manage native currency wallets without being
// bound to any particular implementation. It is implemented by
// x/cash.Controller.
type CashController interface {
	Balance(weave.KVStore, weave.Address) (coin.Coins, error)
	MoveCoins(weave.KVStore, weave.Address, weave.Address, coin.Coin) error
}

// TokenController allows to manage token holdings without being bound to
// any particular implementation. It is implemented by x/token.Controller.
// Unlike native wallets, holdings are not created on demand. Balance fails
// for an address without a holding of that token and Move fails unless
// both sides hold the token.
type TokenController interface {
	Balance(weave.KVStore, weave.Address, string) (coin.Coin, error)
	Move(weave.KVStore, weave.Address, weave.Address, coin.Coin) error
}

// batchTotal sums up all transfer amounts. It fails with an overflow error
// if the total cannot be represented and with a currency error if transfers
// mix tickers.
func batchTotal(transfers []*Transfer) (coin.Coin, error) {
	var total coin.Coin
	for i, t := range transfers {
		sum, err := total.Add(*t.Amount)
		if err != nil {
			return coin.Coin{}, errors.Wrapf(err, "transfer %d", i)
		}
		total = sum
	}
	return total, nil
}
