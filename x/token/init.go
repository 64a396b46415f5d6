package token

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial token and holding info from genesis and
// save it to the database.
func (*Initializer) FromGenesis(opts weave.Options, params weave.GenesisParams, kv weave.KVStore) error {
	var tokens []struct {
		Ticker string        `json:"ticker"`
		Name   string        `json:"name"`
		Issuer weave.Address `json:"issuer"`
	}
	if err := opts.ReadOptions("token", &tokens); err != nil {
		return errors.Wrap(err, "cannot load tokens")
	}
	infos := NewTokenInfoBucket()
	for i, t := range tokens {
		info := TokenInfo{
			Metadata: &weave.Metadata{Schema: 1},
			Name:     t.Name,
			Issuer:   t.Issuer,
		}
		if !coin.IsCC(t.Ticker) {
			return errors.Wrapf(errors.ErrCurrency, "token #%d ticker is invalid", i)
		}
		if err := info.Validate(); err != nil {
			return errors.Wrapf(err, "token #%d is invalid", i)
		}
		if _, err := infos.Put(kv, []byte(t.Ticker), &info); err != nil {
			return errors.Wrapf(err, "cannot store #%d token", i)
		}
	}

	var accounts []struct {
		Owner   weave.Address `json:"owner"`
		Balance coin.Coin     `json:"balance"`
	}
	if err := opts.ReadOptions("holding", &accounts); err != nil {
		return errors.Wrap(err, "cannot load holdings")
	}
	holdings := NewHoldingBucket()
	for i, a := range accounts {
		holding := Holding{
			Metadata: &weave.Metadata{Schema: 1},
			Owner:    a.Owner,
			Balance:  a.Balance,
		}
		if err := holding.Validate(); err != nil {
			return errors.Wrapf(err, "holding #%d is invalid", i)
		}
		if _, err := holdings.Put(kv, HoldingKey(a.Owner, a.Balance.Ticker), &holding); err != nil {
			return errors.Wrapf(err, "cannot store #%d holding", i)
		}
	}
	return nil
}
