package token

import (
	"context"
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
)

func TestCreateHandler(t *testing.T) {
	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	RegisterRoutes(rt, auth, NewController())

	issuer := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	cases := map[string]struct {
		Conditions     []weave.Condition
		Msg            weave.Msg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
	}{
		"register a new token": {
			Conditions: []weave.Condition{issuer},
			Msg: &CreateMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Ticker:   "DOGE",
				Name:     "Doge Coin",
				Issuer:   issuer.Address(),
			},
		},
		"issuer must sign": {
			Conditions: []weave.Condition{stranger},
			Msg: &CreateMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Ticker:   "DOGE",
				Name:     "Doge Coin",
				Issuer:   issuer.Address(),
			},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"ticker can be registered only once": {
			Conditions: []weave.Condition{issuer},
			Msg: &CreateMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Ticker:   "TKR",
				Name:     "Second Token",
				Issuer:   issuer.Address(),
			},
			WantCheckErr:   errors.ErrDuplicate,
			WantDeliverErr: errors.ErrDuplicate,
		},
		"ticker must be a valid currency code": {
			Conditions: []weave.Condition{issuer},
			Msg: &CreateMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Ticker:   "doge",
				Name:     "Doge Coin",
				Issuer:   issuer.Address(),
			},
			WantCheckErr:   errors.ErrCurrency,
			WantDeliverErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "token")

			infos := NewTokenInfoBucket()
			_, err := infos.Put(db, []byte("TKR"), &TokenInfo{
				Metadata: &weave.Metadata{Schema: 1},
				Name:     "First Token",
				Issuer:   issuer.Address(),
			})
			assert.Nil(t, err)

			ctx := auth.SetConditions(context.Background(), tc.Conditions...)
			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err = rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)
		})
	}
}

func TestOpenHoldingHandler(t *testing.T) {
	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	RegisterRoutes(rt, auth, NewController())

	issuer := weavetest.NewCondition()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Msg            weave.Msg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
	}{
		"open a holding for any owner": {
			Msg: &OpenHoldingMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    bob,
				Ticker:   "TKR",
			},
		},
		"token must be registered": {
			Msg: &OpenHoldingMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    bob,
				Ticker:   "DOGE",
			},
			WantCheckErr:   errors.ErrNotFound,
			WantDeliverErr: errors.ErrNotFound,
		},
		"a holding can be opened only once": {
			Msg: &OpenHoldingMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    alice,
				Ticker:   "TKR",
			},
			WantCheckErr:   errors.ErrDuplicate,
			WantDeliverErr: errors.ErrDuplicate,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "token")

			infos := NewTokenInfoBucket()
			_, err := infos.Put(db, []byte("TKR"), &TokenInfo{
				Metadata: &weave.Metadata{Schema: 1},
				Name:     "First Token",
				Issuer:   issuer.Address(),
			})
			assert.Nil(t, err)
			holdings := NewHoldingBucket()
			_, err = holdings.Put(db, HoldingKey(alice, "TKR"), &Holding{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    alice,
				Balance:  coin.NewCoin(10, 0, "TKR"),
			})
			assert.Nil(t, err)

			ctx := auth.SetConditions(context.Background())
			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err = rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantDeliverErr == nil {
				msg := tc.Msg.(*OpenHoldingMsg)
				var h Holding
				assert.Nil(t, holdings.One(db, HoldingKey(msg.Owner, msg.Ticker), &h))
				if !h.Balance.IsZero() {
					t.Fatalf("a fresh holding must be empty, got %s", h.Balance)
				}
			}
		})
	}
}

func TestIssueHandler(t *testing.T) {
	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	RegisterRoutes(rt, auth, NewController())

	issuer := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Conditions     []weave.Condition
		Msg            weave.Msg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantBalance    coin.Coin
	}{
		"issue to an existing holding": {
			Conditions: []weave.Condition{issuer},
			Msg: &IssueMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: alice,
				Amount:      coin.NewCoin(4, 0, "TKR"),
			},
			WantBalance: coin.NewCoin(14, 0, "TKR"),
		},
		"only the token issuer can issue": {
			Conditions: []weave.Condition{stranger},
			Msg: &IssueMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: alice,
				Amount:      coin.NewCoin(4, 0, "TKR"),
			},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"destination must hold the token": {
			Conditions: []weave.Condition{issuer},
			Msg: &IssueMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: bob,
				Amount:      coin.NewCoin(4, 0, "TKR"),
			},
			WantDeliverErr: ErrNoHolding,
		},
		"token must be registered": {
			Conditions: []weave.Condition{issuer},
			Msg: &IssueMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: alice,
				Amount:      coin.NewCoin(4, 0, "DOGE"),
			},
			WantCheckErr:   errors.ErrNotFound,
			WantDeliverErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "token")

			infos := NewTokenInfoBucket()
			_, err := infos.Put(db, []byte("TKR"), &TokenInfo{
				Metadata: &weave.Metadata{Schema: 1},
				Name:     "First Token",
				Issuer:   issuer.Address(),
			})
			assert.Nil(t, err)
			holdings := NewHoldingBucket()
			_, err = holdings.Put(db, HoldingKey(alice, "TKR"), &Holding{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    alice,
				Balance:  coin.NewCoin(10, 0, "TKR"),
			})
			assert.Nil(t, err)

			ctx := auth.SetConditions(context.Background(), tc.Conditions...)
			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err = rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantDeliverErr == nil {
				msg := tc.Msg.(*IssueMsg)
				var h Holding
				assert.Nil(t, holdings.One(db, HoldingKey(msg.Destination, msg.Amount.Ticker), &h))
				if !h.Balance.Equals(tc.WantBalance) {
					t.Fatalf("want balance %s, got %s", tc.WantBalance, h.Balance)
				}
			}
		})
	}
}
