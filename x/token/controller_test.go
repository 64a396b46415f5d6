package token

import (
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
)

func TestControllerMove(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	carol := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Src         weave.Address
		Dest        weave.Address
		Amount      coin.Coin
		WantErr     *errors.Error
		WantSrcBal  coin.Coin
		WantDestBal coin.Coin
	}{
		"move between two holdings": {
			Src:         alice,
			Dest:        bob,
			Amount:      coin.NewCoin(3, 0, "TKR"),
			WantSrcBal:  coin.NewCoin(7, 0, "TKR"),
			WantDestBal: coin.NewCoin(4, 0, "TKR"),
		},
		"move the full balance": {
			Src:         alice,
			Dest:        bob,
			Amount:      coin.NewCoin(10, 0, "TKR"),
			WantSrcBal:  coin.NewCoin(0, 0, "TKR"),
			WantDestBal: coin.NewCoin(11, 0, "TKR"),
		},
		"amount must be positive": {
			Src:     alice,
			Dest:    bob,
			Amount:  coin.NewCoin(0, 0, "TKR"),
			WantErr: errors.ErrAmount,
		},
		"source balance cannot go negative": {
			Src:     alice,
			Dest:    bob,
			Amount:  coin.NewCoin(11, 0, "TKR"),
			WantErr: errors.ErrAmount,
		},
		"destination must hold the token": {
			Src:     alice,
			Dest:    carol,
			Amount:  coin.NewCoin(3, 0, "TKR"),
			WantErr: ErrNoHolding,
		},
		"source must hold the token": {
			Src:     carol,
			Dest:    bob,
			Amount:  coin.NewCoin(3, 0, "TKR"),
			WantErr: ErrNoHolding,
		},
		"move to self changes nothing": {
			Src:        alice,
			Dest:       alice,
			Amount:     coin.NewCoin(3, 0, "TKR"),
			WantSrcBal: coin.NewCoin(10, 0, "TKR"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "token")

			holdings := NewHoldingBucket()
			_, err := holdings.Put(db, HoldingKey(alice, "TKR"), &Holding{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    alice,
				Balance:  coin.NewCoin(10, 0, "TKR"),
			})
			assert.Nil(t, err)
			_, err = holdings.Put(db, HoldingKey(bob, "TKR"), &Holding{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    bob,
				Balance:  coin.NewCoin(1, 0, "TKR"),
			})
			assert.Nil(t, err)

			ctrl := NewController()
			err = ctrl.Move(db, tc.Src, tc.Dest, tc.Amount)
			assert.IsErr(t, tc.WantErr, err)

			if tc.WantErr != nil {
				// A failed move must leave all balances untouched.
				assertBalance(t, ctrl, db, alice, coin.NewCoin(10, 0, "TKR"))
				assertBalance(t, ctrl, db, bob, coin.NewCoin(1, 0, "TKR"))
				return
			}
			assertBalance(t, ctrl, db, tc.Src, tc.WantSrcBal)
			if !tc.Dest.Equals(tc.Src) {
				assertBalance(t, ctrl, db, tc.Dest, tc.WantDestBal)
			}
		})
	}
}

func assertBalance(t *testing.T, ctrl Controller, db weave.KVStore, owner weave.Address, want coin.Coin) {
	t.Helper()
	got, err := ctrl.Balance(db, owner, want.Ticker)
	assert.Nil(t, err)
	if !got.Equals(want) {
		t.Fatalf("want %s balance %s, got %s", owner, want, got)
	}
}
