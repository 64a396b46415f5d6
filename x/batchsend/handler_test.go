package batchsend

import (
	"context"
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
	"github.com/iov-one/weave/x/cash"

	"github.com/iov-one/batchpay/x/token"
)

func TestInitializeHandler(t *testing.T) {
	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	cashctrl := cash.NewController(cash.NewBucket())
	RegisterRoutes(rt, auth, cashctrl, token.NewController())

	admin := weavetest.NewCondition()

	cases := map[string]struct {
		Initialized    bool
		Msg            weave.Msg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
	}{
		"the first initialization wins": {
			Msg: &InitializeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Admin:    admin.Address(),
				Ticker:   "IOV",
			},
		},
		"initialization cannot be repeated": {
			Initialized: true,
			Msg: &InitializeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Admin:    admin.Address(),
				Ticker:   "IOV",
			},
			WantCheckErr:   ErrInitialized,
			WantDeliverErr: ErrInitialized,
		},
		"ticker must be a valid currency code": {
			Msg: &InitializeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Admin:    admin.Address(),
				Ticker:   "iov",
			},
			WantCheckErr:   errors.ErrCurrency,
			WantDeliverErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "batchsend")

			if tc.Initialized {
				saveConf(t, db, admin.Address(), coin.NewCoin(0, 0, "IOV"))
			}

			// No signature is required to initialize.
			ctx := auth.SetConditions(context.Background())
			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantDeliverErr == nil {
				conf, err := loadConf(db)
				assert.Nil(t, err)
				assert.Equal(t, admin.Address(), conf.Owner)
				if !conf.Fee.IsZero() {
					t.Fatalf("the initial fee must be zero, got %s", conf.Fee)
				}
				assert.Equal(t, "IOV", conf.Fee.Ticker)
			}
		})
	}
}

func TestSetFeeHandler(t *testing.T) {
	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	cashctrl := cash.NewController(cash.NewBucket())
	RegisterRoutes(rt, auth, cashctrl, token.NewController())

	owner := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	cases := map[string]struct {
		Conditions     []weave.Condition
		Msg            weave.Msg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantFee        coin.Coin
	}{
		"owner can change the fee": {
			Conditions: []weave.Condition{owner},
			Msg: &SetFeeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Fee:      coin.NewCoin(0, 5000000, "IOV"),
			},
			WantFee: coin.NewCoin(0, 5000000, "IOV"),
		},
		"fee can be set back to zero": {
			Conditions: []weave.Condition{owner},
			Msg: &SetFeeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Fee:      coin.NewCoin(0, 0, "IOV"),
			},
			WantFee: coin.NewCoin(0, 0, "IOV"),
		},
		"only the owner can change the fee": {
			Conditions: []weave.Condition{stranger},
			Msg: &SetFeeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Fee:      coin.NewCoin(0, 5000000, "IOV"),
			},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"fee must use the native currency": {
			Conditions: []weave.Condition{owner},
			Msg: &SetFeeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Fee:      coin.NewCoin(0, 5000000, "DOGE"),
			},
			WantCheckErr:   errors.ErrCurrency,
			WantDeliverErr: errors.ErrCurrency,
		},
		"fee must be non negative": {
			Conditions: []weave.Condition{owner},
			Msg: &SetFeeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Fee:      coin.NewCoin(-1, 0, "IOV"),
			},
			WantCheckErr:   errors.ErrAmount,
			WantDeliverErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "batchsend")
			saveConf(t, db, owner.Address(), coin.NewCoin(0, 1, "IOV"))

			ctx := auth.SetConditions(context.Background(), tc.Conditions...)
			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantDeliverErr == nil {
				conf, err := loadConf(db)
				assert.Nil(t, err)
				if !conf.Fee.Equals(tc.WantFee) {
					t.Fatalf("want fee %s, got %s", tc.WantFee, conf.Fee)
				}
			}
		})
	}
}

func TestBatchSendHandler(t *testing.T) {
	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	cashctrl := cash.NewController(cash.NewBucket())
	RegisterRoutes(rt, auth, cashctrl, token.NewController())

	owner := weavetest.NewCondition()
	source := weavetest.NewCondition()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Conditions     []weave.Condition
		Fee            coin.Coin
		SourceFunds    coin.Coin
		Msg            *BatchSendMsg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		// WantBalances is checked only after a successful delivery.
		// Failure cases assert that no balance was changed at all.
		WantBalances map[string]coin.Coin
	}{
		"transfers and the fee are settled in one call": {
			Conditions:  []weave.Condition{source},
			Fee:         coin.NewCoin(0, 5000000, "IOV"),
			SourceFunds: coin.NewCoin(100, 0, "IOV"),
			Msg: batchMsg(source.Address(),
				transfer(alice, coin.NewCoin(10, 0, "IOV")),
				transfer(bob, coin.NewCoin(20, 0, "IOV")),
			),
			WantBalances: map[string]coin.Coin{
				string(source.Address()): coin.NewCoin(69, 995000000, "IOV"),
				string(alice):            coin.NewCoin(10, 0, "IOV"),
				string(bob):              coin.NewCoin(20, 0, "IOV"),
				string(FeeAccount()):     coin.NewCoin(0, 5000000, "IOV"),
			},
		},
		"a destination can repeat and is credited each time": {
			Conditions:  []weave.Condition{source},
			Fee:         coin.NewCoin(0, 0, "IOV"),
			SourceFunds: coin.NewCoin(100, 0, "IOV"),
			Msg: batchMsg(source.Address(),
				transfer(alice, coin.NewCoin(5, 0, "IOV")),
				transfer(alice, coin.NewCoin(7, 0, "IOV")),
			),
			WantBalances: map[string]coin.Coin{
				string(source.Address()): coin.NewCoin(88, 0, "IOV"),
				string(alice):            coin.NewCoin(12, 0, "IOV"),
			},
		},
		"zero amounts are allowed and move nothing": {
			Conditions:  []weave.Condition{source},
			Fee:         coin.NewCoin(0, 0, "IOV"),
			SourceFunds: coin.NewCoin(100, 0, "IOV"),
			Msg: batchMsg(source.Address(),
				transfer(alice, coin.NewCoin(0, 0, "IOV")),
				transfer(bob, coin.NewCoin(5, 0, "IOV")),
			),
			WantBalances: map[string]coin.Coin{
				string(source.Address()): coin.NewCoin(95, 0, "IOV"),
				string(bob):              coin.NewCoin(5, 0, "IOV"),
			},
		},
		"source must sign": {
			Conditions:  nil,
			Fee:         coin.NewCoin(0, 0, "IOV"),
			SourceFunds: coin.NewCoin(100, 0, "IOV"),
			Msg: batchMsg(source.Address(),
				transfer(alice, coin.NewCoin(10, 0, "IOV")),
			),
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"an empty batch is rejected": {
			Conditions:  []weave.Condition{source},
			Fee:         coin.NewCoin(0, 0, "IOV"),
			SourceFunds: coin.NewCoin(100, 0, "IOV"),
			Msg: &BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source.Address(),
			},
			WantCheckErr:   errors.ErrEmpty,
			WantDeliverErr: errors.ErrEmpty,
		},
		"accounts must match the transfers count": {
			Conditions:  []weave.Condition{source},
			Fee:         coin.NewCoin(0, 0, "IOV"),
			SourceFunds: coin.NewCoin(100, 0, "IOV"),
			Msg: &BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source.Address(),
				Transfers: []*Transfer{
					{Destination: alice, Amount: coin.NewCoinp(10, 0, "IOV")},
					{Destination: bob, Amount: coin.NewCoinp(20, 0, "IOV")},
				},
				Accounts: []weave.Address{alice},
			},
			WantCheckErr:   ErrAccountCount,
			WantDeliverErr: ErrAccountCount,
		},
		"accounts must repeat the transfer destinations": {
			Conditions:  []weave.Condition{source},
			Fee:         coin.NewCoin(0, 0, "IOV"),
			SourceFunds: coin.NewCoin(100, 0, "IOV"),
			Msg: &BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source.Address(),
				Transfers: []*Transfer{
					{Destination: alice, Amount: coin.NewCoinp(10, 0, "IOV")},
					{Destination: bob, Amount: coin.NewCoinp(20, 0, "IOV")},
				},
				Accounts: []weave.Address{alice, alice},
			},
			WantCheckErr:   ErrAccountMismatch,
			WantDeliverErr: ErrAccountMismatch,
		},
		"the source must afford all transfers plus the fee": {
			Conditions:  []weave.Condition{source},
			Fee:         coin.NewCoin(0, 5000000, "IOV"),
			SourceFunds: coin.NewCoin(10, 0, "IOV"),
			Msg: batchMsg(source.Address(),
				transfer(alice, coin.NewCoin(10, 0, "IOV")),
			),
			WantCheckErr:   ErrInsufficientFunds,
			WantDeliverErr: ErrInsufficientFunds,
		},
		"transfers must use the native currency": {
			Conditions:  []weave.Condition{source},
			Fee:         coin.NewCoin(0, 0, "IOV"),
			SourceFunds: coin.NewCoin(100, 0, "IOV"),
			Msg: batchMsg(source.Address(),
				transfer(alice, coin.NewCoin(10, 0, "DOGE")),
			),
			WantCheckErr:   errors.ErrCurrency,
			WantDeliverErr: errors.ErrCurrency,
		},
		"the batch total must not overflow": {
			Conditions:  []weave.Condition{source},
			Fee:         coin.NewCoin(0, 0, "IOV"),
			SourceFunds: coin.NewCoin(100, 0, "IOV"),
			Msg: batchMsg(source.Address(),
				transfer(alice, coin.NewCoin(coin.MaxInt, 0, "IOV")),
				transfer(bob, coin.NewCoin(coin.MaxInt, 0, "IOV")),
			),
			WantCheckErr:   errors.ErrOverflow,
			WantDeliverErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "batchsend", "cash")
			saveConf(t, db, owner.Address(), tc.Fee)
			assert.Nil(t, cashctrl.CoinMint(db, source.Address(), tc.SourceFunds))

			ctx := auth.SetConditions(context.Background(), tc.Conditions...)
			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantDeliverErr != nil {
				// A failed batch must not change any wallet.
				assertWallet(t, cashctrl, db, source.Address(), tc.SourceFunds)
				assertNoWallet(t, cashctrl, db, alice)
				assertNoWallet(t, cashctrl, db, bob)
				assertNoWallet(t, cashctrl, db, FeeAccount())
				return
			}
			for addr, want := range tc.WantBalances {
				assertWallet(t, cashctrl, db, weave.Address(addr), want)
			}
		})
	}
}

func TestBatchSendTokenHandler(t *testing.T) {
	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	cashctrl := cash.NewController(cash.NewBucket())
	tokenctrl := token.NewController()
	RegisterRoutes(rt, auth, cashctrl, tokenctrl)

	owner := weavetest.NewCondition()
	source := weavetest.NewCondition()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	carol := weavetest.NewCondition().Address()

	const fee = 5000000

	cases := map[string]struct {
		Conditions     []weave.Condition
		SourceFunds    coin.Coin
		Msg            *BatchSendTokenMsg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantHoldings   map[string]coin.Coin
	}{
		"tokens move between holdings and the fee is paid in native currency": {
			Conditions:  []weave.Condition{source},
			SourceFunds: coin.NewCoin(1, 0, "IOV"),
			Msg: tokenBatchMsg(source.Address(),
				transfer(alice, coin.NewCoin(10, 0, "TKR")),
				transfer(bob, coin.NewCoin(20, 0, "TKR")),
			),
			WantHoldings: map[string]coin.Coin{
				string(source.Address()): coin.NewCoin(70, 0, "TKR"),
				string(alice):            coin.NewCoin(10, 0, "TKR"),
				string(bob):              coin.NewCoin(20, 0, "TKR"),
			},
		},
		"source must sign": {
			Conditions:  nil,
			SourceFunds: coin.NewCoin(1, 0, "IOV"),
			Msg: tokenBatchMsg(source.Address(),
				transfer(alice, coin.NewCoin(10, 0, "TKR")),
			),
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"every destination must hold the token": {
			Conditions:  []weave.Condition{source},
			SourceFunds: coin.NewCoin(1, 0, "IOV"),
			Msg: tokenBatchMsg(source.Address(),
				transfer(alice, coin.NewCoin(10, 0, "TKR")),
				transfer(carol, coin.NewCoin(20, 0, "TKR")),
			),
			WantCheckErr:   token.ErrNoHolding,
			WantDeliverErr: token.ErrNoHolding,
		},
		"the source holding must afford the batch total": {
			Conditions:  []weave.Condition{source},
			SourceFunds: coin.NewCoin(1, 0, "IOV"),
			Msg: tokenBatchMsg(source.Address(),
				transfer(alice, coin.NewCoin(90, 0, "TKR")),
				transfer(bob, coin.NewCoin(20, 0, "TKR")),
			),
			WantCheckErr:   ErrInsufficientFunds,
			WantDeliverErr: ErrInsufficientFunds,
		},
		"the source wallet must afford the fee": {
			Conditions:  []weave.Condition{source},
			SourceFunds: coin.NewCoin(0, fee-1, "IOV"),
			Msg: tokenBatchMsg(source.Address(),
				transfer(alice, coin.NewCoin(10, 0, "TKR")),
			),
			WantCheckErr:   ErrInsufficientFunds,
			WantDeliverErr: ErrInsufficientFunds,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "batchsend", "cash", "token")
			saveConf(t, db, owner.Address(), coin.NewCoin(0, fee, "IOV"))
			assert.Nil(t, cashctrl.CoinMint(db, source.Address(), tc.SourceFunds))

			holdings := token.NewHoldingBucket()
			seed := map[string]coin.Coin{
				string(source.Address()): coin.NewCoin(100, 0, "TKR"),
				string(alice):            coin.NewCoin(0, 0, "TKR"),
				string(bob):              coin.NewCoin(0, 0, "TKR"),
			}
			for addr, balance := range seed {
				ownerAddr := weave.Address(addr)
				_, err := holdings.Put(db, token.HoldingKey(ownerAddr, "TKR"), &token.Holding{
					Metadata: &weave.Metadata{Schema: 1},
					Owner:    ownerAddr,
					Balance:  balance,
				})
				assert.Nil(t, err)
			}

			ctx := auth.SetConditions(context.Background(), tc.Conditions...)
			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantDeliverErr != nil {
				// A failed batch must change no holding and collect no fee.
				for addr, want := range seed {
					assertHolding(t, tokenctrl, db, weave.Address(addr), want)
				}
				assertWallet(t, cashctrl, db, source.Address(), tc.SourceFunds)
				assertNoWallet(t, cashctrl, db, FeeAccount())
				return
			}
			for addr, want := range tc.WantHoldings {
				assertHolding(t, tokenctrl, db, weave.Address(addr), want)
			}
			assertWallet(t, cashctrl, db, FeeAccount(), coin.NewCoin(0, fee, "IOV"))
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	cashctrl := cash.NewController(cash.NewBucket())
	RegisterRoutes(rt, auth, cashctrl, token.NewController())

	owner := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	dest := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Conditions     []weave.Condition
		Collected      coin.Coin
		Msg            weave.Msg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantDestFunds  coin.Coin
	}{
		"owner withdraws collected fees": {
			Conditions: []weave.Condition{owner},
			Collected:  coin.NewCoin(3, 0, "IOV"),
			Msg: &WithdrawMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: dest,
				Amount:      coin.NewCoin(2, 0, "IOV"),
			},
			WantDestFunds: coin.NewCoin(2, 0, "IOV"),
		},
		"only the owner can withdraw": {
			Conditions: []weave.Condition{stranger},
			Collected:  coin.NewCoin(3, 0, "IOV"),
			Msg: &WithdrawMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: dest,
				Amount:      coin.NewCoin(2, 0, "IOV"),
			},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"cannot withdraw more than collected": {
			Conditions: []weave.Condition{owner},
			Collected:  coin.NewCoin(1, 0, "IOV"),
			Msg: &WithdrawMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: dest,
				Amount:      coin.NewCoin(2, 0, "IOV"),
			},
			WantCheckErr:   ErrInsufficientFunds,
			WantDeliverErr: ErrInsufficientFunds,
		},
		"withdraw must use the native currency": {
			Conditions: []weave.Condition{owner},
			Collected:  coin.NewCoin(3, 0, "IOV"),
			Msg: &WithdrawMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: dest,
				Amount:      coin.NewCoin(2, 0, "DOGE"),
			},
			WantCheckErr:   errors.ErrCurrency,
			WantDeliverErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "batchsend", "cash")
			saveConf(t, db, owner.Address(), coin.NewCoin(0, 5000000, "IOV"))
			assert.Nil(t, cashctrl.CoinMint(db, FeeAccount(), tc.Collected))

			ctx := auth.SetConditions(context.Background(), tc.Conditions...)
			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantDeliverErr == nil {
				assertWallet(t, cashctrl, db, dest, tc.WantDestFunds)
			} else {
				assertWallet(t, cashctrl, db, FeeAccount(), tc.Collected)
			}
		})
	}
}

func saveConf(t testing.TB, db weave.KVStore, owner weave.Address, fee coin.Coin) {
	t.Helper()
	conf := Configuration{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    owner,
		Fee:      fee,
	}
	if err := gconf.Save(db, "batchsend", &conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
}

func transfer(dest weave.Address, amount coin.Coin) *Transfer {
	return &Transfer{Destination: dest, Amount: &amount}
}

func batchMsg(source weave.Address, transfers ...*Transfer) *BatchSendMsg {
	msg := BatchSendMsg{
		Metadata:  &weave.Metadata{Schema: 1},
		Source:    source,
		Transfers: transfers,
	}
	for _, t := range transfers {
		msg.Accounts = append(msg.Accounts, t.Destination)
	}
	return &msg
}

func tokenBatchMsg(source weave.Address, transfers ...*Transfer) *BatchSendTokenMsg {
	msg := BatchSendTokenMsg{
		Metadata:  &weave.Metadata{Schema: 1},
		Source:    source,
		Transfers: transfers,
	}
	for _, t := range transfers {
		msg.Accounts = append(msg.Accounts, t.Destination)
	}
	return &msg
}

func assertWallet(t testing.TB, ctrl CashController, db weave.KVStore, addr weave.Address, want coin.Coin) {
	t.Helper()
	balance, err := ctrl.Balance(db, addr)
	if want.IsZero() && errors.ErrNotFound.Is(err) {
		return
	}
	assert.Nil(t, err)
	wantCoins := coin.Coins{&want}
	if !balance.Equals(wantCoins) {
		t.Fatalf("want %s wallet %s, got %s", addr, wantCoins, balance)
	}
}

func assertNoWallet(t testing.TB, ctrl CashController, db weave.KVStore, addr weave.Address) {
	t.Helper()
	balance, err := ctrl.Balance(db, addr)
	if errors.ErrNotFound.Is(err) {
		return
	}
	assert.Nil(t, err)
	if len(balance) != 0 {
		t.Fatalf("wallet %s was not expected, got %s", addr, balance)
	}
}

func assertHolding(t testing.TB, ctrl TokenController, db weave.KVStore, owner weave.Address, want coin.Coin) {
	t.Helper()
	got, err := ctrl.Balance(db, owner, want.Ticker)
	assert.Nil(t, err)
	if !got.Equals(want) {
		t.Fatalf("want %s holding %s, got %s", owner, want, got)
	}
}
