package batchsend

import (
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
)

func TestInitializeMsgValidate(t *testing.T) {
	admin := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Msg      InitializeMsg
		WantErrs map[string]*errors.Error
	}{
		"valid message": {
			Msg: InitializeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Admin:    admin,
				Ticker:   "IOV",
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"Admin":    nil,
				"Ticker":   nil,
			},
		},
		"missing metadata": {
			Msg: InitializeMsg{
				Admin:  admin,
				Ticker: "IOV",
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": errors.ErrMetadata,
			},
		},
		"invalid admin address": {
			Msg: InitializeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Admin:    []byte("x"),
				Ticker:   "IOV",
			},
			WantErrs: map[string]*errors.Error{
				"Admin": errors.ErrInput,
			},
		},
		"invalid ticker": {
			Msg: InitializeMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Admin:    admin,
				Ticker:   "io",
			},
			WantErrs: map[string]*errors.Error{
				"Ticker": errors.ErrCurrency,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Msg.Validate()
			for field, want := range tc.WantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestBatchSendMsgValidate(t *testing.T) {
	source := weavetest.NewCondition().Address()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Msg     BatchSendMsg
		WantErr *errors.Error
	}{
		"valid message": {
			Msg: BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source,
				Transfers: []*Transfer{
					{Destination: alice, Amount: coin.NewCoinp(1, 0, "IOV")},
					{Destination: bob, Amount: coin.NewCoinp(2, 0, "IOV")},
				},
				Accounts: []weave.Address{alice, bob},
			},
		},
		"zero amounts are valid": {
			Msg: BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source,
				Transfers: []*Transfer{
					{Destination: alice, Amount: coin.NewCoinp(0, 0, "IOV")},
				},
				Accounts: []weave.Address{alice},
			},
		},
		"transfers must not be empty": {
			Msg: BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source,
			},
			WantErr: errors.ErrEmpty,
		},
		"too many transfers": {
			Msg: BatchSendMsg{
				Metadata:  &weave.Metadata{Schema: 1},
				Source:    source,
				Transfers: repeatTransfers(alice, maxBatchSize+1),
				Accounts:  repeatAccounts(alice, maxBatchSize+1),
			},
			WantErr: errors.ErrMsg,
		},
		"accounts must match the transfers count": {
			Msg: BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source,
				Transfers: []*Transfer{
					{Destination: alice, Amount: coin.NewCoinp(1, 0, "IOV")},
					{Destination: bob, Amount: coin.NewCoinp(2, 0, "IOV")},
				},
				Accounts: []weave.Address{alice},
			},
			WantErr: ErrAccountCount,
		},
		"accounts must repeat the destinations in order": {
			Msg: BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source,
				Transfers: []*Transfer{
					{Destination: alice, Amount: coin.NewCoinp(1, 0, "IOV")},
					{Destination: bob, Amount: coin.NewCoinp(2, 0, "IOV")},
				},
				Accounts: []weave.Address{bob, alice},
			},
			WantErr: ErrAccountMismatch,
		},
		"an amount is required for every transfer": {
			Msg: BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source,
				Transfers: []*Transfer{
					{Destination: alice},
				},
				Accounts: []weave.Address{alice},
			},
			WantErr: errors.ErrEmpty,
		},
		"negative amounts are rejected": {
			Msg: BatchSendMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Source:   source,
				Transfers: []*Transfer{
					{Destination: alice, Amount: coin.NewCoinp(-1, 0, "IOV")},
				},
				Accounts: []weave.Address{alice},
			},
			WantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Msg.Validate()
			assert.IsErr(t, tc.WantErr, err)
		})
	}
}

func TestWithdrawMsgValidate(t *testing.T) {
	dest := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Msg     WithdrawMsg
		WantErr *errors.Error
	}{
		"valid message": {
			Msg: WithdrawMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: dest,
				Amount:      coin.NewCoin(1, 0, "IOV"),
			},
		},
		"amount must be positive": {
			Msg: WithdrawMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: dest,
				Amount:      coin.NewCoin(0, 0, "IOV"),
			},
			WantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Msg.Validate()
			assert.IsErr(t, tc.WantErr, err)
		})
	}
}

func repeatTransfers(dest weave.Address, n int) []*Transfer {
	transfers := make([]*Transfer, n)
	for i := range transfers {
		transfers[i] = &Transfer{Destination: dest, Amount: coin.NewCoinp(1, 0, "IOV")}
	}
	return transfers
}

func repeatAccounts(addr weave.Address, n int) []weave.Address {
	accounts := make([]weave.Address, n)
	for i := range accounts {
		accounts[i] = addr
	}
	return accounts
}
