package batchsend

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/x"
)

const (
	initializeCost = 0
	setFeeCost     = 0
	withdrawCost   = 100

	// Batch processing cost is linear in the number of transfers.
	batchBaseCost        = 100
	batchPerTransferCost = 10
)

// RegisterRoutes registers handlers for batchsend message processing.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, cashctrl CashController, tokenctrl TokenController) {
	r = migration.SchemaMigratingRegistry("batchsend", r)

	r.Handle(&InitializeMsg{}, &initializeHandler{})
	r.Handle(&SetFeeMsg{}, &setFeeHandler{auth: auth})
	r.Handle(&BatchSendMsg{}, &batchSendHandler{auth: auth, ctrl: cashctrl})
	r.Handle(&BatchSendTokenMsg{}, &batchSendTokenHandler{auth: auth, cash: cashctrl, tokens: tokenctrl})
	r.Handle(&WithdrawMsg{}, &withdrawHandler{auth: auth, ctrl: cashctrl})
}

// initializeHandler creates the configuration. Anyone can initialize but
// only once, the first initialization wins and all further attempts fail.
type initializeHandler struct{}

var _ weave.Handler = (*initializeHandler)(nil)

func (h *initializeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: initializeCost}, nil
}

func (h *initializeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf := Configuration{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    msg.Admin,
		Fee:      coin.Coin{Ticker: msg.Ticker},
	}
	if err := gconf.Save(db, "batchsend", &conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	return &weave.DeliverResult{}, nil
}

func (h *initializeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	switch _, err := loadConf(db); {
	case err == nil:
		return nil, errors.Wrap(ErrInitialized, "configuration exists")
	case errors.ErrNotFound.Is(err):
		// First initialization.
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
	return &msg, nil
}

type setFeeHandler struct {
	auth x.Authenticator
}

var _ weave.Handler = (*setFeeHandler)(nil)

func (h *setFeeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: setFeeCost}, nil
}

func (h *setFeeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.Fee = msg.Fee
	if err := gconf.Save(db, "batchsend", conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	return &weave.DeliverResult{}, nil
}

func (h *setFeeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*SetFeeMsg, *Configuration, error) {
	var msg SetFeeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load configuration")
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner authentication required")
	}
	if msg.Fee.Ticker != conf.Fee.Ticker {
		return nil, nil, errors.Wrapf(errors.ErrCurrency, "%s is not the native currency", msg.Fee.Ticker)
	}
	return &msg, &conf, nil
}

// batchSendHandler processes native currency batches. All transfers and the
// fee are paid by the source, crediting a destination creates its wallet if
// needed. Thanks to the validation being done on an untouched state, either
// the whole batch is applied or no wallet is changed at all.
type batchSendHandler struct {
	auth x.Authenticator
	ctrl CashController
}

var _ weave.Handler = (*batchSendHandler)(nil)

func (h *batchSendHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	gas := batchBaseCost + int64(len(msg.Transfers))*batchPerTransferCost
	return &weave.CheckResult{GasAllocated: gas}, nil
}

func (h *batchSendHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	for i, t := range msg.Transfers {
		if t.Amount.IsZero() {
			continue
		}
		if err := h.ctrl.MoveCoins(db, msg.Source, t.Destination, *t.Amount); err != nil {
			return nil, errors.Wrapf(err, "transfer %d", i)
		}
	}
	if conf.Fee.IsPositive() {
		if err := h.ctrl.MoveCoins(db, msg.Source, FeeAccount(), conf.Fee); err != nil {
			return nil, errors.Wrap(err, "collect fee")
		}
	}
	return &weave.DeliverResult{}, nil
}

func (h *batchSendHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*BatchSendMsg, *Configuration, error) {
	var msg BatchSendMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load configuration")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source authentication required")
	}
	total, err := batchTotal(msg.Transfers)
	if err != nil {
		return nil, nil, err
	}
	if !total.IsZero() && total.Ticker != conf.Fee.Ticker {
		return nil, nil, errors.Wrapf(errors.ErrCurrency, "%s is not the native currency", total.Ticker)
	}
	required, err := total.Add(conf.Fee)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureFunds(h.ctrl, db, msg.Source, required); err != nil {
		return nil, nil, err
	}
	return &msg, &conf, nil
}

// ensureFunds fails unless the source wallet holds at least the required
// amount. A missing wallet is an empty wallet.
func ensureFunds(ctrl CashController, db weave.KVStore, src weave.Address, required coin.Coin) error {
	if required.IsZero() {
		return nil
	}
	balance, err := ctrl.Balance(db, src)
	switch {
	case err == nil:
		// All good.
	case errors.ErrNotFound.Is(err):
		balance = nil
	default:
		return errors.Wrap(err, "source balance")
	}
	if !balance.Contains(required) {
		return errors.Wrapf(ErrInsufficientFunds, "%s required", required)
	}
	return nil
}

// batchSendTokenHandler processes token batches. Tokens move between
// holdings that must already exist, while the fee is settled in native
// currency from the source wallet.
type batchSendTokenHandler struct {
	auth   x.Authenticator
	cash   CashController
	tokens TokenController
}

var _ weave.Handler = (*batchSendTokenHandler)(nil)

func (h *batchSendTokenHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	gas := batchBaseCost + int64(len(msg.Transfers))*batchPerTransferCost
	return &weave.CheckResult{GasAllocated: gas}, nil
}

func (h *batchSendTokenHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	for i, t := range msg.Transfers {
		if t.Amount.IsZero() {
			continue
		}
		if err := h.tokens.Move(db, msg.Source, t.Destination, *t.Amount); err != nil {
			return nil, errors.Wrapf(err, "transfer %d", i)
		}
	}
	if conf.Fee.IsPositive() {
		if err := h.cash.MoveCoins(db, msg.Source, FeeAccount(), conf.Fee); err != nil {
			return nil, errors.Wrap(err, "collect fee")
		}
	}
	return &weave.DeliverResult{}, nil
}

func (h *batchSendTokenHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*BatchSendTokenMsg, *Configuration, error) {
	var msg BatchSendTokenMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load configuration")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source authentication required")
	}
	total, err := batchTotal(msg.Transfers)
	if err != nil {
		return nil, nil, err
	}
	if !total.IsZero() {
		balance, err := h.tokens.Balance(db, msg.Source, total.Ticker)
		if err != nil {
			return nil, nil, errors.Wrap(err, "source holding")
		}
		if left, err := balance.Subtract(total); err != nil || !left.IsNonNegative() {
			return nil, nil, errors.Wrapf(ErrInsufficientFunds, "%s required", total)
		}
		// Every destination must hold the token already. Checking
		// this upfront keeps a failing batch free of side effects.
		for i, t := range msg.Transfers {
			if t.Amount.IsZero() {
				continue
			}
			if _, err := h.tokens.Balance(db, t.Destination, t.Amount.Ticker); err != nil {
				return nil, nil, errors.Wrapf(err, "transfer %d", i)
			}
		}
	}
	if err := ensureFunds(h.cash, db, msg.Source, conf.Fee); err != nil {
		return nil, nil, err
	}
	return &msg, &conf, nil
}

// withdrawHandler moves collected fees out of the fee account.
type withdrawHandler struct {
	auth x.Authenticator
	ctrl CashController
}

var _ weave.Handler = (*withdrawHandler)(nil)

func (h *withdrawHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h *withdrawHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, FeeAccount(), msg.Destination, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "withdraw")
	}
	return &weave.DeliverResult{}, nil
}

func (h *withdrawHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*WithdrawMsg, error) {
	var msg WithdrawMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner authentication required")
	}
	if msg.Amount.Ticker != conf.Fee.Ticker {
		return nil, errors.Wrapf(errors.ErrCurrency, "%s is not the native currency", msg.Amount.Ticker)
	}
	if err := ensureFunds(h.ctrl, db, FeeAccount(), msg.Amount); err != nil {
		return nil, err
	}
	return &msg, nil
}
