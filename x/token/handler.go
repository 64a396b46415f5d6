package token

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/orm"
	"github.com/iov-one/weave/x"
)

const (
	createCost      = 0
	openHoldingCost = 100
	issueCost       = 100
)

// RegisterQuery registers token buckets for queries.
func RegisterQuery(qr weave.QueryRouter) {
	NewTokenInfoBucket().Register("tokens", qr)
	NewHoldingBucket().Register("holdings", qr)
}

// RegisterRoutes registers handlers for token message processing.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r = migration.SchemaMigratingRegistry("token", r)
	infos := NewTokenInfoBucket()

	r.Handle(&CreateMsg{}, &createHandler{auth: auth, infos: infos})
	r.Handle(&OpenHoldingMsg{}, &openHoldingHandler{infos: infos, holdings: NewHoldingBucket()})
	r.Handle(&IssueMsg{}, &issueHandler{auth: auth, infos: infos, ctrl: ctrl})
}

type createHandler struct {
	auth  x.Authenticator
	infos orm.ModelBucket
}

var _ weave.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createCost}, nil
}

func (h *createHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	info := TokenInfo{
		Metadata: &weave.Metadata{Schema: 1},
		Name:     msg.Name,
		Issuer:   msg.Issuer,
	}
	if _, err := h.infos.Put(db, []byte(msg.Ticker), &info); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}
	return &weave.DeliverResult{Data: []byte(msg.Ticker)}, nil
}

func (h *createHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "issuer authentication required")
	}
	var info TokenInfo
	switch err := h.infos.One(db, []byte(msg.Ticker), &info); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "ticker %s", msg.Ticker)
	case errors.ErrNotFound.Is(err):
		// Ticker is free.
	default:
		return nil, errors.Wrap(err, "cannot load token")
	}
	return &msg, nil
}

// openHoldingHandler creates empty holdings. There is no authentication,
// anyone can open a holding for any owner, the same way anyone can credit
// a native wallet of any address.
type openHoldingHandler struct {
	infos    orm.ModelBucket
	holdings orm.ModelBucket
}

var _ weave.Handler = (*openHoldingHandler)(nil)

func (h *openHoldingHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: openHoldingCost}, nil
}

func (h *openHoldingHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	holding := Holding{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    msg.Owner,
		Balance:  coin.Coin{Ticker: msg.Ticker},
	}
	if _, err := h.holdings.Put(db, HoldingKey(msg.Owner, msg.Ticker), &holding); err != nil {
		return nil, errors.Wrap(err, "cannot store holding")
	}
	return &weave.DeliverResult{}, nil
}

func (h *openHoldingHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*OpenHoldingMsg, error) {
	var msg OpenHoldingMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	var info TokenInfo
	if err := h.infos.One(db, []byte(msg.Ticker), &info); err != nil {
		return nil, errors.Wrapf(err, "token %s", msg.Ticker)
	}
	var existing Holding
	switch err := h.holdings.One(db, HoldingKey(msg.Owner, msg.Ticker), &existing); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "%s holding of %s", msg.Ticker, msg.Owner)
	case errors.ErrNotFound.Is(err):
		// No holding yet.
	default:
		return nil, errors.Wrap(err, "cannot load holding")
	}
	return &msg, nil
}

type issueHandler struct {
	auth  x.Authenticator
	infos orm.ModelBucket
	ctrl  Controller
}

var _ weave.Handler = (*issueHandler)(nil)

func (h *issueHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: issueCost}, nil
}

func (h *issueHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Issue(db, msg.Destination, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "issue")
	}
	return &weave.DeliverResult{}, nil
}

func (h *issueHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*IssueMsg, error) {
	var msg IssueMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	var info TokenInfo
	if err := h.infos.One(db, []byte(msg.Amount.Ticker), &info); err != nil {
		return nil, errors.Wrapf(err, "token %s", msg.Amount.Ticker)
	}
	if !h.auth.HasAddress(ctx, info.Issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "issuer authentication required")
	}
	return &msg, nil
}
