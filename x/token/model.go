package token

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/orm"
)

func init() {
	migration.MustRegister(1, &TokenInfo{}, migration.NoModification)
	migration.MustRegister(1, &Holding{}, migration.NoModification)
}

var _ orm.CloneableData = (*TokenInfo)(nil)

func (t *TokenInfo) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	if n := len(t.Name); n < 3 || n > 32 {
		errs = errors.AppendField(errs, "Name",
			errors.Wrap(errors.ErrModel, "must be between 3 and 32 characters"))
	}
	errs = errors.AppendField(errs, "Issuer", t.Issuer.Validate())
	return errs
}

func (t *TokenInfo) Copy() orm.CloneableData {
	return &TokenInfo{
		Metadata: t.Metadata.Copy(),
		Name:     t.Name,
		Issuer:   t.Issuer.Clone(),
	}
}

// NewTokenInfoBucket returns a bucket for keeping track of registered
// tokens. Tokens are indexed by their ticker.
func NewTokenInfoBucket() orm.ModelBucket {
	b := orm.NewModelBucket("tokeninfo", &TokenInfo{})
	return migration.NewModelBucket("token", b)
}

var _ orm.CloneableData = (*Holding)(nil)

func (h *Holding) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", h.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", h.Owner.Validate())
	errs = errors.AppendField(errs, "Balance", h.Balance.Validate())
	if !h.Balance.IsNonNegative() {
		errs = errors.AppendField(errs, "Balance",
			errors.Wrap(errors.ErrAmount, "must be non negative"))
	}
	return errs
}

func (h *Holding) Copy() orm.CloneableData {
	return &Holding{
		Metadata: h.Metadata.Copy(),
		Owner:    h.Owner.Clone(),
		Balance:  *h.Balance.Clone(),
	}
}

// NewHoldingBucket returns a bucket for keeping track of token holdings.
// A holding is indexed by the owner address with the ticker appended.
func NewHoldingBucket() orm.ModelBucket {
	b := orm.NewModelBucket("holding", &Holding{})
	return migration.NewModelBucket("token", b)
}

// HoldingKey returns the database key of the holding of the given token
// for the given owner.
func HoldingKey(owner weave.Address, ticker string) []byte {
	key := make([]byte, 0, len(owner)+len(ticker))
	key = append(key, owner...)
	return append(key, ticker...)
}
