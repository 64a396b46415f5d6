package token

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
)

func init() {
	migration.MustRegister(1, &CreateMsg{}, migration.NoModification)
	migration.MustRegister(1, &OpenHoldingMsg{}, migration.NoModification)
	migration.MustRegister(1, &IssueMsg{}, migration.NoModification)
}

var _ weave.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return "token/create"
}

func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker",
			errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", m.Ticker))
	}
	if n := len(m.Name); n < 3 || n > 32 {
		errs = errors.AppendField(errs, "Name",
			errors.Wrap(errors.ErrInput, "must be between 3 and 32 characters"))
	}
	errs = errors.AppendField(errs, "Issuer", m.Issuer.Validate())
	return errs
}

var _ weave.Msg = (*OpenHoldingMsg)(nil)

func (OpenHoldingMsg) Path() string {
	return "token/open_holding"
}

func (m *OpenHoldingMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker",
			errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", m.Ticker))
	}
	return errs
}

var _ weave.Msg = (*IssueMsg)(nil)

func (IssueMsg) Path() string {
	return "token/issue"
}

func (m *IssueMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	if !m.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount",
			errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	return errs
}
