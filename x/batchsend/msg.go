package batchsend

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
)

func init() {
	migration.MustRegister(1, &InitializeMsg{}, migration.NoModification)
	migration.MustRegister(1, &SetFeeMsg{}, migration.NoModification)
	migration.MustRegister(1, &BatchSendMsg{}, migration.NoModification)
	migration.MustRegister(1, &BatchSendTokenMsg{}, migration.NoModification)
	migration.MustRegister(1, &WithdrawMsg{}, migration.NoModification)
}

// maxBatchSize limits how many transfers a single batch message can carry.
// Processing is linear in the batch size, so an unbound batch would let a
// single transaction burn an arbitrary amount of block processing time.
const maxBatchSize = 200

var _ weave.Msg = (*InitializeMsg)(nil)

func (InitializeMsg) Path() string {
	return "batchsend/initialize"
}

func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Admin", m.Admin.Validate())
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker",
			errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", m.Ticker))
	}
	return errs
}

var _ weave.Msg = (*SetFeeMsg)(nil)

func (SetFeeMsg) Path() string {
	return "batchsend/set_fee"
}

func (m *SetFeeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Fee", m.Fee.Validate())
	if !m.Fee.IsNonNegative() {
		errs = errors.AppendField(errs, "Fee",
			errors.Wrap(errors.ErrAmount, "must be non negative"))
	}
	return errs
}

var _ weave.Msg = (*BatchSendMsg)(nil)

func (BatchSendMsg) Path() string {
	return "batchsend/batch_send"
}

func (m *BatchSendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	return validateBatch(errs, m.Transfers, m.Accounts)
}

var _ weave.Msg = (*BatchSendTokenMsg)(nil)

func (BatchSendTokenMsg) Path() string {
	return "batchsend/batch_send_token"
}

func (m *BatchSendTokenMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	return validateBatch(errs, m.Transfers, m.Accounts)
}

var _ weave.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return "batchsend/withdraw"
}

func (m *WithdrawMsg) Validate() error {
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

// validateBatch ensures the stateless batch invariants. Every transfer must
// carry a valid destination and a non negative amount, and the accounts list
// must repeat the transfer destinations in the same order. Amount currency
// consistency is a stateful check and is left to the handler.
func validateBatch(errs error, transfers []*Transfer, accounts []weave.Address) error {
	if len(transfers) == 0 {
		return errors.AppendField(errs, "Transfers",
			errors.Wrap(errors.ErrEmpty, "empty batch"))
	}
	if len(transfers) > maxBatchSize {
		return errors.AppendField(errs, "Transfers",
			errors.Wrapf(errors.ErrMsg, "batch of %d exceeds the %d transfers limit", len(transfers), maxBatchSize))
	}
	if len(accounts) != len(transfers) {
		return errors.AppendField(errs, "Accounts",
			errors.Wrapf(ErrAccountCount, "%d accounts for %d transfers", len(accounts), len(transfers)))
	}
	for i, t := range transfers {
		if t == nil {
			errs = errors.AppendField(errs, "Transfers", errors.ErrEmpty)
			continue
		}
		errs = errors.AppendField(errs, "Transfers.Destination", t.Destination.Validate())
		if t.Amount == nil {
			errs = errors.AppendField(errs, "Transfers.Amount", errors.ErrEmpty)
		} else {
			errs = errors.AppendField(errs, "Transfers.Amount", t.Amount.Validate())
			if !t.Amount.IsNonNegative() {
				errs = errors.AppendField(errs, "Transfers.Amount",
					errors.Wrap(errors.ErrAmount, "must be non negative"))
			}
		}
		errs = errors.AppendField(errs, "Accounts", accounts[i].Validate())
		if !accounts[i].Equals(t.Destination) {
			errs = errors.AppendField(errs, "Accounts",
				errors.Wrapf(ErrAccountMismatch, "account %d does not match its transfer destination", i))
		}
	}
	return errs
}
