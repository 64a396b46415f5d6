package batchsend

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
)

func init() {
	migration.MustRegister(1, &Configuration{}, migration.NoModification)
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	errs = errors.AppendField(errs, "Fee", c.Fee.Validate())
	if !c.Fee.IsNonNegative() {
		errs = errors.AppendField(errs, "Fee",
			errors.Wrap(errors.ErrAmount, "must be non negative"))
	}
	return errs
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	err := gconf.Load(db, "batchsend", &conf)
	return conf, err
}

// FeeAccount returns the address of the wallet that batch fees are collected
// in. Nobody holds the private key to this account, so the funds can only be
// moved by a withdraw message.
func FeeAccount() weave.Address {
	return weave.NewCondition("batchsend", "fee", []byte("collector")).Address()
}
