/*
Package batchsend implements atomic multi-recipient settlement with a
governed, per-call administrative fee.

A single configuration entity, stored under the deterministic gconf key for
this package, declares the fee owner (admin) and the fee charged once per
batch call. Funds are moved to any number of recipients within a single
transaction: every transfer is applied or none is.

Two settlement paths are provided. BatchSendMsg moves native currency
between cash wallets, creating destination wallets on first credit.
BatchSendTokenMsg moves units of a registered token between existing
holdings (see x/token), while the fee is still settled in native currency.
*/
package batchsend
