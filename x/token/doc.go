/*
Package token implements a minimal ledger for custom tokens.

A token is registered once under its ticker and from then on units of it
live in holdings. A holding binds an owner address to a balance of a single
token and must be explicitly opened before it can receive funds. This is
different from native currency wallets that are created on demand.

The Controller gives other extensions safe access to holding balances and
transfers.
*/
package token
