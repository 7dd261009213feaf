// Package cart implements the Cart Ledger: the session-scoped list of line
// items a customer is about to order.
//
// Lines are unique per product and keep insertion order. Every mutator
// recomputes TotalItems and TotalPrice before returning, so the totals always
// equal the sums over the current lines. Persistence is not a concern of this
// package; command handlers load and store carts through the CartStore port.
package cart
