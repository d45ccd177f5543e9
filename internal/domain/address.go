package domain

import "fmt"

// Record addresses are derived deterministically from a record's
// identity, mirroring the seed scheme of the ledger this system
// models: a market's address is a function of its authority and name,
// an order's address a function of its market address and order id.
// Re-deriving the address of a record always yields the same key.

// MarketAddress derives the record address for a market.
func MarketAddress(authority, name string) string {
	return fmt.Sprintf("market/%s/%s", authority, name)
}

// OrderAddress derives the record address for an order. The id is
// fixed-width hex so that lexicographic key order matches numeric id
// order.
func OrderAddress(marketAddr string, orderID uint64) string {
	return fmt.Sprintf("order/%s/%016x", marketAddr, orderID)
}
