package domain

import "time"

// Trade represents a single pairwise execution between a bid and an
// ask order on the same market. The fill price is always the ask's
// quoted price.
type Trade struct {
	TradeID    string
	Market     string // derived market address
	BidOrderID uint64
	AskOrderID uint64
	Buyer      string
	Seller     string
	Price      uint64 // fill price (ask price)
	Quantity   uint64 // fill quantity
	ExecutedAt time.Time
}
