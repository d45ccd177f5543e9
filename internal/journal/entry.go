package journal

import (
	"time"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// EntryType discriminates journal entries.
type EntryType string

const (
	EntryAccountCreated EntryType = "account_created"
	EntryMarketCreated  EntryType = "market_created"
	EntryOrderPlaced    EntryType = "order_placed"
	EntryOrdersMatched  EntryType = "orders_matched"
	EntryOrderCancelled EntryType = "order_cancelled"
	EntryOrderClosed    EntryType = "order_closed"
)

// Entry is one committed operation. Exactly one payload field is set,
// selected by Type. Payloads carry the full operation inputs
// (including original timestamps and assigned trade ids) so replaying
// through the engine rebuilds identical records.
type Entry struct {
	Type           EntryType       `json:"type"`
	AccountCreated *AccountCreated `json:"account_created,omitempty"`
	MarketCreated  *MarketCreated  `json:"market_created,omitempty"`
	OrderPlaced    *OrderPlaced    `json:"order_placed,omitempty"`
	OrdersMatched  *OrdersMatched  `json:"orders_matched,omitempty"`
	OrderCancelled *OrderCancelled `json:"order_cancelled,omitempty"`
	OrderClosed    *OrderClosed    `json:"order_closed,omitempty"`
}

// AccountCreated records a participant registration.
type AccountCreated struct {
	AccountID string `json:"account_id"`
	Balance   uint64 `json:"balance"`
}

// MarketCreated records a market creation.
type MarketCreated struct {
	Authority string    `json:"authority"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderPlaced records an order placement.
type OrderPlaced struct {
	Market    string      `json:"market"`
	Owner     string      `json:"owner"`
	Side      domain.Side `json:"side"`
	Price     uint64      `json:"price"`
	Quantity  uint64      `json:"quantity"`
	OrderID   uint64      `json:"order_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// OrdersMatched records an executed match.
type OrdersMatched struct {
	BidOrder  string    `json:"bid_order"`
	AskOrder  string    `json:"ask_order"`
	BidOwner  string    `json:"bid_owner"`
	AskOwner  string    `json:"ask_owner"`
	TradeID   string    `json:"trade_id"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCancelled records a cancellation.
type OrderCancelled struct {
	Order  string `json:"order"`
	Caller string `json:"caller"`
}

// OrderClosed records a record closure.
type OrderClosed struct {
	Order  string `json:"order"`
	Caller string `json:"caller"`
}
