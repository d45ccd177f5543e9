package domain

import "time"

// Event names emitted by the engine. Each successful state-changing
// order operation emits exactly one event.
const (
	EventOrderPlaced    = "order.placed"
	EventTradeExecuted  = "trade.executed"
	EventOrderCancelled = "order.cancelled"
)

// OrderPlacedEvent carries the full parameters of a newly placed order.
type OrderPlacedEvent struct {
	OrderID   uint64    `json:"order_id"`
	Owner     string    `json:"owner"`
	Market    string    `json:"market"`
	Side      Side      `json:"side"`
	Price     uint64    `json:"price"`
	Quantity  uint64    `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// TradeExecutedEvent carries both sides of an executed match.
type TradeExecutedEvent struct {
	TradeID      string    `json:"trade_id"`
	BidOrderID   uint64    `json:"bid_order_id"`
	AskOrderID   uint64    `json:"ask_order_id"`
	Market       string    `json:"market"`
	Buyer        string    `json:"buyer"`
	Seller       string    `json:"seller"`
	FillPrice    uint64    `json:"fill_price"`
	FillQuantity uint64    `json:"fill_quantity"`
	Timestamp    time.Time `json:"timestamp"`
}

// OrderCancelledEvent carries the cancelled order and the escrow
// amount refunded to its owner (always zero for sells).
type OrderCancelledEvent struct {
	OrderID uint64 `json:"order_id"`
	Owner   string `json:"owner"`
	Market  string `json:"market"`
	Refund  uint64 `json:"refund"`
}
