package domain

import "time"

// Side indicates whether an order is a buy (bid) or a sell (ask).
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// OrderStatus represents the lifecycle state of an order.
// Closure is not a status: a closed order's record is destroyed.
type OrderStatus string

const (
	OrderStatusOpen            OrderStatus = "open"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// Order is a limit order registered against a market. Owner, market,
// id, side, price, quantity, and timestamp are immutable after
// placement; only FilledQuantity and Status change, and FilledQuantity
// never exceeds Quantity.
type Order struct {
	Owner          string
	Market         string // derived market address
	OrderID        uint64
	Side           Side
	Price          uint64
	Quantity       uint64
	FilledQuantity uint64
	Status         OrderStatus
	Timestamp      time.Time
}

// RemainingQuantity returns the unfilled portion of the order,
// clamped at zero.
func (o *Order) RemainingQuantity() uint64 {
	return SaturatingSub(o.Quantity, o.FilledQuantity)
}

// IsActive reports whether the order can still participate in a match
// or be cancelled.
func (o *Order) IsActive() bool {
	return o.Status == OrderStatusOpen || o.Status == OrderStatusPartiallyFilled
}

// IsTerminal reports whether the order has finished trading and may be
// closed.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusFilled || o.Status == OrderStatusCancelled
}

// Address returns the order's derived record address.
func (o *Order) Address() string {
	return OrderAddress(o.Market, o.OrderID)
}
