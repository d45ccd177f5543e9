package engine

import (
	"time"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// PlaceOrderRequest carries the parameters of a placement. Owner is
// the invoking principal; OrderID must equal the market's current
// next_order_id.
type PlaceOrderRequest struct {
	Market    string // derived market address
	Owner     string
	Side      domain.Side
	Price     uint64
	Quantity  uint64
	OrderID   uint64
	Timestamp time.Time
}

// PlaceOrder validates and executes an order placement. For a buy,
// price×quantity base units move from the owner into the order's
// escrow account before the record is finalized; a sell escrows
// nothing. The storage deposit is locked in the escrow account either
// way. Every arithmetic step is checked and every balance condition
// verified before the first mutation, so a rejection has no effect.
func (e *Engine) PlaceOrder(req PlaceOrderRequest) (*domain.Order, error) {
	unlock := e.lockMarkets(req.Market, req.Market)
	defer unlock()

	market, err := e.markets.Get(req.Market)
	if err != nil {
		return nil, err
	}

	if !req.Side.Valid() {
		return nil, domain.ErrInvalidOrderSide
	}
	if req.Price == 0 {
		return nil, domain.ErrInvalidPrice
	}
	if req.Quantity == 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if req.OrderID != market.NextOrderID {
		return nil, domain.ErrInvalidOrderID
	}
	if !e.ledger.Exists(req.Owner) {
		return nil, domain.ErrAccountNotFound
	}

	// Compute everything that can fail before touching any state.
	var escrow uint64
	if req.Side == domain.SideBuy {
		escrow, err = domain.CheckedMul(req.Price, req.Quantity)
		if err != nil {
			return nil, err
		}
	}
	lockup, err := domain.CheckedAdd(escrow, e.deposit)
	if err != nil {
		return nil, err
	}

	volume := market.TotalBidVolume
	if req.Side == domain.SideSell {
		volume = market.TotalAskVolume
	}
	newVolume, err := domain.CheckedAdd(volume, req.Quantity)
	if err != nil {
		return nil, err
	}
	newNextID, err := domain.CheckedAdd(market.NextOrderID, 1)
	if err != nil {
		return nil, err
	}

	// Fund the order's escrow account. This is the first mutation and
	// the only step left that can fail (insufficient balance), so a
	// failure here still leaves every record untouched.
	orderAddr := domain.OrderAddress(req.Market, req.OrderID)
	if err := e.ledger.Transfer(req.Owner, orderAddr, lockup); err != nil {
		return nil, err
	}

	order := &domain.Order{
		Owner:     req.Owner,
		Market:    req.Market,
		OrderID:   req.OrderID,
		Side:      req.Side,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Status:    domain.OrderStatusOpen,
		Timestamp: req.Timestamp,
	}
	e.orders.Create(order)

	if req.Side == domain.SideBuy {
		market.TotalBidVolume = newVolume
	} else {
		market.TotalAskVolume = newVolume
	}
	market.NextOrderID = newNextID

	return order, nil
}

// GetOrder retrieves an order record by derived address.
func (e *Engine) GetOrder(addr string) (*domain.Order, error) {
	return e.orders.Get(addr)
}

// ListOrders returns a market's orders in placement order, optionally
// filtered by owner.
func (e *Engine) ListOrders(marketAddr, owner string) []*domain.Order {
	return e.orders.ListByMarket(marketAddr, owner)
}
