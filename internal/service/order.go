package service

import (
	"time"

	"github.com/efreitasn/ledgermatch/internal/domain"
	"github.com/efreitasn/ledgermatch/internal/engine"
	"github.com/efreitasn/ledgermatch/internal/feed"
	"github.com/efreitasn/ledgermatch/internal/journal"
)

// PlaceOrderRequest represents the input for order placement. Owner is
// the invoking principal.
type PlaceOrderRequest struct {
	Authority string // market authority
	Market    string // market name
	Owner     string
	Side      domain.Side
	Price     uint64
	Quantity  uint64
	OrderID   uint64
}

// OrderService handles order placement, retrieval, listing,
// cancellation, and closure.
type OrderService struct {
	engine   *engine.Engine
	journal  *journal.Journal
	webhooks *WebhookService
	feed     *feed.Hub
}

// NewOrderService creates a new OrderService. journal, webhooks, and
// feed may be nil.
func NewOrderService(e *engine.Engine, j *journal.Journal, w *WebhookService, f *feed.Hub) *OrderService {
	return &OrderService{
		engine:   e,
		journal:  j,
		webhooks: w,
		feed:     f,
	}
}

// Place validates the request shape, executes the placement, journals
// it, and emits the placement notification.
func (s *OrderService) Place(req PlaceOrderRequest) (*domain.Order, error) {
	if !accountIDRegex.MatchString(req.Owner) {
		return nil, &domain.ValidationError{
			Message: "owner must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if !req.Side.Valid() {
		return nil, &domain.ValidationError{
			Message: "side must be 'buy' or 'sell'",
		}
	}

	marketAddr := domain.MarketAddress(req.Authority, req.Market)
	placed := engine.PlaceOrderRequest{
		Market:    marketAddr,
		Owner:     req.Owner,
		Side:      req.Side,
		Price:     req.Price,
		Quantity:  req.Quantity,
		OrderID:   req.OrderID,
		Timestamp: time.Now().UTC(),
	}

	order, err := s.engine.PlaceOrder(placed)
	if err != nil {
		return nil, err
	}

	if s.journal != nil {
		if err := s.journal.Append(journal.Entry{
			Type: journal.EntryOrderPlaced,
			OrderPlaced: &journal.OrderPlaced{
				Market:    placed.Market,
				Owner:     placed.Owner,
				Side:      placed.Side,
				Price:     placed.Price,
				Quantity:  placed.Quantity,
				OrderID:   placed.OrderID,
				Timestamp: placed.Timestamp,
			},
		}); err != nil {
			return nil, err
		}
	}

	event := domain.OrderPlacedEvent{
		OrderID:   order.OrderID,
		Owner:     order.Owner,
		Market:    order.Market,
		Side:      order.Side,
		Price:     order.Price,
		Quantity:  order.Quantity,
		Timestamp: order.Timestamp,
	}
	if s.webhooks != nil {
		s.webhooks.DispatchOrderPlaced(event)
	}
	if s.feed != nil {
		s.feed.Broadcast(domain.EventOrderPlaced, event)
	}

	return order, nil
}

// Get retrieves an order by market reference and id.
func (s *OrderService) Get(authority, market string, orderID uint64) (*domain.Order, error) {
	addr := domain.OrderAddress(domain.MarketAddress(authority, market), orderID)
	return s.engine.GetOrder(addr)
}

// List returns a market's orders in placement order, optionally
// filtered by owner.
func (s *OrderService) List(authority, market, owner string) []*domain.Order {
	return s.engine.ListOrders(domain.MarketAddress(authority, market), owner)
}

// Cancel cancels an active order on behalf of caller. The refund (zero
// for sells) is included in the emitted notification.
func (s *OrderService) Cancel(authority, market string, orderID uint64, caller string) (*domain.Order, uint64, error) {
	addr := domain.OrderAddress(domain.MarketAddress(authority, market), orderID)

	order, refund, err := s.engine.CancelOrder(addr, caller)
	if err != nil {
		return nil, 0, err
	}

	if s.journal != nil {
		if err := s.journal.Append(journal.Entry{
			Type: journal.EntryOrderCancelled,
			OrderCancelled: &journal.OrderCancelled{
				Order:  addr,
				Caller: caller,
			},
		}); err != nil {
			return nil, 0, err
		}
	}

	event := domain.OrderCancelledEvent{
		OrderID: order.OrderID,
		Owner:   order.Owner,
		Market:  order.Market,
		Refund:  refund,
	}
	if s.webhooks != nil {
		s.webhooks.DispatchOrderCancelled(event)
	}
	if s.feed != nil {
		s.feed.Broadcast(domain.EventOrderCancelled, event)
	}

	return order, refund, nil
}

// Close destroys a terminal order record on behalf of caller and
// returns the reclaimed storage deposit.
func (s *OrderService) Close(authority, market string, orderID uint64, caller string) (uint64, error) {
	addr := domain.OrderAddress(domain.MarketAddress(authority, market), orderID)

	reclaimed, err := s.engine.CloseOrder(addr, caller)
	if err != nil {
		return 0, err
	}

	if s.journal != nil {
		if err := s.journal.Append(journal.Entry{
			Type: journal.EntryOrderClosed,
			OrderClosed: &journal.OrderClosed{
				Order:  addr,
				Caller: caller,
			},
		}); err != nil {
			return 0, err
		}
	}

	return reclaimed, nil
}
