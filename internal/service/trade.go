package service

import (
	"time"

	"github.com/efreitasn/ledgermatch/internal/domain"
	"github.com/efreitasn/ledgermatch/internal/engine"
	"github.com/efreitasn/ledgermatch/internal/feed"
	"github.com/efreitasn/ledgermatch/internal/journal"
)

// OrderRef names an order by market reference and id.
type OrderRef struct {
	Authority string
	Market    string
	OrderID   uint64
}

// Addr returns the referenced order's derived address.
func (r OrderRef) Addr() string {
	return domain.OrderAddress(domain.MarketAddress(r.Authority, r.Market), r.OrderID)
}

// MatchRequest represents the input for a match. The caller may be
// anyone (a permissionless crank); the owner identities must name the
// stored owners of the two orders.
type MatchRequest struct {
	Bid      OrderRef
	Ask      OrderRef
	BidOwner string
	AskOwner string
}

// TradeService handles matching and trade history.
type TradeService struct {
	engine   *engine.Engine
	journal  *journal.Journal
	webhooks *WebhookService
	feed     *feed.Hub
}

// NewTradeService creates a new TradeService. journal, webhooks, and
// feed may be nil.
func NewTradeService(e *engine.Engine, j *journal.Journal, w *WebhookService, f *feed.Hub) *TradeService {
	return &TradeService{
		engine:   e,
		journal:  j,
		webhooks: w,
		feed:     f,
	}
}

// Match executes a single pairwise trade between the referenced bid
// and ask, journals it, and emits the trade notification to both
// parties.
func (s *TradeService) Match(req MatchRequest) (*domain.Trade, error) {
	if !accountIDRegex.MatchString(req.BidOwner) || !accountIDRegex.MatchString(req.AskOwner) {
		return nil, &domain.ValidationError{
			Message: "bid_owner and ask_owner must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}

	matched := engine.MatchRequest{
		BidOrder:  req.Bid.Addr(),
		AskOrder:  req.Ask.Addr(),
		BidOwner:  req.BidOwner,
		AskOwner:  req.AskOwner,
		Timestamp: time.Now().UTC(),
	}

	trade, err := s.engine.MatchOrders(matched)
	if err != nil {
		return nil, err
	}

	if s.journal != nil {
		if err := s.journal.Append(journal.Entry{
			Type: journal.EntryOrdersMatched,
			OrdersMatched: &journal.OrdersMatched{
				BidOrder:  matched.BidOrder,
				AskOrder:  matched.AskOrder,
				BidOwner:  matched.BidOwner,
				AskOwner:  matched.AskOwner,
				TradeID:   trade.TradeID,
				Timestamp: matched.Timestamp,
			},
		}); err != nil {
			return nil, err
		}
	}

	event := domain.TradeExecutedEvent{
		TradeID:      trade.TradeID,
		BidOrderID:   trade.BidOrderID,
		AskOrderID:   trade.AskOrderID,
		Market:       trade.Market,
		Buyer:        trade.Buyer,
		Seller:       trade.Seller,
		FillPrice:    trade.Price,
		FillQuantity: trade.Quantity,
		Timestamp:    trade.ExecutedAt,
	}
	if s.webhooks != nil {
		s.webhooks.DispatchTradeExecuted(event)
	}
	if s.feed != nil {
		s.feed.Broadcast(domain.EventTradeExecuted, event)
	}

	return trade, nil
}

// List returns a market's executed trades in execution order.
func (s *TradeService) List(authority, market string) []*domain.Trade {
	return s.engine.ListTrades(domain.MarketAddress(authority, market))
}
