package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// MatchRequest names a bid order and an ask order plus the identities
// that will receive funds. Matching is permissionless: the caller is
// not verified against either order, but the supplied owner
// identities must match the stored owner fields exactly.
type MatchRequest struct {
	BidOrder  string // derived order address
	AskOrder  string // derived order address
	BidOwner  string
	AskOwner  string
	Timestamp time.Time
	TradeID   string // assigned when empty; set during journal replay
}

// MatchOrders validates and executes a single pairwise trade. The
// validation sequence is fixed and fail-fast; the first failing check
// aborts with no effect. Settlement debits the bid's escrow by
// fill_price×fill_qty plus the price-improvement refund, which
// together equal bid_price×fill_qty exactly.
//
// Market volume aggregates are not adjusted by matching; only
// placement and cancellation touch them.
func (e *Engine) MatchOrders(req MatchRequest) (*domain.Trade, error) {
	// Resolve the records once to learn which markets to lock, then
	// re-resolve under the locks since closure may race the lookup.
	bid, err := e.orders.Get(req.BidOrder)
	if err != nil {
		return nil, err
	}
	ask, err := e.orders.Get(req.AskOrder)
	if err != nil {
		return nil, err
	}

	unlock := e.lockMarkets(bid.Market, ask.Market)
	defer unlock()

	bid, err = e.orders.Get(req.BidOrder)
	if err != nil {
		return nil, err
	}
	ask, err = e.orders.Get(req.AskOrder)
	if err != nil {
		return nil, err
	}

	if bid.Side != domain.SideBuy {
		return nil, domain.ErrInvalidOrderSide
	}
	if ask.Side != domain.SideSell {
		return nil, domain.ErrInvalidOrderSide
	}
	if !bid.IsActive() || !ask.IsActive() {
		return nil, domain.ErrOrderNotActive
	}
	if bid.Market != ask.Market {
		return nil, domain.ErrMarketMismatch
	}
	if bid.Price < ask.Price {
		return nil, domain.ErrPriceMismatch
	}
	if req.BidOwner != bid.Owner {
		return nil, domain.ErrBidOwnerMismatch
	}
	if req.AskOwner != ask.Owner {
		return nil, domain.ErrAskOwnerMismatch
	}

	fillQty := bid.RemainingQuantity()
	if ask.RemainingQuantity() < fillQty {
		fillQty = ask.RemainingQuantity()
	}

	// The seller always settles at their own quoted (maker) price.
	fillPrice := ask.Price

	sellerPayment, err := domain.CheckedMul(fillPrice, fillQty)
	if err != nil {
		return nil, err
	}
	priceImprovement, err := domain.CheckedSub(bid.Price, ask.Price)
	if err != nil {
		return nil, err
	}
	buyerRefund, err := domain.CheckedMul(priceImprovement, fillQty)
	if err != nil {
		return nil, err
	}

	// Atomic three-way movement: escrow → seller, escrow → buyer.
	if err := e.ledger.Settle(bid.Address(), ask.Owner, bid.Owner, sellerPayment, buyerRefund); err != nil {
		return nil, err
	}

	bid.FilledQuantity += fillQty
	ask.FilledQuantity += fillQty

	if bid.FilledQuantity >= bid.Quantity {
		bid.Status = domain.OrderStatusFilled
	} else {
		bid.Status = domain.OrderStatusPartiallyFilled
	}
	if ask.FilledQuantity >= ask.Quantity {
		ask.Status = domain.OrderStatusFilled
	} else {
		ask.Status = domain.OrderStatusPartiallyFilled
	}

	tradeID := req.TradeID
	if tradeID == "" {
		tradeID = uuid.New().String()
	}

	trade := &domain.Trade{
		TradeID:    tradeID,
		Market:     bid.Market,
		BidOrderID: bid.OrderID,
		AskOrderID: ask.OrderID,
		Buyer:      bid.Owner,
		Seller:     ask.Owner,
		Price:      fillPrice,
		Quantity:   fillQty,
		ExecutedAt: req.Timestamp,
	}
	e.trades.Append(trade)

	return trade, nil
}

// ListTrades returns a market's executed trades in execution order.
func (e *Engine) ListTrades(marketAddr string) []*domain.Trade {
	return e.trades.ListByMarket(marketAddr)
}
