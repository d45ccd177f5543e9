package engine

import (
	"github.com/efreitasn/ledgermatch/internal/domain"
)

// CancelOrder cancels an active order. For a buy, the escrow covering
// the unfilled remainder (price×remaining) moves back to the owner;
// a sell never escrowed anything, so its refund is zero. The market's
// matching-side volume aggregate shrinks by the remaining quantity
// with saturation. Returns the cancelled order and the refund amount.
func (e *Engine) CancelOrder(addr, caller string) (*domain.Order, uint64, error) {
	order, err := e.orders.Get(addr)
	if err != nil {
		return nil, 0, err
	}

	unlock := e.lockMarkets(order.Market, order.Market)
	defer unlock()

	order, err = e.orders.Get(addr)
	if err != nil {
		return nil, 0, err
	}

	if caller != order.Owner {
		return nil, 0, domain.ErrUnauthorized
	}
	if !order.IsActive() {
		return nil, 0, domain.ErrOrderNotActive
	}

	remaining := order.RemainingQuantity()

	var refund uint64
	if order.Side == domain.SideBuy {
		refund, err = domain.CheckedMul(order.Price, remaining)
		if err != nil {
			return nil, 0, err
		}
	}

	if refund > 0 {
		if err := e.ledger.Transfer(addr, order.Owner, refund); err != nil {
			return nil, 0, err
		}
	}

	market, err := e.markets.Get(order.Market)
	if err != nil {
		return nil, 0, err
	}
	if order.Side == domain.SideBuy {
		market.TotalBidVolume = domain.SaturatingSub(market.TotalBidVolume, remaining)
	} else {
		market.TotalAskVolume = domain.SaturatingSub(market.TotalAskVolume, remaining)
	}

	order.Status = domain.OrderStatusCancelled

	return order, refund, nil
}

// CloseOrder destroys a filled or cancelled order record and drains
// whatever remains in its escrow account (the storage deposit) back
// to the owner. Returns the reclaimed amount.
func (e *Engine) CloseOrder(addr, caller string) (uint64, error) {
	order, err := e.orders.Get(addr)
	if err != nil {
		return 0, err
	}

	unlock := e.lockMarkets(order.Market, order.Market)
	defer unlock()

	order, err = e.orders.Get(addr)
	if err != nil {
		return 0, err
	}

	if caller != order.Owner {
		return 0, domain.ErrUnauthorized
	}
	if !order.IsTerminal() {
		return 0, domain.ErrOrderNotClosed
	}

	reclaimed, err := e.ledger.CloseAccount(addr, order.Owner)
	if err != nil {
		return 0, err
	}

	if err := e.orders.Delete(addr); err != nil {
		return 0, err
	}

	return reclaimed, nil
}
