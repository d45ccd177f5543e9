package service

import (
	"fmt"

	"github.com/efreitasn/ledgermatch/internal/engine"
	"github.com/efreitasn/ledgermatch/internal/journal"
	"github.com/efreitasn/ledgermatch/internal/ledger"
)

// Replay rebuilds in-memory state from the journal by re-executing
// every recorded operation against a fresh engine and ledger.
// Recorded entries were committed operations, so each must apply
// cleanly; any failure means the journal and the code disagree and is
// reported rather than skipped. No notifications are emitted and
// nothing is re-journaled.
func Replay(j *journal.Journal, e *engine.Engine, l *ledger.Ledger) error {
	return j.Replay(func(entry journal.Entry) error {
		switch entry.Type {
		case journal.EntryAccountCreated:
			p := entry.AccountCreated
			return l.CreateAccount(p.AccountID, p.Balance)

		case journal.EntryMarketCreated:
			p := entry.MarketCreated
			_, err := e.CreateMarket(p.Authority, p.Name, p.CreatedAt)
			return err

		case journal.EntryOrderPlaced:
			p := entry.OrderPlaced
			_, err := e.PlaceOrder(engine.PlaceOrderRequest{
				Market:    p.Market,
				Owner:     p.Owner,
				Side:      p.Side,
				Price:     p.Price,
				Quantity:  p.Quantity,
				OrderID:   p.OrderID,
				Timestamp: p.Timestamp,
			})
			return err

		case journal.EntryOrdersMatched:
			p := entry.OrdersMatched
			_, err := e.MatchOrders(engine.MatchRequest{
				BidOrder:  p.BidOrder,
				AskOrder:  p.AskOrder,
				BidOwner:  p.BidOwner,
				AskOwner:  p.AskOwner,
				Timestamp: p.Timestamp,
				TradeID:   p.TradeID,
			})
			return err

		case journal.EntryOrderCancelled:
			p := entry.OrderCancelled
			_, _, err := e.CancelOrder(p.Order, p.Caller)
			return err

		case journal.EntryOrderClosed:
			p := entry.OrderClosed
			_, err := e.CloseOrder(p.Order, p.Caller)
			return err

		default:
			return fmt.Errorf("unknown journal entry type %q", entry.Type)
		}
	})
}
