package service

import (
	"errors"
	"testing"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

func TestOrderServiceLifecycle(t *testing.T) {
	accounts, markets, orders, _, l := newTestServices(t)

	if err := accounts.Register("alice", 0); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := accounts.Register("bob", 10_000); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := markets.Create("alice", "GOLD"); err != nil {
		t.Fatalf("create market: %v", err)
	}

	order, err := orders.Place(PlaceOrderRequest{
		Authority: "alice", Market: "GOLD", Owner: "bob",
		Side: domain.SideBuy, Price: 100, Quantity: 5, OrderID: 0,
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if order.OrderID != 0 {
		t.Errorf("order id = %d, want 0", order.OrderID)
	}

	got, err := orders.Get("alice", "GOLD", 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != order {
		t.Error("Get returned a different record")
	}
	if listed := orders.List("alice", "GOLD", "bob"); len(listed) != 1 {
		t.Errorf("List returned %d orders, want 1", len(listed))
	}

	_, refund, err := orders.Cancel("alice", "GOLD", 0, "bob")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if refund != 500 {
		t.Errorf("refund = %d, want 500", refund)
	}

	reclaimed, err := orders.Close("alice", "GOLD", 0, "bob")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if reclaimed != testDeposit {
		t.Errorf("reclaimed = %d, want %d", reclaimed, testDeposit)
	}
	if bal, _ := l.Balance("bob"); bal != 10_000 {
		t.Errorf("bob final balance = %d, want 10000", bal)
	}
}

func TestOrderServicePlaceValidation(t *testing.T) {
	accounts, markets, orders, _, _ := newTestServices(t)
	_ = accounts.Register("alice", 0)
	_, _ = markets.Create("alice", "GOLD")

	tests := []struct {
		name string
		req  PlaceOrderRequest
	}{
		{
			"bad owner",
			PlaceOrderRequest{Authority: "alice", Market: "GOLD", Owner: "no spaces allowed", Side: domain.SideBuy, Price: 1, Quantity: 1},
		},
		{
			"bad side",
			PlaceOrderRequest{Authority: "alice", Market: "GOLD", Owner: "alice", Side: "short", Price: 1, Quantity: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orders.Place(tt.req)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestMarketServiceValidation(t *testing.T) {
	accounts, markets, _, _, _ := newTestServices(t)
	_ = accounts.Register("alice", 0)

	var ve *domain.ValidationError
	if _, err := markets.Create("bad id", "GOLD"); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for authority, got %v", err)
	}
	if _, err := markets.Create("alice", ""); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for empty name, got %v", err)
	}

	if _, err := markets.Get("alice", "GOLD"); !errors.Is(err, domain.ErrMarketNotFound) {
		t.Errorf("expected ErrMarketNotFound, got %v", err)
	}
}

func TestTradeServiceMatch(t *testing.T) {
	accounts, markets, orders, trades, _ := newTestServices(t)
	_ = accounts.Register("alice", 0)
	_ = accounts.Register("buyer", 100_000)
	_ = accounts.Register("seller", 100_000)
	_, _ = markets.Create("alice", "GOLD")

	if _, err := orders.Place(PlaceOrderRequest{Authority: "alice", Market: "GOLD", Owner: "buyer", Side: domain.SideBuy, Price: 100, Quantity: 5, OrderID: 0}); err != nil {
		t.Fatalf("place bid: %v", err)
	}
	if _, err := orders.Place(PlaceOrderRequest{Authority: "alice", Market: "GOLD", Owner: "seller", Side: domain.SideSell, Price: 90, Quantity: 5, OrderID: 1}); err != nil {
		t.Fatalf("place ask: %v", err)
	}

	trade, err := trades.Match(MatchRequest{
		Bid:      OrderRef{Authority: "alice", Market: "GOLD", OrderID: 0},
		Ask:      OrderRef{Authority: "alice", Market: "GOLD", OrderID: 1},
		BidOwner: "buyer",
		AskOwner: "seller",
	})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if trade.Price != 90 || trade.Quantity != 5 {
		t.Errorf("trade = %d×%d, want 90×5", trade.Price, trade.Quantity)
	}

	history := trades.List("alice", "GOLD")
	if len(history) != 1 || history[0].TradeID != trade.TradeID {
		t.Errorf("trade history = %+v", history)
	}
}

func TestTradeServiceCrossMarketRejected(t *testing.T) {
	accounts, markets, orders, trades, _ := newTestServices(t)
	_ = accounts.Register("alice", 0)
	_ = accounts.Register("buyer", 100_000)
	_ = accounts.Register("seller", 100_000)
	_, _ = markets.Create("alice", "GOLD")
	_, _ = markets.Create("alice", "SILVER")

	if _, err := orders.Place(PlaceOrderRequest{Authority: "alice", Market: "GOLD", Owner: "buyer", Side: domain.SideBuy, Price: 100, Quantity: 5, OrderID: 0}); err != nil {
		t.Fatalf("place bid: %v", err)
	}
	if _, err := orders.Place(PlaceOrderRequest{Authority: "alice", Market: "SILVER", Owner: "seller", Side: domain.SideSell, Price: 90, Quantity: 5, OrderID: 0}); err != nil {
		t.Fatalf("place ask: %v", err)
	}

	_, err := trades.Match(MatchRequest{
		Bid:      OrderRef{Authority: "alice", Market: "GOLD", OrderID: 0},
		Ask:      OrderRef{Authority: "alice", Market: "SILVER", OrderID: 0},
		BidOwner: "buyer",
		AskOwner: "seller",
	})
	if !errors.Is(err, domain.ErrMarketMismatch) {
		t.Errorf("expected ErrMarketMismatch, got %v", err)
	}
}

func TestTradeServiceOwnerValidation(t *testing.T) {
	_, _, _, trades, _ := newTestServices(t)

	_, err := trades.Match(MatchRequest{
		Bid:      OrderRef{Authority: "alice", Market: "GOLD", OrderID: 0},
		Ask:      OrderRef{Authority: "alice", Market: "GOLD", OrderID: 1},
		BidOwner: "not valid!",
		AskOwner: "seller",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
