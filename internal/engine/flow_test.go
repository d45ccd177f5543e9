package engine

import (
	"testing"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// Full lifecycle walks: place, match, cancel, close, with exact
// balance accounting at every step.

func TestFlowPlaceMatchCloseAccounting(t *testing.T) {
	e, l := newTestEngine(t)
	market := makeMarket(t, e, l, "alice", "M")
	fund(t, l, "buyer", 10_000)
	fund(t, l, "seller", 10_000)
	supply := l.TotalSupply()

	// Buy 5 at 100 escrows 500; sell 5 at 90 escrows nothing.
	bid := place(t, e, market, "buyer", domain.SideBuy, 100, 5, 0)
	ask := place(t, e, market, "seller", domain.SideSell, 90, 5, 1)

	if got := balance(t, l, bid.Address()); got != 500+testDeposit {
		t.Fatalf("bid escrow = %d, want %d", got, 500+testDeposit)
	}
	if got := balance(t, l, ask.Address()); got != testDeposit {
		t.Fatalf("ask escrow = %d, want %d", got, testDeposit)
	}

	// Match fills 5 at the ask price: seller gets 450, buyer gets the
	// 50-unit improvement back.
	trade, err := match(e, bid.Address(), ask.Address(), "buyer", "seller")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if trade.Quantity != 5 || trade.Price != 90 {
		t.Fatalf("trade = %d×%d, want 90×5", trade.Price, trade.Quantity)
	}
	if got := balance(t, l, "seller"); got != 10_000-testDeposit+450 {
		t.Errorf("seller = %d, want %d", got, 10_000-testDeposit+450)
	}
	if got := balance(t, l, "buyer"); got != 10_000-500-testDeposit+50 {
		t.Errorf("buyer = %d, want %d", got, 10_000-500-testDeposit+50)
	}

	// Closing both filled orders returns the deposits.
	if _, err := e.CloseOrder(bid.Address(), "buyer"); err != nil {
		t.Fatalf("close bid: %v", err)
	}
	if _, err := e.CloseOrder(ask.Address(), "seller"); err != nil {
		t.Fatalf("close ask: %v", err)
	}
	if got := balance(t, l, "seller"); got != 10_000+450 {
		t.Errorf("seller final = %d, want %d", got, 10_000+450)
	}
	if got := balance(t, l, "buyer"); got != 10_000-450 {
		t.Errorf("buyer final = %d, want %d", got, 10_000-450)
	}

	// Nothing was created or destroyed along the way.
	if l.TotalSupply() != supply {
		t.Errorf("supply = %d, want %d", l.TotalSupply(), supply)
	}
}

func TestFlowCancelCloseAccounting(t *testing.T) {
	e, l := newTestEngine(t)
	market := makeMarket(t, e, l, "alice", "M")
	fund(t, l, "bob", 10_000)
	supply := l.TotalSupply()

	// Buy 3 at 50 escrows 150; cancelling before any fill refunds it
	// all and shrinks the bid volume aggregate by 3.
	bid := place(t, e, market, "bob", domain.SideBuy, 50, 3, 0)
	_, refund, err := e.CancelOrder(bid.Address(), "bob")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if refund != 150 {
		t.Errorf("refund = %d, want 150", refund)
	}
	m, _ := e.GetMarket(market)
	if m.TotalBidVolume != 0 {
		t.Errorf("TotalBidVolume = %d, want 0", m.TotalBidVolume)
	}

	reclaimed, err := e.CloseOrder(bid.Address(), "bob")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if reclaimed != testDeposit {
		t.Errorf("reclaimed = %d, want %d", reclaimed, testDeposit)
	}
	if got := balance(t, l, "bob"); got != 10_000 {
		t.Errorf("bob final = %d, want 10000", got)
	}
	if l.TotalSupply() != supply {
		t.Errorf("supply = %d, want %d", l.TotalSupply(), supply)
	}
}
