package engine

import (
	"testing"
	"time"

	"github.com/efreitasn/ledgermatch/internal/domain"
	"github.com/efreitasn/ledgermatch/internal/ledger"
	"github.com/efreitasn/ledgermatch/internal/store"
)

// testDeposit is the storage deposit used by engine tests. Non-zero
// so deposit accounting bugs show up in balance assertions.
const testDeposit = 1000

// newTestEngine creates an Engine with fresh stores and ledger.
func newTestEngine(t *testing.T) (*Engine, *ledger.Ledger) {
	t.Helper()
	l := ledger.New()
	e := New(store.NewMarketStore(), store.NewOrderStore(), store.NewTradeStore(), l, testDeposit)
	return e, l
}

// fund registers a participant account with a balance.
func fund(t *testing.T, l *ledger.Ledger, id string, balance uint64) {
	t.Helper()
	if err := l.CreateAccount(id, balance); err != nil {
		t.Fatalf("create account %s: %v", id, err)
	}
}

// makeMarket creates a market and returns its derived address.
func makeMarket(t *testing.T, e *Engine, l *ledger.Ledger, authority, name string) string {
	t.Helper()
	if !l.Exists(authority) {
		fund(t, l, authority, 0)
	}
	m, err := e.CreateMarket(authority, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("create market %s: %v", name, err)
	}
	return m.Address()
}

// place submits an order and fails the test on rejection.
func place(t *testing.T, e *Engine, market, owner string, side domain.Side, price, qty, id uint64) *domain.Order {
	t.Helper()
	o, err := e.PlaceOrder(PlaceOrderRequest{
		Market:    market,
		Owner:     owner,
		Side:      side,
		Price:     price,
		Quantity:  qty,
		OrderID:   id,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("place order %d: %v", id, err)
	}
	return o
}

// balance reads an account balance and fails the test on error.
func balance(t *testing.T, l *ledger.Ledger, id string) uint64 {
	t.Helper()
	bal, err := l.Balance(id)
	if err != nil {
		t.Fatalf("balance %s: %v", id, err)
	}
	return bal
}
