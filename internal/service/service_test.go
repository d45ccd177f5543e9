package service

import (
	"testing"

	"github.com/efreitasn/ledgermatch/internal/engine"
	"github.com/efreitasn/ledgermatch/internal/ledger"
	"github.com/efreitasn/ledgermatch/internal/store"
)

const testDeposit = 1000

// newTestEngine creates an engine and ledger with fresh stores.
func newTestEngine(t *testing.T) (*engine.Engine, *ledger.Ledger) {
	t.Helper()
	l := ledger.New()
	e := engine.New(store.NewMarketStore(), store.NewOrderStore(), store.NewTradeStore(), l, testDeposit)
	return e, l
}

// newTestServices wires the full service layer over a fresh engine,
// without journal, webhooks, or feed.
func newTestServices(t *testing.T) (*AccountService, *MarketService, *OrderService, *TradeService, *ledger.Ledger) {
	t.Helper()
	e, l := newTestEngine(t)
	return NewAccountService(l, nil),
		NewMarketService(e, nil),
		NewOrderService(e, nil, nil, nil),
		NewTradeService(e, nil, nil, nil),
		l
}
