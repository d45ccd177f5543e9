// Package engine implements the order lifecycle state machine and the
// escrow/settlement protocol. Every operation validates fully before
// mutating anything: a rejected operation leaves no observable change
// in any record or balance.
package engine

import (
	"sync"

	"github.com/efreitasn/ledgermatch/internal/ledger"
	"github.com/efreitasn/ledgermatch/internal/store"
)

// Engine executes the four core operations (place, match, cancel,
// close) plus market creation against the record stores and the fund
// ledger. Operations on the same market are serialized by a per-market
// lock; operations on disjoint markets run concurrently.
type Engine struct {
	markets *store.MarketStore
	orders  *store.OrderStore
	trades  *store.TradeStore
	ledger  *ledger.Ledger
	deposit uint64 // storage deposit locked per order record

	mu    sync.Mutex
	locks map[string]*sync.Mutex // market address → lock
}

// New creates an Engine. deposit is the amount of base units locked
// in each order's escrow account at placement and returned at closure.
func New(
	markets *store.MarketStore,
	orders *store.OrderStore,
	trades *store.TradeStore,
	l *ledger.Ledger,
	deposit uint64,
) *Engine {
	return &Engine{
		markets: markets,
		orders:  orders,
		trades:  trades,
		ledger:  l,
		deposit: deposit,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Ledger exposes the fund ledger for balance queries.
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// marketLock returns the mutex guarding a market, creating it on
// first use.
func (e *Engine) marketLock(addr string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.locks[addr]
	if !ok {
		l = &sync.Mutex{}
		e.locks[addr] = l
	}
	return l
}

// lockMarkets acquires the locks for up to two markets in address
// order, so two matches naming the same pair of markets can never
// deadlock. The returned func releases them.
func (e *Engine) lockMarkets(a, b string) func() {
	if a == b {
		l := e.marketLock(a)
		l.Lock()
		return l.Unlock
	}
	if b < a {
		a, b = b, a
	}
	la, lb := e.marketLock(a), e.marketLock(b)
	la.Lock()
	lb.Lock()
	return func() {
		lb.Unlock()
		la.Unlock()
	}
}
