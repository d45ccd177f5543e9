package store

import (
	"sync"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// TradeStore is a thread-safe in-memory store for executed trades,
// keyed by market address. Trades are append-only and chronological.
type TradeStore struct {
	mu     sync.RWMutex
	trades map[string][]*domain.Trade // market address → trades
}

// NewTradeStore creates an empty TradeStore.
func NewTradeStore() *TradeStore {
	return &TradeStore{
		trades: make(map[string][]*domain.Trade),
	}
}

// Append adds a trade to the market's chronological list.
func (s *TradeStore) Append(t *domain.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades[t.Market] = append(s.trades[t.Market], t)
}

// ListByMarket returns all trades for a market in execution order.
// Returns an empty slice if the market has no trades.
func (s *TradeStore) ListByMarket(marketAddr string) []*domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := s.trades[marketAddr]
	if trades == nil {
		return []*domain.Trade{}
	}

	// Return a copy to avoid callers mutating the internal slice.
	result := make([]*domain.Trade, len(trades))
	copy(result, trades)
	return result
}
