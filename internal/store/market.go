package store

import (
	"sync"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// MarketStore is a thread-safe in-memory store for market records,
// keyed by derived market address.
type MarketStore struct {
	mu      sync.RWMutex
	markets map[string]*domain.Market
}

// NewMarketStore creates an empty MarketStore.
func NewMarketStore() *MarketStore {
	return &MarketStore{
		markets: make(map[string]*domain.Market),
	}
}

// Create adds a market record. It returns
// domain.ErrMarketAlreadyExists if a record already occupies the
// market's derived address.
func (s *MarketStore) Create(m *domain.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr := m.Address()
	if _, exists := s.markets[addr]; exists {
		return domain.ErrMarketAlreadyExists
	}
	s.markets[addr] = m
	return nil
}

// Get retrieves a market by derived address. It returns
// domain.ErrMarketNotFound if no record exists at that address.
func (s *MarketStore) Get(addr string) (*domain.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.markets[addr]
	if !ok {
		return nil, domain.ErrMarketNotFound
	}
	return m, nil
}

// List returns all market records in unspecified order.
func (s *MarketStore) List() []*domain.Market {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Market, 0, len(s.markets))
	for _, m := range s.markets {
		result = append(result, m)
	}
	return result
}
