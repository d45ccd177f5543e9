package store

import (
	"sync"

	"github.com/google/btree"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// orderKey orders the per-market index by order id ascending, so
// iteration yields orders in placement order.
type orderKey struct {
	OrderID uint64
	Order   *domain.Order
}

func orderLess(a, b orderKey) bool {
	return a.OrderID < b.OrderID
}

// OrderStore is a thread-safe in-memory store for order records, with
// a primary index by derived order address and a B-tree secondary
// index per market ordered by order id. Records are removed only by
// closure.
type OrderStore struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Order             // address → order
	byMarket map[string]*btree.BTreeG[orderKey]   // market address → id-ordered index
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:   make(map[string]*domain.Order),
		byMarket: make(map[string]*btree.BTreeG[orderKey]),
	}
}

// Create adds an order record at its derived address and inserts it
// into the market's id-ordered index.
func (s *OrderStore) Create(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.Address()] = o

	idx, ok := s.byMarket[o.Market]
	if !ok {
		const degree = 32
		idx = btree.NewG[orderKey](degree, orderLess)
		s.byMarket[o.Market] = idx
	}
	idx.ReplaceOrInsert(orderKey{OrderID: o.OrderID, Order: o})
}

// Get retrieves an order by derived address. It returns
// domain.ErrOrderNotFound if no record exists at that address.
func (s *OrderStore) Get(addr string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[addr]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// Delete destroys an order record, removing it from both indexes.
// It returns domain.ErrOrderNotFound if no record exists.
func (s *OrderStore) Delete(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[addr]
	if !ok {
		return domain.ErrOrderNotFound
	}
	delete(s.orders, addr)

	if idx, ok := s.byMarket[o.Market]; ok {
		idx.Delete(orderKey{OrderID: o.OrderID})
		if idx.Len() == 0 {
			delete(s.byMarket, o.Market)
		}
	}
	return nil
}

// ListByMarket returns the market's orders in ascending id order. If
// owner is non-empty, only that owner's orders are included.
func (s *OrderStore) ListByMarket(marketAddr, owner string) []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*domain.Order{}
	idx, ok := s.byMarket[marketAddr]
	if !ok {
		return result
	}
	idx.Ascend(func(k orderKey) bool {
		if owner == "" || k.Order.Owner == owner {
			result = append(result, k.Order)
		}
		return true
	})
	return result
}
