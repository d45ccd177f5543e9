package engine

import (
	"time"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// CreateMarket registers a new market record at its derived address.
// The authority must hold a ledger account. Name length is the only
// other validation; counters start at zero.
func (e *Engine) CreateMarket(authority, name string, createdAt time.Time) (*domain.Market, error) {
	if len(name) > domain.MaxMarketNameLen {
		return nil, domain.ErrMarketNameTooLong
	}
	if !e.ledger.Exists(authority) {
		return nil, domain.ErrAccountNotFound
	}

	market := &domain.Market{
		Authority: authority,
		Name:      name,
		CreatedAt: createdAt,
	}
	if err := e.markets.Create(market); err != nil {
		return nil, err
	}
	return market, nil
}

// GetMarket retrieves a market record by derived address.
func (e *Engine) GetMarket(addr string) (*domain.Market, error) {
	return e.markets.Get(addr)
}
