package service

import (
	"time"

	"github.com/efreitasn/ledgermatch/internal/domain"
	"github.com/efreitasn/ledgermatch/internal/engine"
	"github.com/efreitasn/ledgermatch/internal/journal"
)

// MarketService handles market creation and lookup.
type MarketService struct {
	engine  *engine.Engine
	journal *journal.Journal
}

// NewMarketService creates a new MarketService.
func NewMarketService(e *engine.Engine, j *journal.Journal) *MarketService {
	return &MarketService{
		engine:  e,
		journal: j,
	}
}

// Create registers a new market owned by the given authority.
func (s *MarketService) Create(authority, name string) (*domain.Market, error) {
	if !accountIDRegex.MatchString(authority) {
		return nil, &domain.ValidationError{
			Message: "authority must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if name == "" {
		return nil, &domain.ValidationError{
			Message: "name is required",
		}
	}

	createdAt := time.Now().UTC()
	market, err := s.engine.CreateMarket(authority, name, createdAt)
	if err != nil {
		return nil, err
	}

	if s.journal != nil {
		if err := s.journal.Append(journal.Entry{
			Type: journal.EntryMarketCreated,
			MarketCreated: &journal.MarketCreated{
				Authority: authority,
				Name:      name,
				CreatedAt: createdAt,
			},
		}); err != nil {
			return nil, err
		}
	}
	return market, nil
}

// Get retrieves a market by authority and name.
func (s *MarketService) Get(authority, name string) (*domain.Market, error) {
	return s.engine.GetMarket(domain.MarketAddress(authority, name))
}
