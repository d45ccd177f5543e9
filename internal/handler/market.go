package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/ledgermatch/internal/domain"
	"github.com/efreitasn/ledgermatch/internal/service"
)

// MarketHandler handles HTTP requests for market endpoints.
type MarketHandler struct {
	marketSvc *service.MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketSvc *service.MarketService) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// createMarketRequest is the JSON request body for POST /markets.
type createMarketRequest struct {
	Name string `json:"name"`
}

// marketResponse is the JSON representation of a market record.
type marketResponse struct {
	Authority      string `json:"authority"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	NextOrderID    uint64 `json:"next_order_id"`
	TotalBidVolume uint64 `json:"total_bid_volume"`
	TotalAskVolume uint64 `json:"total_ask_volume"`
	CreatedAt      string `json:"created_at"`
}

func buildMarketResponse(m *domain.Market) marketResponse {
	return marketResponse{
		Authority:      m.Authority,
		Name:           m.Name,
		Address:        m.Address(),
		NextOrderID:    m.NextOrderID,
		TotalBidVolume: m.TotalBidVolume,
		TotalAskVolume: m.TotalAskVolume,
		CreatedAt:      m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// Create handles POST /markets. The authority is the invoking
// principal.
func (h *MarketHandler) Create(w http.ResponseWriter, r *http.Request) {
	authority, ok := principal(r)
	if !ok {
		WriteMissingPrincipal(w)
		return
	}

	var req createMarketRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	market, err := h.marketSvc.Create(authority, req.Name)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildMarketResponse(market))
}

// Get handles GET /markets/{authority}/{name}.
func (h *MarketHandler) Get(w http.ResponseWriter, r *http.Request) {
	authority := chi.URLParam(r, "authority")
	name := chi.URLParam(r, "name")

	market, err := h.marketSvc.Get(authority, name)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildMarketResponse(market))
}
