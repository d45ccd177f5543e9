package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/ledgermatch/internal/domain"
	"github.com/efreitasn/ledgermatch/internal/service"
)

// TradeHandler handles HTTP requests for matching and trade history.
type TradeHandler struct {
	tradeSvc *service.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeSvc *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeSvc: tradeSvc}
}

// orderRefRequest names an order by market reference and id. Bid and
// ask carry full references so a cross-market pair is expressible
// (and rejected by the engine).
type orderRefRequest struct {
	Authority string `json:"authority"`
	Market    string `json:"market"`
	OrderID   uint64 `json:"order_id"`
}

// matchRequest is the JSON request body for POST /matches.
type matchRequest struct {
	Bid      orderRefRequest `json:"bid"`
	Ask      orderRefRequest `json:"ask"`
	BidOwner string          `json:"bid_owner"`
	AskOwner string          `json:"ask_owner"`
}

// tradeResponse is the JSON representation of an executed trade.
type tradeResponse struct {
	TradeID    string `json:"trade_id"`
	Market     string `json:"market"`
	BidOrderID uint64 `json:"bid_order_id"`
	AskOrderID uint64 `json:"ask_order_id"`
	Buyer      string `json:"buyer"`
	Seller     string `json:"seller"`
	Price      uint64 `json:"price"`
	Quantity   uint64 `json:"quantity"`
	ExecutedAt string `json:"executed_at"`
}

func buildTradeResponse(t *domain.Trade) tradeResponse {
	return tradeResponse{
		TradeID:    t.TradeID,
		Market:     t.Market,
		BidOrderID: t.BidOrderID,
		AskOrderID: t.AskOrderID,
		Buyer:      t.Buyer,
		Seller:     t.Seller,
		Price:      t.Price,
		Quantity:   t.Quantity,
		ExecutedAt: t.ExecutedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// Match handles POST /matches. Anyone with an identity may crank a
// match; the engine verifies the supplied owner identities against
// the order records.
func (h *TradeHandler) Match(w http.ResponseWriter, r *http.Request) {
	if _, ok := principal(r); !ok {
		WriteMissingPrincipal(w)
		return
	}

	var req matchRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	trade, err := h.tradeSvc.Match(service.MatchRequest{
		Bid: service.OrderRef{
			Authority: req.Bid.Authority,
			Market:    req.Bid.Market,
			OrderID:   req.Bid.OrderID,
		},
		Ask: service.OrderRef{
			Authority: req.Ask.Authority,
			Market:    req.Ask.Market,
			OrderID:   req.Ask.OrderID,
		},
		BidOwner: req.BidOwner,
		AskOwner: req.AskOwner,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildTradeResponse(trade))
}

// List handles GET /markets/{authority}/{name}/trades.
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	trades := h.tradeSvc.List(chi.URLParam(r, "authority"), chi.URLParam(r, "name"))

	result := make([]tradeResponse, len(trades))
	for i, t := range trades {
		result[i] = buildTradeResponse(t)
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"trades": result,
		"total":  len(result),
	})
}
