package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/ledgermatch/internal/domain"
	"github.com/efreitasn/ledgermatch/internal/service"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// placeOrderRequest is the JSON request body for placing an order.
// The order id must equal the market's current next_order_id.
type placeOrderRequest struct {
	Side     string `json:"side"`
	Price    uint64 `json:"price"`
	Quantity uint64 `json:"quantity"`
	OrderID  uint64 `json:"order_id"`
}

// orderResponse is the JSON representation of an order record.
type orderResponse struct {
	OrderID           uint64 `json:"order_id"`
	Owner             string `json:"owner"`
	Market            string `json:"market"`
	Side              string `json:"side"`
	Price             uint64 `json:"price"`
	Quantity          uint64 `json:"quantity"`
	FilledQuantity    uint64 `json:"filled_quantity"`
	RemainingQuantity uint64 `json:"remaining_quantity"`
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
}

// cancelOrderResponse is the JSON response for a cancellation,
// including the escrow refund (always zero for sells).
type cancelOrderResponse struct {
	Order  orderResponse `json:"order"`
	Refund uint64        `json:"refund"`
}

// closeOrderResponse is the JSON response for a closure.
type closeOrderResponse struct {
	Reclaimed uint64 `json:"reclaimed"`
}

func buildOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		OrderID:           o.OrderID,
		Owner:             o.Owner,
		Market:            o.Market,
		Side:              string(o.Side),
		Price:             o.Price,
		Quantity:          o.Quantity,
		FilledQuantity:    o.FilledQuantity,
		RemainingQuantity: o.RemainingQuantity(),
		Status:            string(o.Status),
		Timestamp:         o.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// orderID parses the order_id URL parameter.
func orderID(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "order_id"), 10, 64)
	return id, err == nil
}

// Place handles POST /markets/{authority}/{name}/orders. The owner is
// the invoking principal.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(r)
	if !ok {
		WriteMissingPrincipal(w)
		return
	}

	var req placeOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	order, err := h.orderSvc.Place(service.PlaceOrderRequest{
		Authority: chi.URLParam(r, "authority"),
		Market:    chi.URLParam(r, "name"),
		Owner:     owner,
		Side:      domain.Side(req.Side),
		Price:     req.Price,
		Quantity:  req.Quantity,
		OrderID:   req.OrderID,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildOrderResponse(order))
}

// Get handles GET /markets/{authority}/{name}/orders/{order_id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid_request", "order_id must be an unsigned integer")
		return
	}

	order, err := h.orderSvc.Get(chi.URLParam(r, "authority"), chi.URLParam(r, "name"), id)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildOrderResponse(order))
}

// List handles GET /markets/{authority}/{name}/orders with an
// optional owner filter.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders := h.orderSvc.List(
		chi.URLParam(r, "authority"),
		chi.URLParam(r, "name"),
		r.URL.Query().Get("owner"),
	)

	result := make([]orderResponse, len(orders))
	for i, o := range orders {
		result[i] = buildOrderResponse(o)
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"orders": result,
		"total":  len(result),
	})
}

// Cancel handles DELETE /markets/{authority}/{name}/orders/{order_id}.
// Only the order's owner may cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(r)
	if !ok {
		WriteMissingPrincipal(w)
		return
	}

	id, ok := orderID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid_request", "order_id must be an unsigned integer")
		return
	}

	order, refund, err := h.orderSvc.Cancel(chi.URLParam(r, "authority"), chi.URLParam(r, "name"), id, caller)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, cancelOrderResponse{
		Order:  buildOrderResponse(order),
		Refund: refund,
	})
}

// Close handles POST /markets/{authority}/{name}/orders/{order_id}/close.
// Only the order's owner may close, and only once the order is filled
// or cancelled.
func (h *OrderHandler) Close(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(r)
	if !ok {
		WriteMissingPrincipal(w)
		return
	}

	id, ok := orderID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid_request", "order_id must be an unsigned integer")
		return
	}

	reclaimed, err := h.orderSvc.Close(chi.URLParam(r, "authority"), chi.URLParam(r, "name"), id, caller)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, closeOrderResponse{Reclaimed: reclaimed})
}
