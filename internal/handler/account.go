package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/ledgermatch/internal/service"
)

// AccountHandler handles HTTP requests for account endpoints.
type AccountHandler struct {
	accountSvc *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc *service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// registerAccountRequest is the JSON request body for POST /accounts.
type registerAccountRequest struct {
	AccountID      string `json:"account_id"`
	InitialBalance uint64 `json:"initial_balance"`
}

// balanceResponse is the JSON response for balance queries.
type balanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   uint64 `json:"balance"`
}

// Register handles POST /accounts.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerAccountRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.accountSvc.Register(req.AccountID, req.InitialBalance); err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, balanceResponse{
		AccountID: req.AccountID,
		Balance:   req.InitialBalance,
	})
}

// GetBalance handles GET /accounts/{account_id}/balance.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "account_id")

	balance, err := h.accountSvc.GetBalance(accountID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, balanceResponse{
		AccountID: accountID,
		Balance:   balance,
	})
}
