package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standard error response with the given status
// code, error code, and human-readable message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// ParseJSON decodes the request body as JSON into v, rejecting
// unknown fields and non-JSON content types.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	return nil
}

// principal extracts the invoking identity from the X-Account-Id
// header. Identity verification itself is the deployment's concern;
// the engine only checks the supplied identity against stored owner
// fields.
func principal(r *http.Request) (string, bool) {
	id := r.Header.Get("X-Account-Id")
	return id, id != ""
}

// WriteMissingPrincipal rejects a request that lacks the identity
// header.
func WriteMissingPrincipal(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "missing_identity", "X-Account-Id header is required")
}

// mapDomainError maps domain errors to HTTP responses. Validation
// errors are the caller's to fix (400), authorization failures are
// forbidden (403), missing records are 404, and state conflicts are
// 409 so the caller knows to re-read and retry.
func mapDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidOrderSide),
		errors.Is(err, domain.ErrMarketNameTooLong),
		errors.Is(err, domain.ErrMathOverflow):
		WriteError(w, http.StatusBadRequest, err.Error(), err.Error())

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrBidOwnerMismatch),
		errors.Is(err, domain.ErrAskOwnerMismatch):
		WriteError(w, http.StatusForbidden, err.Error(), err.Error())

	case errors.Is(err, domain.ErrMarketNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrWebhookNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), err.Error())

	case errors.Is(err, domain.ErrInvalidOrderID),
		errors.Is(err, domain.ErrPriceMismatch),
		errors.Is(err, domain.ErrMarketMismatch),
		errors.Is(err, domain.ErrOrderNotActive),
		errors.Is(err, domain.ErrOrderNotClosed),
		errors.Is(err, domain.ErrMarketAlreadyExists),
		errors.Is(err, domain.ErrAccountAlreadyExists),
		errors.Is(err, domain.ErrInsufficientBalance):
		WriteError(w, http.StatusConflict, err.Error(), err.Error())

	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
