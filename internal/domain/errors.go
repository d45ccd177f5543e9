package domain

import "errors"

// Sentinel errors for domain-level error handling. The handler layer
// maps these to HTTP status codes. Input-validation, authorization,
// and state errors are distinct so a caller can tell "fix the request"
// from "you may not do this" from "re-read and retry".
var (
	// Input validation.
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidOrderID    = errors.New("invalid_order_id")
	ErrInvalidOrderSide  = errors.New("invalid_order_side")
	ErrMarketNameTooLong = errors.New("market_name_too_long")
	ErrPriceMismatch     = errors.New("price_mismatch")
	ErrMarketMismatch    = errors.New("market_mismatch")

	// Authorization.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrBidOwnerMismatch = errors.New("bid_owner_mismatch")
	ErrAskOwnerMismatch = errors.New("ask_owner_mismatch")

	// State.
	ErrOrderNotActive = errors.New("order_not_active")
	ErrOrderNotClosed = errors.New("order_not_closed")

	// Arithmetic.
	ErrMathOverflow = errors.New("math_overflow")

	// Records and accounts.
	ErrMarketNotFound       = errors.New("market_not_found")
	ErrMarketAlreadyExists  = errors.New("market_already_exists")
	ErrOrderNotFound        = errors.New("order_not_found")
	ErrAccountNotFound      = errors.New("account_not_found")
	ErrAccountAlreadyExists = errors.New("account_already_exists")
	ErrInsufficientBalance  = errors.New("insufficient_balance")
	ErrWebhookNotFound      = errors.New("webhook_not_found")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
