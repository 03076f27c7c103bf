package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeUnauthorizedActor = "UNAUTHORIZED_ACTOR"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeEmptyOrder        = "EMPTY_ORDER"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeMenuItemNotFound  = "MENU_ITEM_NOT_FOUND"
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation surfaced to the caller.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	// ErrInvalidTransition: the requested edge is not in the lifecycle
	// graph, including any attempt to leave a terminal status.
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Requested status transition is not allowed from the order's current status")

	// ErrUnauthorizedActor: the edge exists but this role may not trigger it.
	ErrUnauthorizedActor = NewDomainError(ErrCodeUnauthorizedActor, "Actor role is not permitted to trigger this transition")

	ErrOrderNotFound = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrEmptyOrder    = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one item")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")

	// ErrConflict: the compare-and-set lost a race; the caller should
	// re-fetch the order and decide whether to retry.
	ErrConflict = NewDomainError(ErrCodeConflict, "Order status changed concurrently, re-fetch and retry")

	ErrMenuItemNotFound = NewDomainError(ErrCodeMenuItemNotFound, "One or more menu items not found")
)
