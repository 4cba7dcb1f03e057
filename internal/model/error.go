package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeIntegrityFault    = "INTEGRITY_FAULT"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure distinguishable from
// infrastructure errors by its code.
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
	ErrEmptyOrder           = NewDomainError(ErrCodeValidation, "Order must contain at least one item")
	ErrInvalidQuantity      = NewDomainError(ErrCodeValidation, "Quantity must be at least 1")
	ErrEmptyDeliveryAddress = NewDomainError(ErrCodeValidation, "Delivery address is required")
	ErrRestaurantInactive   = NewDomainError(ErrCodeValidation, "Restaurant is not currently accepting orders")
	ErrItemUnavailable      = NewDomainError(ErrCodeValidation, "One or more menu items are not available")
	ErrItemWrongRestaurant  = NewDomainError(ErrCodeValidation, "Menu item does not belong to the selected restaurant")
	ErrNotACustomer         = NewDomainError(ErrCodeValidation, "Orders can only be placed by customer accounts")
	ErrNotADeliveryPerson   = NewDomainError(ErrCodeValidation, "Assignee must be a delivery person account")
	ErrUnknownStatus        = NewDomainError(ErrCodeValidation, "Unknown order status")

	ErrOrderNotFound      = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrUserNotFound       = NewDomainError(ErrCodeNotFound, "User not found")
	ErrRestaurantNotFound = NewDomainError(ErrCodeNotFound, "Restaurant not found")
	ErrMenuItemNotFound   = NewDomainError(ErrCodeNotFound, "One or more menu items not found")
)

// NewInvalidTransition builds the error for an illegal status change.
func NewInvalidTransition(from, to OrderStatus) *DomainError {
	return NewDomainError(ErrCodeInvalidTransition,
		fmt.Sprintf("Cannot move order from %s to %s", from, to))
}

// NewIntegrityFault builds the error for a stored total that no longer
// matches its line items. This indicates a bug, never expected input.
func NewIntegrityFault(detail string) *DomainError {
	return NewDomainError(ErrCodeIntegrityFault, detail)
}

// ErrorCode extracts the domain error code from err, or
// ErrCodeInternalError when err is not a DomainError.
func ErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrCodeInternalError
}
