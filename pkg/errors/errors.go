package errors

import "fmt"

// ErrNotFound is returned when a resource does not exist.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrInvalidStateTransition is returned when an order status change is not allowed.
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrInvalidPromoCode is returned when a promo code is not in the configured table.
type ErrInvalidPromoCode struct {
	Code string
}

func (e *ErrInvalidPromoCode) Error() string {
	return fmt.Sprintf("invalid promo code: %s", e.Code)
}
