package order

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrRoleViolation   = errors.New("actor role not allowed for this operation")
	ErrNotOrderOwner   = errors.New("order does not belong to consumer")
	ErrNotItemOwner    = errors.New("order item does not belong to producer")
	ErrForbidden       = errors.New("forbidden")

	// -- Resource State --
	ErrOrderNotFound     = errors.New("order not found")
	ErrItemNotFound      = errors.New("order item not found")
	ErrAddressNotFound   = errors.New("address not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidTransition = errors.New("invalid status transition")

	// -- Validation & Input --
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrInsufficientStock  = errors.New("insufficient product quantity")
	ErrFrequencyRequired  = errors.New("frequency is required for recurring orders")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrCustomDaysRequired = errors.New("custom days must be a positive integer")
	ErrReasonRequired     = errors.New("rejection reason is required")
	ErrInvalidDecision    = errors.New("decision must be APPROVED or REJECTED")
	ErrNothingToUpdate    = errors.New("at least one of action or recurrence fields is required")
)
