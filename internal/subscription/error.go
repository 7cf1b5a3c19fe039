package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNotSubscriptionOwner = errors.New("subscription does not belong to consumer")
	ErrAlreadySubscribed    = errors.New("order already has a subscription")
	ErrOrderNotCompleted    = errors.New("subscription requires a completed order")
	ErrInvalidFrequency     = errors.New("subscription frequency must be WEEKLY, BIWEEKLY, MONTHLY or QUARTERLY")
	ErrInvalidTransition    = errors.New("invalid subscription status transition")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
