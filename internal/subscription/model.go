package subscription

import (
	"time"

	"agrolink-be/internal/order"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPaused    Status = "PAUSED"
	StatusCancelled Status = "CANCELLED"
)

// Subscription is tied 1:1 to a completed order. It carries its own
// recurrence fields, independent of the order's own recurring flags.
type Subscription struct {
	ID         uuid.UUID
	ConsumerID uint
	OrderID    uuid.UUID
	Status     Status

	Frequency        order.Frequency
	NextDeliveryDate time.Time

	PausedAt    *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
