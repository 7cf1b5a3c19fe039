package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending            OrderStatus = "PENDING"
	StatusCompleted          OrderStatus = "COMPLETED"
	StatusRejected           OrderStatus = "REJECTED"
	StatusPartiallyCompleted OrderStatus = "PARTIALLY_COMPLETED"
	StatusPaused             OrderStatus = "PAUSED"
	StatusCancelled          OrderStatus = "CANCELLED"
)

type ItemStatus string

const (
	ItemPending  ItemStatus = "PENDING"
	ItemApproved ItemStatus = "APPROVED"
	ItemRejected ItemStatus = "REJECTED"
)

type Frequency string

const (
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyBiweekly  Frequency = "BIWEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyCustom    Frequency = "CUSTOM"
)

// Valid reports whether the frequency is one of the closed set.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly, FrequencyCustom:
		return true
	}
	return false
}

type Action string

const (
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionCancel Action = "cancel"
)

type Order struct {
	ID          uuid.UUID
	ConsumerID  uint
	AddressID   uuid.UUID
	TotalAmount decimal.Decimal
	Status      OrderStatus

	IsRecurring      bool
	Frequency        *Frequency
	CustomDays       *int
	NextDeliveryDate *time.Time

	PausedAt    *time.Time
	CancelledAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItem
}

type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ProductID  uuid.UUID
	ProducerID uint

	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal

	Status          ItemStatus
	RejectionReason *string

	// Denormalized for listings; the producer id copy above is the
	// authoritative ownership reference even if the product is later
	// reassigned or deactivated.
	ProductTitle string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateOrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderInput struct {
	AddressID   uuid.UUID
	Items       []CreateOrderItemInput
	IsRecurring bool
	Frequency   *Frequency
	CustomDays  *int
}

// ManageOrderInput carries an optional lifecycle action and an optional
// partial recurrence patch. At least one field must be set.
type ManageOrderInput struct {
	Action      *Action
	IsRecurring *bool
	Frequency   *Frequency
	CustomDays  *int
}

func (in ManageOrderInput) Empty() bool {
	return in.Action == nil && in.IsRecurring == nil &&
		in.Frequency == nil && in.CustomDays == nil
}

type OrderFilter struct {
	Status *OrderStatus
	Search *string
}

type ItemFilter struct {
	Status *ItemStatus
	Search *string
}

// ListScope restricts a listing to the actor's visibility. Both fields nil
// means admin (unrestricted).
type ListScope struct {
	ConsumerID *uint
	ProducerID *uint
}

type Pagination struct {
	Limit   int32
	Offset  int32
	Total   int64
	HasNext bool
}

type OrderList struct {
	Orders     []*Order
	Pagination Pagination
}

type OrderItemGroup struct {
	OrderID uuid.UUID
	Items   []*OrderItem
}

type ProducerItemList struct {
	Groups     []*OrderItemGroup
	Pagination Pagination
}
