package transport

import (
	"time"

	"agrolink-be/internal/order"
	"agrolink-be/internal/subscription"
)

type orderItemResponse struct {
	ID              string     `json:"id"`
	OrderID         string     `json:"order_id"`
	ProductID       string     `json:"product_id"`
	ProducerID      uint       `json:"producer_id"`
	ProductTitle    string     `json:"product_title"`
	Quantity        int        `json:"quantity"`
	UnitPrice       string     `json:"unit_price"`
	TotalPrice      string     `json:"total_price"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	ConsumerID       uint                `json:"consumer_id"`
	AddressID        string              `json:"address_id"`
	TotalAmount      string              `json:"total_amount"`
	Status           string              `json:"status"`
	IsRecurring      bool                `json:"is_recurring"`
	Frequency        *order.Frequency    `json:"frequency,omitempty"`
	CustomDays       *int                `json:"custom_days,omitempty"`
	NextDeliveryDate *time.Time          `json:"next_delivery_date,omitempty"`
	PausedAt         *time.Time          `json:"paused_at,omitempty"`
	CancelledAt      *time.Time          `json:"cancelled_at,omitempty"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Items            []orderItemResponse `json:"items,omitempty"`
}

type paginationResponse struct {
	Limit   int32 `json:"limit"`
	Offset  int32 `json:"offset"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"has_next"`
}

func toItemResponse(item *order.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:              item.ID.String(),
		OrderID:         item.OrderID.String(),
		ProductID:       item.ProductID.String(),
		ProducerID:      item.ProducerID,
		ProductTitle:    item.ProductTitle,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice.StringFixed(2),
		TotalPrice:      item.TotalPrice.StringFixed(2),
		Status:          string(item.Status),
		RejectionReason: item.RejectionReason,
		UpdatedAt:       item.UpdatedAt,
	}
}

func toOrderResponse(o *order.Order) orderResponse {
	resp := orderResponse{
		ID:               o.ID.String(),
		ConsumerID:       o.ConsumerID,
		AddressID:        o.AddressID.String(),
		TotalAmount:      o.TotalAmount.StringFixed(2),
		Status:           string(o.Status),
		IsRecurring:      o.IsRecurring,
		Frequency:        o.Frequency,
		CustomDays:       o.CustomDays,
		NextDeliveryDate: o.NextDeliveryDate,
		PausedAt:         o.PausedAt,
		CancelledAt:      o.CancelledAt,
		CompletedAt:      o.CompletedAt,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for i := range o.Items {
		resp.Items = append(resp.Items, toItemResponse(&o.Items[i]))
	}
	return resp
}

func toPaginationResponse(p order.Pagination) paginationResponse {
	return paginationResponse{
		Limit:   p.Limit,
		Offset:  p.Offset,
		Total:   p.Total,
		HasNext: p.HasNext,
	}
}

type subscriptionResponse struct {
	ID               string     `json:"id"`
	ConsumerID       uint       `json:"consumer_id"`
	OrderID          string     `json:"order_id"`
	Status           string     `json:"status"`
	Frequency        string     `json:"frequency"`
	NextDeliveryDate time.Time  `json:"next_delivery_date"`
	PausedAt         *time.Time `json:"paused_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toSubscriptionResponse(s *subscription.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:               s.ID.String(),
		ConsumerID:       s.ConsumerID,
		OrderID:          s.OrderID.String(),
		Status:           string(s.Status),
		Frequency:        string(s.Frequency),
		NextDeliveryDate: s.NextDeliveryDate,
		PausedAt:         s.PausedAt,
		CancelledAt:      s.CancelledAt,
		CreatedAt:        s.CreatedAt,
	}
}
