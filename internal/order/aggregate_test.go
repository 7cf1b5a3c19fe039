package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func items(statuses ...ItemStatus) []OrderItem {
	res := make([]OrderItem, 0, len(statuses))
	for _, s := range statuses {
		res = append(res, OrderItem{Status: s})
	}
	return res
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		items    []OrderItem
		expected OrderStatus
	}{
		{"AllPending", items(ItemPending, ItemPending), StatusPending},
		{"OneDecidedOnePending", items(ItemApproved, ItemPending), StatusPending},
		{"RejectedAndPending", items(ItemRejected, ItemPending), StatusPending},
		{"AllApproved", items(ItemApproved, ItemApproved), StatusCompleted},
		{"SingleApproved", items(ItemApproved), StatusCompleted},
		{"AllRejected", items(ItemRejected, ItemRejected), StatusRejected},
		{"SingleRejected", items(ItemRejected), StatusRejected},
		{"Mixed", items(ItemApproved, ItemRejected), StatusPartiallyCompleted},
		{"MixedMany", items(ItemApproved, ItemRejected, ItemApproved), StatusPartiallyCompleted},
		{"NoItems", nil, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AggregateStatus(tt.items))
		})
	}
}

func TestAggregateStatus_Idempotent(t *testing.T) {
	decided := items(ItemApproved, ItemRejected)

	first := AggregateStatus(decided)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, AggregateStatus(decided))
	}
}
