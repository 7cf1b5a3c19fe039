package order

// AggregateStatus derives an order's status from the multiset of its item
// statuses. The rule is pure and idempotent: while any item is still
// pending the order stays open; once every item is decided the order is
// completed, rejected, or partially completed.
//
// Paused and cancelled are never produced here; they are entered only by
// explicit consumer action.
func AggregateStatus(items []OrderItem) OrderStatus {
	if len(items) == 0 {
		return StatusPending
	}

	var pending, approved, rejected int
	for _, it := range items {
		switch it.Status {
		case ItemPending:
			pending++
		case ItemApproved:
			approved++
		case ItemRejected:
			rejected++
		}
	}

	switch {
	case pending > 0:
		return StatusPending
	case rejected == 0:
		return StatusCompleted
	case approved == 0:
		return StatusRejected
	default:
		return StatusPartiallyCompleted
	}
}
