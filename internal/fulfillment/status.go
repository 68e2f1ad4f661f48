package fulfillment

import "github.com/ocampodev/supplyline-backend/pkg/enums"

// ReconcileItemStatus derives an item's status from its quantities. Exception
// statuses are sticky: only explicit staff action moves an item out of
// out_of_stock or discontinued.
func ReconcileItemStatus(current enums.OrderItemStatus, shipped, ordered int) enums.OrderItemStatus {
	if current.IsException() {
		return current
	}
	switch {
	case ordered > 0 && shipped >= ordered:
		return enums.OrderItemStatusShipped
	case shipped > 0:
		return enums.OrderItemStatusPartial
	default:
		return enums.OrderItemStatusWaiting
	}
}

// OrderFullyShipped reports whether every item of a non-empty order is shipped.
func OrderFullyShipped(statuses []enums.OrderItemStatus) bool {
	if len(statuses) == 0 {
		return false
	}
	for _, status := range statuses {
		if status != enums.OrderItemStatusShipped {
			return false
		}
	}
	return true
}

// CountByStatus projects item statuses into per-status counts for order DTOs.
func CountByStatus(statuses []enums.OrderItemStatus) map[enums.OrderItemStatus]int {
	counts := make(map[enums.OrderItemStatus]int, len(statuses))
	for _, status := range statuses {
		counts[status]++
	}
	return counts
}

// Remaining returns the ship-able headroom of an item, floored at zero.
func Remaining(ordered, shipped, pooled int) int {
	remaining := ordered - shipped - pooled
	if remaining < 0 {
		return 0
	}
	return remaining
}
