package enums

import "fmt"

// OrderItemStatus tracks fulfillment of a single order item. The first three
// values are derived from quantities; out_of_stock and discontinued are manual
// exception states that reconciliation never writes or clears.
type OrderItemStatus string

const (
	OrderItemStatusWaiting      OrderItemStatus = "waiting"
	OrderItemStatusPartial      OrderItemStatus = "partial"
	OrderItemStatusShipped      OrderItemStatus = "shipped"
	OrderItemStatusOutOfStock   OrderItemStatus = "out_of_stock"
	OrderItemStatusDiscontinued OrderItemStatus = "discontinued"
)

var validOrderItemStatuses = []OrderItemStatus{
	OrderItemStatusWaiting,
	OrderItemStatusPartial,
	OrderItemStatusShipped,
	OrderItemStatusOutOfStock,
	OrderItemStatusDiscontinued,
}

// String implements fmt.Stringer.
func (o OrderItemStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderItemStatus.
func (o OrderItemStatus) IsValid() bool {
	for _, candidate := range validOrderItemStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsException reports whether the status sits outside the quantity-driven
// machine (entered and left only by explicit staff action).
func (o OrderItemStatus) IsException() bool {
	return o == OrderItemStatusOutOfStock || o == OrderItemStatusDiscontinued
}

// ParseOrderItemStatus converts raw input into an OrderItemStatus.
func ParseOrderItemStatus(value string) (OrderItemStatus, error) {
	for _, candidate := range validOrderItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order item status %q", value)
}
