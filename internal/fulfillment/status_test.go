package fulfillment

import (
	"testing"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

func TestReconcileItemStatus(t *testing.T) {
	cases := []struct {
		name    string
		current enums.OrderItemStatus
		shipped int
		ordered int
		want    enums.OrderItemStatus
	}{
		{"nothing shipped", enums.OrderItemStatusWaiting, 0, 10, enums.OrderItemStatusWaiting},
		{"partially shipped", enums.OrderItemStatusWaiting, 3, 10, enums.OrderItemStatusPartial},
		{"fully shipped", enums.OrderItemStatusPartial, 10, 10, enums.OrderItemStatusShipped},
		{"over shipped clamps to shipped", enums.OrderItemStatusPartial, 12, 10, enums.OrderItemStatusShipped},
		{"partial back to waiting after rollback", enums.OrderItemStatusPartial, 0, 10, enums.OrderItemStatusWaiting},
		{"shipped back to partial after rollback", enums.OrderItemStatusShipped, 4, 10, enums.OrderItemStatusPartial},
		{"out of stock is sticky", enums.OrderItemStatusOutOfStock, 10, 10, enums.OrderItemStatusOutOfStock},
		{"discontinued is sticky", enums.OrderItemStatusDiscontinued, 3, 10, enums.OrderItemStatusDiscontinued},
		{"zero ordered never shipped", enums.OrderItemStatusWaiting, 0, 0, enums.OrderItemStatusWaiting},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReconcileItemStatus(tc.current, tc.shipped, tc.ordered); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestOrderFullyShipped(t *testing.T) {
	if OrderFullyShipped(nil) {
		t.Fatalf("empty order must not be fully shipped")
	}
	if OrderFullyShipped([]enums.OrderItemStatus{}) {
		t.Fatalf("zero-item order must not be fully shipped")
	}
	all := []enums.OrderItemStatus{enums.OrderItemStatusShipped, enums.OrderItemStatusShipped}
	if !OrderFullyShipped(all) {
		t.Fatalf("all shipped items should roll up as fully shipped")
	}
	mixed := []enums.OrderItemStatus{enums.OrderItemStatusShipped, enums.OrderItemStatusPartial}
	if OrderFullyShipped(mixed) {
		t.Fatalf("partial item must block the rollup")
	}
	exception := []enums.OrderItemStatus{enums.OrderItemStatusShipped, enums.OrderItemStatusOutOfStock}
	if OrderFullyShipped(exception) {
		t.Fatalf("exception item must block the rollup")
	}
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus([]enums.OrderItemStatus{
		enums.OrderItemStatusWaiting,
		enums.OrderItemStatusWaiting,
		enums.OrderItemStatusShipped,
		enums.OrderItemStatusDiscontinued,
	})
	if counts[enums.OrderItemStatusWaiting] != 2 {
		t.Fatalf("expected 2 waiting, got %d", counts[enums.OrderItemStatusWaiting])
	}
	if counts[enums.OrderItemStatusShipped] != 1 {
		t.Fatalf("expected 1 shipped, got %d", counts[enums.OrderItemStatusShipped])
	}
	if counts[enums.OrderItemStatusDiscontinued] != 1 {
		t.Fatalf("expected 1 discontinued, got %d", counts[enums.OrderItemStatusDiscontinued])
	}
	if counts[enums.OrderItemStatusPartial] != 0 {
		t.Fatalf("expected no partial entries")
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(10, 3, 2); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := Remaining(10, 10, 0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := Remaining(10, 8, 5); got != 0 {
		t.Fatalf("negative headroom must floor at 0, got %d", got)
	}
}
