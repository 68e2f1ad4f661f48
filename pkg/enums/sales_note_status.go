package enums

import "fmt"

// SalesNoteStatus is the shipment-document lifecycle. Pool commits create
// notes already shipped; the draft path applies quantities only on the
// draft -> shipped transition. Received is terminal.
type SalesNoteStatus string

const (
	SalesNoteStatusDraft    SalesNoteStatus = "draft"
	SalesNoteStatusShipped  SalesNoteStatus = "shipped"
	SalesNoteStatusReceived SalesNoteStatus = "received"
)

var validSalesNoteStatuses = []SalesNoteStatus{
	SalesNoteStatusDraft,
	SalesNoteStatusShipped,
	SalesNoteStatusReceived,
}

// String implements fmt.Stringer.
func (s SalesNoteStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SalesNoteStatus.
func (s SalesNoteStatus) IsValid() bool {
	for _, candidate := range validSalesNoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// QuantitiesApplied reports whether notes in this status have already been
// counted into order item shipped quantities.
func (s SalesNoteStatus) QuantitiesApplied() bool {
	return s == SalesNoteStatusShipped || s == SalesNoteStatusReceived
}

// ParseSalesNoteStatus converts raw input into a SalesNoteStatus.
func ParseSalesNoteStatus(value string) (SalesNoteStatus, error) {
	for _, candidate := range validSalesNoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sales note status %q", value)
}
