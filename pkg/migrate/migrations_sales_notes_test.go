package migrate_test

import (
	"strings"
	"testing"
)

func TestSalesNotesMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_sales_notes.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS sales_notes",
		"CREATE TABLE IF NOT EXISTS sales_note_items",
		"FOREIGN KEY (sales_note_id) REFERENCES sales_notes(id) ON DELETE CASCADE",
		"FOREIGN KEY (order_item_id) REFERENCES order_items(id)",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS sales_note_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOutboxMigrationGuardsDuplicateFullyShipped(t *testing.T) {
	content := readMigration(t, "*_outbox.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS outbox_events",
		"ux_outbox_events_event_aggregate",
		"WHERE published_at IS NULL",
		"CREATE TABLE IF NOT EXISTS outbox_dlq",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
