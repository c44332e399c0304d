package domain

import "time"

type CatalogImportMessage struct {
	TaskID        string `json:"task_id"`
	SpreadsheetID string `json:"spreadsheet_id"`
}

// MenuAuditEvent is published whenever an outlet's menu configuration
// changes. IDs travel as hex strings so the payload stays storage-agnostic.
type MenuAuditEvent struct {
	EventType  string    `json:"event_type"`
	OutletID   string    `json:"outlet_id"`
	MenuItemID string    `json:"menu_item_id"`
	OldPrice   *float64  `json:"old_price,omitempty"`
	NewPrice   *float64  `json:"new_price,omitempty"`
	Available  *bool     `json:"available,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	ActorID    string    `json:"actor_id"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	EventPriceApproved       = "price.approved"
	EventPriceRejected       = "price.rejected"
	EventAvailabilityChanged = "availability.changed"
)
