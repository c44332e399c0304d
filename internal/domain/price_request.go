package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PriceRequestStatus string

const (
	PriceRequestPending  PriceRequestStatus = "pending"
	PriceRequestApproved PriceRequestStatus = "approved"
	PriceRequestRejected PriceRequestStatus = "rejected"
)

func (s PriceRequestStatus) Valid() bool {
	switch s {
	case PriceRequestPending, PriceRequestApproved, PriceRequestRejected:
		return true
	}
	return false
}

// PriceChangeRequest is a manager's proposal to change one outlet's price for
// one catalog item. It is born pending and moves exactly once to approved or
// rejected. CurrentPrice and MenuItemName are snapshots taken at creation so
// the audit trail stays meaningful if the catalog changes later.
type PriceChangeRequest struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OutletID        primitive.ObjectID  `bson:"outlet_id" json:"outlet_id"`
	MenuItemID      primitive.ObjectID  `bson:"menu_item_id" json:"menu_item_id"`
	ManagerID       primitive.ObjectID  `bson:"manager_id" json:"manager_id"`
	ManagerName     string              `bson:"manager_name" json:"manager_name"`
	MenuItemName    string              `bson:"menu_item_name" json:"menu_item_name"`
	CurrentPrice    float64             `bson:"current_price" json:"current_price"`
	ProposedPrice   float64             `bson:"proposed_price" json:"proposed_price"`
	Status          PriceRequestStatus  `bson:"status" json:"status"`
	RejectionReason string              `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	DecidedBy       *primitive.ObjectID `bson:"decided_by,omitempty" json:"decided_by,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}
