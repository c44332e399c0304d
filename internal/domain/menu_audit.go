package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuAudit is one recorded change to an outlet's menu configuration:
// a decided price request or an availability toggle. Written by the audit
// worker from queue events; never read by the governance path.
type MenuAudit struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventType  string             `bson:"event_type" json:"event_type"`
	OutletID   primitive.ObjectID `bson:"outlet_id" json:"outlet_id"`
	MenuItemID primitive.ObjectID `bson:"menu_item_id" json:"menu_item_id"`
	OldPrice   *float64           `bson:"old_price,omitempty" json:"old_price,omitempty"`
	NewPrice   *float64           `bson:"new_price,omitempty" json:"new_price,omitempty"`
	Available  *bool              `bson:"available,omitempty" json:"available,omitempty"`
	Reason     string             `bson:"reason,omitempty" json:"reason,omitempty"`
	ActorID    primitive.ObjectID `bson:"actor_id" json:"actor_id"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
