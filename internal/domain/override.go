package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OutletItemOverride is the per-(outlet, item) exception record. At most one
// exists per pair, created lazily on the first availability toggle or the
// first approved price change. CustomPrice == nil means "use base price".
type OutletItemOverride struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OutletID    primitive.ObjectID `bson:"outlet_id" json:"outlet_id"`
	MenuItemID  primitive.ObjectID `bson:"menu_item_id" json:"menu_item_id"`
	CustomPrice *float64           `bson:"custom_price" json:"custom_price"`
	IsAvailable bool               `bson:"is_available" json:"is_available"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
