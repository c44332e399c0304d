package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPlaced         OrderStatus = "placed"
	OrderCooking        OrderStatus = "cooking"
	OrderReady          OrderStatus = "ready"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderCompleted      OrderStatus = "completed"
	OrderCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPlaced, OrderCooking, OrderReady, OrderOutForDelivery, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// ActiveOrderStatuses are the states an order can be in before it is closed.
var ActiveOrderStatuses = []OrderStatus{OrderPlaced, OrderCooking, OrderReady, OrderOutForDelivery}

// OrderLine snapshots the item name and the effective unit price at the
// moment the order was placed.
type OrderLine struct {
	MenuItemID primitive.ObjectID `bson:"menu_item_id" json:"menu_item_id"`
	Name       string             `bson:"name" json:"name"`
	UnitPrice  float64            `bson:"unit_price" json:"unit_price"`
	Quantity   int                `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OutletID    primitive.ObjectID `bson:"outlet_id" json:"outlet_id"`
	Lines       []OrderLine        `bson:"lines" json:"lines"`
	TotalAmount float64            `bson:"total_amount" json:"total_amount"`
	Status      OrderStatus        `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
