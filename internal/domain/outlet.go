package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OutletType string

const (
	OutletCloudKitchen OutletType = "cloud_kitchen"
	OutletDineIn       OutletType = "dine_in"
	OutletHybrid       OutletType = "hybrid"
)

type Outlet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Address     string             `bson:"address" json:"address"`
	Type        OutletType         `bson:"type" json:"type"`
	PhoneNumber string             `bson:"phone_number" json:"phone_number"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
