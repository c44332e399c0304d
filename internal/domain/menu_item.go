package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem is a global catalog entry shared by every outlet. Outlet-specific
// price and availability live in OutletItemOverride, never here.
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	BasePrice   float64            `bson:"base_price" json:"base_price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Pieces      *int               `bson:"pieces,omitempty" json:"pieces,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`
	IsVeg       bool               `bson:"is_veg" json:"is_veg"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

var AllowedTags = []string{
	"south-indian",
	"north-indian",
	"chinese",
	"continental",
	"cafe",
	"beverages",
	"desserts",
	"vegan",
	"gluten-free",
	"quick-bites",
	"snacks",
	"breakfast",
	"tandoor",
	"biryani",
}

func IsAllowedTag(tag string) bool {
	for _, t := range AllowedTags {
		if t == tag {
			return true
		}
	}
	return false
}

// EffectiveMenuItem is a catalog item merged with an outlet's override.
// Price carries the effective value, OriginalPrice always carries base_price
// so clients can render the delta.
type EffectiveMenuItem struct {
	MenuItem      `bson:",inline"`
	Price         float64 `json:"price"`
	IsAvailable   bool    `json:"is_available"`
	OriginalPrice float64 `json:"original_price"`
}

type MenuItemFilter struct {
	Search   string
	Category string
	Tags     []string
	IsVeg    *bool
	Sort     MenuItemSort
	Page     int
	Limit    int
}

type MenuItemSort string

const (
	SortNone      MenuItemSort = ""
	SortPriceAsc  MenuItemSort = "priceAsc"
	SortPriceDesc MenuItemSort = "priceDesc"
)
