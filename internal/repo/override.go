package repo

import (
	"context"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OverrideRepository interface {
	Get(ctx context.Context, outletID, menuItemID primitive.ObjectID) (*domain.OutletItemOverride, error)
	ListByOutlet(ctx context.Context, outletID primitive.ObjectID) ([]domain.OutletItemOverride, error)
	// UpsertAvailability creates the pair record with a nil custom price if
	// absent, otherwise flips is_available only.
	UpsertAvailability(ctx context.Context, outletID, menuItemID primitive.ObjectID, isAvailable bool) (*domain.OutletItemOverride, error)
	// UpsertPrice creates the pair record with is_available=true if absent,
	// otherwise sets custom_price only. The governance engine is its sole
	// caller.
	UpsertPrice(ctx context.Context, outletID, menuItemID primitive.ObjectID, customPrice float64) (*domain.OutletItemOverride, error)
}
