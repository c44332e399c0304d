package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

type OverrideRepository struct {
	collection *mongo.Collection
}

func NewOverrideRepository(db *mongo.Database) *OverrideRepository {
	return &OverrideRepository{
		collection: db.Collection("outlet_item_overrides"),
	}
}

func (r *OverrideRepository) Get(ctx context.Context, outletID, menuItemID primitive.ObjectID) (*domain.OutletItemOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"outlet_id": outletID, "menu_item_id": menuItemID}

	var override domain.OutletItemOverride
	err := r.collection.FindOne(ctx, filter).Decode(&override)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get override: %w", err)
	}

	return &override, nil
}

func (r *OverrideRepository) ListByOutlet(ctx context.Context, outletID primitive.ObjectID) ([]domain.OutletItemOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"outlet_id": outletID})
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	defer cursor.Close(ctx)

	var overrides []domain.OutletItemOverride
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode overrides: %w", err)
	}

	return overrides, nil
}

// UpsertAvailability touches is_available only; $setOnInsert supplies the
// nil custom price for a freshly created pair so an existing custom price is
// never clobbered.
func (r *OverrideRepository) UpsertAvailability(ctx context.Context, outletID, menuItemID primitive.ObjectID, isAvailable bool) (*domain.OutletItemOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"outlet_id": outletID, "menu_item_id": menuItemID}
	update := bson.M{
		"$set": bson.M{
			"is_available": isAvailable,
			"updated_at":   time.Now(),
		},
		"$setOnInsert": bson.M{
			"custom_price": nil,
			"created_at":   time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var override domain.OutletItemOverride
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&override); err != nil {
		return nil, fmt.Errorf("failed to upsert availability: %w", err)
	}

	return &override, nil
}

// UpsertPrice touches custom_price only; a freshly created pair defaults to
// available. The governance engine is the sole caller.
func (r *OverrideRepository) UpsertPrice(ctx context.Context, outletID, menuItemID primitive.ObjectID, customPrice float64) (*domain.OutletItemOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"outlet_id": outletID, "menu_item_id": menuItemID}
	update := bson.M{
		"$set": bson.M{
			"custom_price": customPrice,
			"updated_at":   time.Now(),
		},
		"$setOnInsert": bson.M{
			"is_available": true,
			"created_at":   time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var override domain.OutletItemOverride
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&override); err != nil {
		return nil, fmt.Errorf("failed to upsert price: %w", err)
	}

	return &override, nil
}
