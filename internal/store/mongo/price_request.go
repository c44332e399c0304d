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

type PriceRequestRepository struct {
	collection *mongo.Collection
}

func NewPriceRequestRepository(db *mongo.Database) *PriceRequestRepository {
	return &PriceRequestRepository{
		collection: db.Collection("price_change_requests"),
	}
}

// Create inserts a pending request. The partial unique index on
// (outlet_id, menu_item_id, status=pending) turns a concurrent duplicate into
// a duplicate-key error, which is mapped to domain.ErrDuplicatePending.
func (r *PriceRequestRepository) Create(ctx context.Context, req *domain.PriceChangeRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.Status = domain.PriceRequestPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicatePending
		}
		return fmt.Errorf("failed to create price change request: %w", err)
	}

	return nil
}

func (r *PriceRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PriceChangeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var req domain.PriceChangeRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get price change request: %w", err)
	}

	return &req, nil
}

// Decide flips a pending request to a terminal status. Filtering on
// status=pending makes the flip race-safe: a request decided by someone else
// in the meantime matches nothing and reports ErrAlreadyDecided.
func (r *PriceRequestRepository) Decide(ctx context.Context, id primitive.ObjectID, status domain.PriceRequestStatus, decidedBy primitive.ObjectID, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"_id": id, "status": domain.PriceRequestPending}
	set := bson.M{
		"status":     status,
		"decided_by": decidedBy,
		"updated_at": time.Now(),
	}
	if reason != "" {
		set["rejection_reason"] = reason
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to decide price change request: %w", err)
	}

	if result.MatchedCount == 0 {
		// distinguish "gone" from "already decided"
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("failed to check price change request: %w", err)
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyDecided
	}

	return nil
}

func (r *PriceRequestRepository) ListPending(ctx context.Context) ([]domain.PriceChangeRequest, error) {
	return r.List(ctx, domain.PriceRequestPending)
}

func (r *PriceRequestRepository) List(ctx context.Context, status domain.PriceRequestStatus) ([]domain.PriceChangeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list price change requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []domain.PriceChangeRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode price change requests: %w", err)
	}

	return requests, nil
}

func (r *PriceRequestRepository) HasPending(ctx context.Context, outletID, menuItemID primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"outlet_id":    outletID,
		"menu_item_id": menuItemID,
		"status":       domain.PriceRequestPending,
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check pending requests: %w", err)
	}

	return count > 0, nil
}
