package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

type OutletRepository struct {
	collection *mongo.Collection
}

func NewOutletRepository(db *mongo.Database) *OutletRepository {
	return &OutletRepository{
		collection: db.Collection("outlets"),
	}
}

func (r *OutletRepository) Create(ctx context.Context, outlet *domain.Outlet) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if outlet.ID.IsZero() {
		outlet.ID = primitive.NewObjectID()
	}
	outlet.CreatedAt = time.Now()
	outlet.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, outlet)
	if err != nil {
		return fmt.Errorf("failed to create outlet: %w", err)
	}

	return nil
}

func (r *OutletRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Outlet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var outlet domain.Outlet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&outlet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get outlet: %w", err)
	}

	return &outlet, nil
}

func (r *OutletRepository) List(ctx context.Context) ([]domain.Outlet, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list outlets: %w", err)
	}
	defer cursor.Close(ctx)

	var outlets []domain.Outlet
	if err := cursor.All(ctx, &outlets); err != nil {
		return nil, fmt.Errorf("failed to decode outlets: %w", err)
	}

	return outlets, nil
}
