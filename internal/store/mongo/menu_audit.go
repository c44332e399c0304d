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

type MenuAuditRepository struct {
	collection *mongo.Collection
}

func NewMenuAuditRepository(db *mongo.Database) *MenuAuditRepository {
	return &MenuAuditRepository{
		collection: db.Collection("menu_audit"),
	}
}

func (r *MenuAuditRepository) Create(ctx context.Context, audit *domain.MenuAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to create menu audit record: %w", err)
	}

	return nil
}

func (r *MenuAuditRepository) GetByMenuItem(ctx context.Context, menuItemID primitive.ObjectID, limit int) ([]domain.MenuAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"menu_item_id": menuItemID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var audits []domain.MenuAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode menu audit records: %w", err)
	}

	return audits, nil
}
