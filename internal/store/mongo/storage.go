package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) Client() *mongo.Client {
	return s.client
}

// WithinTransaction runs fn inside a single multi-document transaction. The
// context passed to fn carries the session, so repository calls made with it
// join the transaction.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	// menu_items
	itemIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "tags", Value: 1}},
		},
	}
	if _, err := s.database.Collection("menu_items").Indexes().CreateMany(ctx, itemIndexes); err != nil {
		return fmt.Errorf("failed to create menu_items indexes: %w", err)
	}

	// outlet_item_overrides: the (outlet, item) pair is the natural key
	overrideIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "outlet_id", Value: 1},
				{Key: "menu_item_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection("outlet_item_overrides").Indexes().CreateMany(ctx, overrideIndexes); err != nil {
		return fmt.Errorf("failed to create outlet_item_overrides indexes: %w", err)
	}

	// price_change_requests: the partial unique index enforces at most one
	// pending request per (outlet, item) pair even under concurrent creates
	requestIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "outlet_id", Value: 1},
				{Key: "menu_item_id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.PriceRequestPending)}),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}
	if _, err := s.database.Collection("price_change_requests").Indexes().CreateMany(ctx, requestIndexes); err != nil {
		return fmt.Errorf("failed to create price_change_requests indexes: %w", err)
	}

	// users
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	// orders
	orderIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "outlet_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}
	if _, err := s.database.Collection("orders").Indexes().CreateMany(ctx, orderIndexes); err != nil {
		return fmt.Errorf("failed to create orders indexes: %w", err)
	}

	// import_tasks
	taskIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}
	if _, err := s.database.Collection("import_tasks").Indexes().CreateMany(ctx, taskIndexes); err != nil {
		return fmt.Errorf("failed to create import_tasks indexes: %w", err)
	}

	// menu_audit
	auditIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "menu_item_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}
	if _, err := s.database.Collection("menu_audit").Indexes().CreateMany(ctx, auditIndexes); err != nil {
		return fmt.Errorf("failed to create menu_audit indexes: %w", err)
	}

	return nil
}
