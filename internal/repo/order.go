package repo

import (
	"context"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	// ListByOutlet returns an outlet's orders newest first, optionally
	// restricted to the given statuses.
	ListByOutlet(ctx context.Context, outletID primitive.ObjectID, statuses []domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) (*domain.Order, error)
}
