package repo

import (
	"context"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OutletRepository interface {
	Create(ctx context.Context, outlet *domain.Outlet) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Outlet, error)
	List(ctx context.Context) ([]domain.Outlet, error)
}
