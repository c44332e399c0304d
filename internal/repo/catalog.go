package repo

import (
	"context"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogUpdate carries the fields an update may touch. Nil means "leave as
// is"; a blank image is treated as "leave as is" by the service layer.
type CatalogUpdate struct {
	Name        *string
	Description *string
	BasePrice   *float64
	Image       *string
	Category    *string
	Pieces      *int
	Tags        []string
	IsVeg       *bool
}

type CatalogRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error)
	Update(ctx context.Context, id primitive.ObjectID, upd CatalogUpdate) (*domain.MenuItem, error)
	List(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItem, int64, error)
	ListAll(ctx context.Context) ([]domain.MenuItem, error)
}
