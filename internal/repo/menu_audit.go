package repo

import (
	"context"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuAuditRepository interface {
	Create(ctx context.Context, audit *domain.MenuAudit) error
	GetByMenuItem(ctx context.Context, menuItemID primitive.ObjectID, limit int) ([]domain.MenuAudit, error)
}
