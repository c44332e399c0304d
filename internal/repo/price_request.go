package repo

import (
	"context"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PriceRequestRepository interface {
	// Create inserts a pending request. The store's partial unique index on
	// (outlet_id, menu_item_id, status=pending) makes concurrent inserts for
	// the same pair lose with domain.ErrDuplicatePending.
	Create(ctx context.Context, req *domain.PriceChangeRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PriceChangeRequest, error)
	// Decide flips a pending request to its terminal status. Returns
	// domain.ErrAlreadyDecided when the request is no longer pending.
	Decide(ctx context.Context, id primitive.ObjectID, status domain.PriceRequestStatus, decidedBy primitive.ObjectID, reason string) error
	ListPending(ctx context.Context) ([]domain.PriceChangeRequest, error)
	List(ctx context.Context, status domain.PriceRequestStatus) ([]domain.PriceChangeRequest, error)
	HasPending(ctx context.Context, outletID, menuItemID primitive.ObjectID) (bool, error)
}
