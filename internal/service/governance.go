package service

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/queue"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/repo"
)

// Transactor runs fn atomically: every repository call made with the context
// fn receives either commits as a unit or leaves no trace.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GovernanceService is the approval workflow for outlet price changes and
// the only writer of OutletItemOverride.custom_price.
type GovernanceService struct {
	requestRepo  repo.PriceRequestRepository
	overrideRepo repo.OverrideRepository
	catalogRepo  repo.CatalogRepository
	userRepo     repo.UserRepository
	tx           Transactor
	broker       queue.Broker
	logger       *zap.SugaredLogger
}

func NewGovernanceService(
	requestRepo repo.PriceRequestRepository,
	overrideRepo repo.OverrideRepository,
	catalogRepo repo.CatalogRepository,
	userRepo repo.UserRepository,
	tx Transactor,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *GovernanceService {
	return &GovernanceService{
		requestRepo:  requestRepo,
		overrideRepo: overrideRepo,
		catalogRepo:  catalogRepo,
		userRepo:     userRepo,
		tx:           tx,
		broker:       broker,
		logger:       logger,
	}
}

// CreateRequest opens a pending price change proposal for one (outlet, item)
// pair. The current price and item name are snapshotted now so the request
// stays meaningful if the catalog moves underneath it. At most one pending
// request may exist per pair; the store's partial unique index enforces that
// even against concurrent submissions.
func (s *GovernanceService) CreateRequest(ctx context.Context, outletID, menuItemID, managerID primitive.ObjectID, proposedPrice float64) (*domain.PriceChangeRequest, error) {
	if proposedPrice < 0 {
		return nil, domain.ErrInvalidPrice
	}

	item, err := s.catalogRepo.GetByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	currentPrice := item.BasePrice
	override, err := s.overrideRepo.Get(ctx, outletID, menuItemID)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if override != nil && override.CustomPrice != nil {
		currentPrice = *override.CustomPrice
	}

	// fast path: report the duplicate before attempting the insert. The
	// insert below is still the authority under races.
	pending, err := s.requestRepo.HasPending(ctx, outletID, menuItemID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrDuplicatePending
	}

	managerName := ""
	if manager, err := s.userRepo.GetByID(ctx, managerID); err == nil {
		managerName = manager.Name
	}

	request := &domain.PriceChangeRequest{
		OutletID:      outletID,
		MenuItemID:    menuItemID,
		ManagerID:     managerID,
		ManagerName:   managerName,
		MenuItemName:  item.Name,
		CurrentPrice:  currentPrice,
		ProposedPrice: proposedPrice,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Infow("price change request created",
		"request_id", request.ID.Hex(),
		"outlet_id", outletID.Hex(),
		"menu_item_id", menuItemID.Hex(),
		"current_price", currentPrice,
		"proposed_price", proposedPrice)

	return request, nil
}

// Approve commits the proposed price into the override store and marks the
// request approved, atomically: either both writes land or neither does.
func (s *GovernanceService) Approve(ctx context.Context, requestID, adminID primitive.ObjectID) (*domain.PriceChangeRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.PriceRequestPending {
		return nil, domain.ErrAlreadyDecided
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.overrideRepo.UpsertPrice(txCtx, request.OutletID, request.MenuItemID, request.ProposedPrice); err != nil {
			return err
		}
		return s.requestRepo.Decide(txCtx, requestID, domain.PriceRequestApproved, adminID, "")
	})
	if err != nil {
		return nil, err
	}

	request.Status = domain.PriceRequestApproved
	request.DecidedBy = &adminID

	s.logger.Infow("price change request approved",
		"request_id", requestID.Hex(),
		"outlet_id", request.OutletID.Hex(),
		"menu_item_id", request.MenuItemID.Hex(),
		"new_price", request.ProposedPrice)

	oldPrice := request.CurrentPrice
	newPrice := request.ProposedPrice
	s.publishAuditEvent(ctx, domain.MenuAuditEvent{
		EventType:  domain.EventPriceApproved,
		OutletID:   request.OutletID.Hex(),
		MenuItemID: request.MenuItemID.Hex(),
		OldPrice:   &oldPrice,
		NewPrice:   &newPrice,
		ActorID:    adminID.Hex(),
		Timestamp:  time.Now(),
	})

	return request, nil
}

// Reject closes the request with an optional reason. The override store is
// not touched.
func (s *GovernanceService) Reject(ctx context.Context, requestID, adminID primitive.ObjectID, reason string) (*domain.PriceChangeRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.PriceRequestPending {
		return nil, domain.ErrAlreadyDecided
	}

	if err := s.requestRepo.Decide(ctx, requestID, domain.PriceRequestRejected, adminID, reason); err != nil {
		return nil, err
	}

	request.Status = domain.PriceRequestRejected
	request.RejectionReason = reason
	request.DecidedBy = &adminID

	s.logger.Infow("price change request rejected",
		"request_id", requestID.Hex(),
		"outlet_id", request.OutletID.Hex(),
		"menu_item_id", request.MenuItemID.Hex(),
		"reason", reason)

	s.publishAuditEvent(ctx, domain.MenuAuditEvent{
		EventType:  domain.EventPriceRejected,
		OutletID:   request.OutletID.Hex(),
		MenuItemID: request.MenuItemID.Hex(),
		Reason:     reason,
		ActorID:    adminID.Hex(),
		Timestamp:  time.Now(),
	})

	return request, nil
}

func (s *GovernanceService) ListPending(ctx context.Context) ([]domain.PriceChangeRequest, error) {
	return s.requestRepo.ListPending(ctx)
}

func (s *GovernanceService) ListAll(ctx context.Context, status domain.PriceRequestStatus) ([]domain.PriceChangeRequest, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", "unknown status %q", string(status))
	}
	return s.requestRepo.List(ctx, status)
}

func (s *GovernanceService) publishAuditEvent(ctx context.Context, event domain.MenuAuditEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal audit event", "event_type", event.EventType, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueMenuAudit, payload); err != nil {
		s.logger.Errorw("failed to publish audit event", "event_type", event.EventType, "error", err)
	}
}
