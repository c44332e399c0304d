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

// MenuService resolves the effective per-outlet menu and owns the
// availability side of the override store. The price side belongs to the
// governance engine.
type MenuService struct {
	catalogRepo  repo.CatalogRepository
	overrideRepo repo.OverrideRepository
	broker       queue.Broker
	logger       *zap.SugaredLogger
}

func NewMenuService(
	catalogRepo repo.CatalogRepository,
	overrideRepo repo.OverrideRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *MenuService {
	return &MenuService{
		catalogRepo:  catalogRepo,
		overrideRepo: overrideRepo,
		broker:       broker,
		logger:       logger,
	}
}

// EffectiveMenu joins the global catalog with one outlet's overrides. The two
// reads are not transactionally consistent with each other; each is read
// committed and that is enough here.
func (s *MenuService) EffectiveMenu(ctx context.Context, outletID primitive.ObjectID) ([]domain.EffectiveMenuItem, error) {
	items, err := s.catalogRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := s.overrideRepo.ListByOutlet(ctx, outletID)
	if err != nil {
		return nil, err
	}

	return MergeMenu(items, overrides), nil
}

// MergeMenu resolves effective price and availability per catalog item.
// Overrides without a matching catalog item are orphans and are ignored.
func MergeMenu(items []domain.MenuItem, overrides []domain.OutletItemOverride) []domain.EffectiveMenuItem {
	byItem := make(map[primitive.ObjectID]*domain.OutletItemOverride, len(overrides))
	for i := range overrides {
		byItem[overrides[i].MenuItemID] = &overrides[i]
	}

	merged := make([]domain.EffectiveMenuItem, 0, len(items))
	for _, item := range items {
		effective := domain.EffectiveMenuItem{
			MenuItem:      item,
			Price:         item.BasePrice,
			IsAvailable:   true,
			OriginalPrice: item.BasePrice,
		}

		if override, ok := byItem[item.ID]; ok {
			if override.CustomPrice != nil {
				effective.Price = *override.CustomPrice
			}
			effective.IsAvailable = override.IsAvailable
		}

		merged = append(merged, effective)
	}

	return merged
}

// SetAvailability is the manager's direct path into the override store. It
// never touches custom_price.
func (s *MenuService) SetAvailability(ctx context.Context, outletID, menuItemID, actorID primitive.ObjectID, isAvailable bool) (*domain.OutletItemOverride, error) {
	if _, err := s.catalogRepo.GetByID(ctx, menuItemID); err != nil {
		return nil, err
	}

	override, err := s.overrideRepo.UpsertAvailability(ctx, outletID, menuItemID, isAvailable)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("availability updated",
		"outlet_id", outletID.Hex(), "menu_item_id", menuItemID.Hex(), "is_available", isAvailable)

	s.publishAuditEvent(ctx, domain.MenuAuditEvent{
		EventType:  domain.EventAvailabilityChanged,
		OutletID:   outletID.Hex(),
		MenuItemID: menuItemID.Hex(),
		Available:  &isAvailable,
		ActorID:    actorID.Hex(),
		Timestamp:  time.Now(),
	})

	return override, nil
}

func (s *MenuService) GetOverride(ctx context.Context, outletID, menuItemID primitive.ObjectID) (*domain.OutletItemOverride, error) {
	return s.overrideRepo.Get(ctx, outletID, menuItemID)
}

// publishAuditEvent is best effort: the audit trail is observational and a
// broker hiccup must not fail the operation that was already applied.
func (s *MenuService) publishAuditEvent(ctx context.Context, event domain.MenuAuditEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal audit event", "event_type", event.EventType, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueMenuAudit, payload); err != nil {
		s.logger.Errorw("failed to publish audit event", "event_type", event.EventType, "error", err)
	}
}
