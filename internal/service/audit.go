package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/repo"
)

// AuditService persists menu audit events consumed from the queue and serves
// the admin history view.
type AuditService struct {
	auditRepo repo.MenuAuditRepository
	logger    *zap.SugaredLogger
}

func NewAuditService(auditRepo repo.MenuAuditRepository, logger *zap.SugaredLogger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *AuditService) ProcessAuditEvent(ctx context.Context, event domain.MenuAuditEvent) error {
	outletID, err := primitive.ObjectIDFromHex(event.OutletID)
	if err != nil {
		return fmt.Errorf("invalid outlet id in audit event: %w", err)
	}
	menuItemID, err := primitive.ObjectIDFromHex(event.MenuItemID)
	if err != nil {
		return fmt.Errorf("invalid menu item id in audit event: %w", err)
	}
	actorID, err := primitive.ObjectIDFromHex(event.ActorID)
	if err != nil {
		return fmt.Errorf("invalid actor id in audit event: %w", err)
	}

	audit := &domain.MenuAudit{
		EventType:  event.EventType,
		OutletID:   outletID,
		MenuItemID: menuItemID,
		OldPrice:   event.OldPrice,
		NewPrice:   event.NewPrice,
		Available:  event.Available,
		Reason:     event.Reason,
		ActorID:    actorID,
		Timestamp:  event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	s.logger.Infow("menu audit recorded",
		"event_type", event.EventType, "menu_item_id", event.MenuItemID, "outlet_id", event.OutletID)

	return nil
}

func (s *AuditService) GetItemAudit(ctx context.Context, menuItemID primitive.ObjectID, limit int) ([]domain.MenuAudit, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.auditRepo.GetByMenuItem(ctx, menuItemID, limit)
}
