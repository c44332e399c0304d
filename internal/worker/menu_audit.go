package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/queue"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/service"
)

type MenuAuditWorker struct {
	auditService *service.AuditService
	broker       queue.Broker
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
}

func NewMenuAuditWorker(
	auditService *service.AuditService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *MenuAuditWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &MenuAuditWorker{
		auditService: auditService,
		broker:       broker,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *MenuAuditWorker) Start() error {
	w.logger.Info("starting menu audit worker")

	return w.broker.Subscribe(w.ctx, queue.QueueMenuAudit, w.handleMessage)
}

func (w *MenuAuditWorker) Stop() {
	w.logger.Info("stopping menu audit worker")
	w.cancel()
}

func (w *MenuAuditWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.MenuAuditEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal audit event", "error", err)
		return fmt.Errorf("failed to unmarshal audit event: %w", err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := w.auditService.ProcessAuditEvent(ctx, event); err != nil {
		w.logger.Errorw("failed to process audit event", "event_type", event.EventType, "error", err)
		return err
	}

	return nil
}
