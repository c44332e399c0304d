package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/queue"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/service"
)

type CatalogImportWorker struct {
	importService *service.ImportService
	broker        queue.Broker
	logger        *zap.SugaredLogger
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewCatalogImportWorker(
	importService *service.ImportService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CatalogImportWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &CatalogImportWorker{
		importService: importService,
		broker:        broker,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (w *CatalogImportWorker) Start() error {
	w.logger.Info("starting catalog import worker")

	return w.broker.Subscribe(w.ctx, queue.QueueCatalogImport, w.handleMessage)
}

func (w *CatalogImportWorker) Stop() {
	w.logger.Info("stopping catalog import worker")
	w.cancel()
}

func (w *CatalogImportWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.CatalogImportMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	w.logger.Infow("processing catalog import message", "task_id", msg.TaskID)

	taskID, err := primitive.ObjectIDFromHex(msg.TaskID)
	if err != nil {
		w.logger.Errorw("invalid task ID", "task_id", msg.TaskID, "error", err)
		return fmt.Errorf("invalid task ID: %w", err)
	}

	if err := w.importService.ProcessImportTask(ctx, taskID); err != nil {
		w.logger.Errorw("failed to process import task", "task_id", msg.TaskID, "error", err)
		// returning the error requeues the message; keep the task's own
		// retry counter in step with the broker's redeliveries
		w.importService.RecordRetry(ctx, taskID)
		return err
	}

	return nil
}
