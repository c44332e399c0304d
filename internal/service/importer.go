package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/parser"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/queue"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/repo"
)

// CatalogParser reads a spreadsheet into catalog rows.
type CatalogParser interface {
	ParseCatalog(ctx context.Context, spreadsheetID string) ([]parser.CatalogRow, error)
}

// ImportService runs admin catalog bulk imports: a task is queued over the
// broker and a worker feeds the parsed rows through the catalog service so
// every imported item passes the same validation as a hand-created one.
type ImportService struct {
	taskRepo repo.ImportTaskRepository
	catalog  *CatalogService
	parser   CatalogParser
	broker   queue.Broker
	logger   *zap.SugaredLogger
}

func NewImportService(
	taskRepo repo.ImportTaskRepository,
	catalog *CatalogService,
	parser CatalogParser,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *ImportService {
	return &ImportService{
		taskRepo: taskRepo,
		catalog:  catalog,
		parser:   parser,
		broker:   broker,
		logger:   logger,
	}
}

func (s *ImportService) CreateImportTask(ctx context.Context, spreadsheetID string) (primitive.ObjectID, error) {
	task := &domain.ImportTask{
		Status:        domain.ImportQueued,
		SpreadsheetID: spreadsheetID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create import task: %w", err)
	}

	message := domain.CatalogImportMessage{
		TaskID:        task.ID.Hex(),
		SpreadsheetID: spreadsheetID,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueCatalogImport, messageBytes); err != nil {
		_ = s.taskRepo.UpdateStatus(ctx, task.ID, domain.ImportFailed, err.Error())
		return primitive.NilObjectID, fmt.Errorf("failed to publish message: %w", err)
	}

	s.logger.Infow("catalog import task created", "task_id", task.ID.Hex(), "spreadsheet_id", spreadsheetID)

	return task.ID, nil
}

func (s *ImportService) GetTask(ctx context.Context, taskID primitive.ObjectID) (*domain.ImportTask, error) {
	return s.taskRepo.GetByID(ctx, taskID)
}

// RecordRetry bumps the task's retry counter after a failed processing
// attempt. Best effort: the broker handles the actual redelivery.
func (s *ImportService) RecordRetry(ctx context.Context, taskID primitive.ObjectID) {
	if err := s.taskRepo.IncrementRetryCount(ctx, taskID); err != nil {
		s.logger.Warnw("failed to record import retry", "task_id", taskID.Hex(), "error", err)
	}
}

// ProcessImportTask is called by the worker. Rows failing validation are
// skipped with a warning instead of failing the whole import.
func (s *ImportService) ProcessImportTask(ctx context.Context, taskID primitive.ObjectID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get import task: %w", err)
	}

	if s.parser == nil {
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, "sheets parser is not configured")
		return fmt.Errorf("sheets parser is not configured")
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportProcessing, ""); err != nil {
		return fmt.Errorf("failed to update import task status: %w", err)
	}

	s.logger.Infow("processing catalog import", "task_id", taskID.Hex())

	rows, err := s.parser.ParseCatalog(ctx, task.SpreadsheetID)
	if err != nil {
		s.logger.Errorw("failed to parse catalog sheet", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, err.Error())
		return fmt.Errorf("failed to parse catalog sheet: %w", err)
	}

	imported := 0
	for _, row := range rows {
		_, err := s.catalog.CreateItem(ctx, CreateItemInput{
			Name:        row.Name,
			Description: row.Description,
			BasePrice:   row.BasePrice,
			Category:    row.Category,
			Pieces:      row.Pieces,
			Tags:        row.Tags,
			IsVeg:       row.IsVeg,
		})
		if err != nil {
			if domain.IsValidationError(err) {
				s.logger.Warnw("skipping invalid catalog row", "task_id", taskID.Hex(), "name", row.Name, "error", err)
				continue
			}
			_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, err.Error())
			return fmt.Errorf("failed to import catalog row: %w", err)
		}
		imported++
	}

	if err := s.taskRepo.Complete(ctx, taskID, imported); err != nil {
		return fmt.Errorf("failed to complete import task: %w", err)
	}

	s.logger.Infow("catalog import completed", "task_id", taskID.Hex(), "items_imported", imported)

	return nil
}
