package picktask

import (
	"context"
	"fmt"
	"time"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/id"
	"fixtrack/internal/core/tx"
	"fixtrack/pkg/logger"
)

// Service provides the picking workflow on top of tasks the approval
// engine created.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a pick task service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// GetByID retrieves one task.
func (s *Service) GetByID(ctx context.Context, taskID id.ID) (*PickAssetTask, error) {
	return s.repo.GetByID(ctx, taskID)
}

// ListByDocument lists every task a document approval produced.
func (s *Service) ListByDocument(ctx context.Context, documentID id.ID) ([]PickAssetTask, error) {
	return s.repo.ListByDocument(ctx, documentID)
}

// List lists tasks by filter (warehouse queue view).
func (s *Service) List(ctx context.Context, filter ListFilter) ([]PickAssetTask, error) {
	return s.repo.List(ctx, filter)
}

// Complete assigns the picked barcode and photo evidence and closes the
// task. Aggregate security tasks carry no per-unit barcode; for them an
// empty barcode is accepted.
func (s *Service) Complete(ctx context.Context, taskID id.ID, barcode, photoKey string) (*PickAssetTask, error) {
	var task *PickAssetTask
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.repo.GetByID(ctx, taskID)
		if err != nil {
			return err
		}

		if task.Status != StatusPending {
			return apperror.NewConflict("pick task is not pending").
				WithDetail("task_id", taskID.String()).
				WithDetail("status", string(task.Status))
		}

		if barcode == "" && task.Barcode == "" && !task.IsSecuritySet {
			return apperror.NewValidation("barcode is required to complete an asset pick").
				WithDetail("task_id", taskID.String())
		}

		if barcode != "" {
			task.Barcode = barcode
		}
		task.PhotoKey = photoKey
		task.Status = StatusCompleted
		now := time.Now().UTC()
		task.CompletedAt = &now

		if err := s.repo.Update(ctx, task); err != nil {
			return fmt.Errorf("complete pick task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "pick task completed", "task_id", taskID, "barcode", task.Barcode)
	return task, nil
}

// Cancel closes a pending task without picking.
func (s *Service) Cancel(ctx context.Context, taskID id.ID) (*PickAssetTask, error) {
	var task *PickAssetTask
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.repo.GetByID(ctx, taskID)
		if err != nil {
			return err
		}

		if task.Status != StatusPending {
			return apperror.NewConflict("pick task is not pending").
				WithDetail("task_id", taskID.String()).
				WithDetail("status", string(task.Status))
		}

		task.Status = StatusCancelled
		if err := s.repo.Update(ctx, task); err != nil {
			return fmt.Errorf("cancel pick task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "pick task cancelled", "task_id", taskID)
	return task, nil
}
