// Package picktask_repo provides the PostgreSQL implementation of the
// pick task repository.
package picktask_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/picktask"
	"fixtrack/internal/infrastructure/storage/postgres"
)

const taskTable = "tsk_pick_tasks"

// PickTaskRepo implements picktask.Repository.
type PickTaskRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewPickTaskRepo creates a new pick task repository.
func NewPickTaskRepo(txManager *postgres.TxManager) *PickTaskRepo {
	return &PickTaskRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[picktask.PickAssetTask](),
	}
}

var _ picktask.Repository = (*PickTaskRepo)(nil)

func (r *PickTaskRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateBatch inserts tasks produced by one approval in a single statement.
func (r *PickTaskRepo) CreateBatch(ctx context.Context, tasks []picktask.PickAssetTask) error {
	if len(tasks) == 0 {
		return nil
	}

	q := r.builder().Insert(taskTable).Columns(r.selectCols...)
	for i := range tasks {
		data := postgres.StructToMap(&tasks[i])
		values := make([]any, len(r.selectCols))
		for ci, col := range r.selectCols {
			values[ci] = data[col]
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert pick tasks: %w", err)
	}
	return nil
}

// GetByID retrieves one pick task.
func (r *PickTaskRepo) GetByID(ctx context.Context, taskID id.ID) (*picktask.PickAssetTask, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(taskTable).
		Where(squirrel.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	task := &picktask.PickAssetTask{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), task, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("pick task", taskID.String())
		}
		return nil, fmt.Errorf("get pick task: %w", err)
	}
	return task, nil
}

// Update persists task changes with an optimistic-lock version check.
func (r *PickTaskRepo) Update(ctx context.Context, task *picktask.PickAssetTask) error {
	data := postgres.StructToMap(task)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("pick task has no version field")
	}

	setMap := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "version", "created_at", "document_id", "document_code", "task_code":
			continue
		}
		if val, ok := data[col]; ok {
			setMap[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(taskTable).
		SetMap(setMap).
		Set("version", version+1).
		Where(squirrel.Eq{"id": task.ID}).
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update pick task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("pick task", task.ID.String())
	}

	task.SetVersion(version + 1)
	return nil
}

// ListByDocument returns all tasks created for one document, in
// creation order.
func (r *PickTaskRepo) ListByDocument(ctx context.Context, documentID id.ID) ([]picktask.PickAssetTask, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(taskTable).
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var tasks []picktask.PickAssetTask
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &tasks, sql, args...); err != nil {
		return nil, fmt.Errorf("list pick tasks: %w", err)
	}
	return tasks, nil
}

// List returns tasks matching the filter, newest first.
func (r *PickTaskRepo) List(ctx context.Context, filter picktask.ListFilter) ([]picktask.PickAssetTask, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(taskTable).
		OrderBy("created_at DESC")

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Warehouse != "" {
		q = q.Where(squirrel.Eq{"warehouse": filter.Warehouse})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var tasks []picktask.PickAssetTask
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &tasks, sql, args...); err != nil {
		return nil, fmt.Errorf("list pick tasks: %w", err)
	}
	return tasks, nil
}
