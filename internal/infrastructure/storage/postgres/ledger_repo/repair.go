package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/ledger"
	"fixtrack/internal/infrastructure/storage/postgres"
)

const repairTable = "ldg_repair_tasks"

// RepairRepo implements ledger.RepairTaskRepository.
type RepairRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewRepairRepo creates a new repair task repository.
func NewRepairRepo(txManager *postgres.TxManager) *RepairRepo {
	return &RepairRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[ledger.RepairTask](),
	}
}

var _ ledger.RepairTaskRepository = (*RepairRepo)(nil)

func (r *RepairRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts one repair task.
func (r *RepairRepo) Create(ctx context.Context, task *ledger.RepairTask) error {
	data := postgres.StructToMap(task)

	setMap := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			setMap[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(repairTable).
		SetMap(setMap).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert repair task: %w", err)
	}
	return nil
}

// ListByDocument returns all repair tasks created by one approval.
func (r *RepairRepo) ListByDocument(ctx context.Context, documentID id.ID) ([]ledger.RepairTask, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(repairTable).
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var tasks []ledger.RepairTask
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &tasks, sql, args...); err != nil {
		return nil, fmt.Errorf("list repair tasks: %w", err)
	}
	return tasks, nil
}

// List returns repair tasks matching the filter, newest first.
func (r *RepairRepo) List(ctx context.Context, filter ledger.RepairTaskFilter) ([]ledger.RepairTask, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(repairTable).
		OrderBy("created_at DESC")

	if filter.Barcode != "" {
		q = q.Where(squirrel.Eq{"barcode": filter.Barcode})
	}
	if filter.RepairWarehouse != "" {
		q = q.Where(squirrel.Eq{"repair_warehouse": filter.RepairWarehouse})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"created_at": *filter.To})
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

	var tasks []ledger.RepairTask
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &tasks, sql, args...); err != nil {
		return nil, fmt.Errorf("list repair tasks: %w", err)
	}
	return tasks, nil
}
