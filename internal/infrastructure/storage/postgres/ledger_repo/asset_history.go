// Package ledger_repo provides the PostgreSQL implementations of the
// asset transaction ledger, the security-set ledger and repair tasks.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/ledger"
	"fixtrack/internal/infrastructure/storage/postgres"
)

const historyTable = "ldg_asset_history"

// HistoryRepo implements ledger.HistoryRepository.
type HistoryRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewHistoryRepo creates a new asset history repository.
func NewHistoryRepo(txManager *postgres.TxManager) *HistoryRepo {
	return &HistoryRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[ledger.AssetTransactionHistory](),
	}
}

var _ ledger.HistoryRepository = (*HistoryRepo)(nil)

func (r *HistoryRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateBatch inserts ledger rows in one multi-row statement.
func (r *HistoryRepo) CreateBatch(ctx context.Context, rows []ledger.AssetTransactionHistory) error {
	if len(rows) == 0 {
		return nil
	}

	q := r.builder().Insert(historyTable).Columns(r.selectCols...)
	for i := range rows {
		data := postgres.StructToMap(&rows[i])
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
		return fmt.Errorf("insert asset history: %w", err)
	}
	return nil
}

// GetByID retrieves one ledger row.
func (r *HistoryRepo) GetByID(ctx context.Context, rowID id.ID) (*ledger.AssetTransactionHistory, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(historyTable).
		Where(squirrel.Eq{"id": rowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := &ledger.AssetTransactionHistory{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("asset history", rowID.String())
		}
		return nil, fmt.Errorf("get asset history: %w", err)
	}
	return row, nil
}

// GetLatestOpenLeg locks and returns the newest in-stock row for the
// barcode. UUIDv7 ids are time-ordered, so id ordering is insertion
// ordering.
func (r *HistoryRepo) GetLatestOpenLeg(ctx context.Context, barcode string) (*ledger.AssetTransactionHistory, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(historyTable).
		Where(squirrel.Eq{"barcode": barcode}).
		Where(squirrel.Eq{"balance": ledger.BalanceIn}).
		OrderBy("id DESC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := &ledger.AssetTransactionHistory{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("open ledger leg", barcode)
		}
		return nil, fmt.Errorf("get open leg: %w", err)
	}
	return row, nil
}

// Update rewrites a ledger row with an optimistic-lock version check.
func (r *HistoryRepo) Update(ctx context.Context, row *ledger.AssetTransactionHistory) error {
	data := postgres.StructToMap(row)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("asset history row has no version field")
	}
	// Touch() already bumped the in-memory version; the check runs
	// against the stored one.
	storedVersion := version - 1

	setMap := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			setMap[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(historyTable).
		SetMap(setMap).
		Set("version", version).
		Where(squirrel.Eq{"id": row.ID}).
		Where(squirrel.Eq{"version": storedVersion}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update asset history: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("asset history", row.ID.String())
	}
	return nil
}

// ListByBarcode returns the movement history for a barcode, newest first.
func (r *HistoryRepo) ListByBarcode(ctx context.Context, barcode string) ([]ledger.AssetTransactionHistory, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(historyTable).
		Where(squirrel.Eq{"barcode": barcode}).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []ledger.AssetTransactionHistory
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list asset history: %w", err)
	}
	return rows, nil
}

// ListByDocument returns all rows written by one document approval.
func (r *HistoryRepo) ListByDocument(ctx context.Context, documentID id.ID) ([]ledger.AssetTransactionHistory, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(historyTable).
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []ledger.AssetTransactionHistory
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list asset history: %w", err)
	}
	return rows, nil
}
