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

const securityTable = "ldg_security_sets"

// SecurityRepo implements ledger.SecurityRepository.
type SecurityRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewSecurityRepo creates a new security-set ledger repository.
func NewSecurityRepo(txManager *postgres.TxManager) *SecurityRepo {
	return &SecurityRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[ledger.SecuritySetTransaction](),
	}
}

var _ ledger.SecurityRepository = (*SecurityRepo)(nil)

func (r *SecurityRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateBatch inserts security-set rows in one multi-row statement.
func (r *SecurityRepo) CreateBatch(ctx context.Context, rows []ledger.SecuritySetTransaction) error {
	if len(rows) == 0 {
		return nil
	}

	q := r.builder().Insert(securityTable).Columns(r.selectCols...)
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
		return fmt.Errorf("insert security sets: %w", err)
	}
	return nil
}

// ListByDocument returns all security-set rows written by one approval.
func (r *SecurityRepo) ListByDocument(ctx context.Context, documentID id.ID) ([]ledger.SecuritySetTransaction, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(securityTable).
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []ledger.SecuritySetTransaction
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list security sets: %w", err)
	}
	return rows, nil
}
