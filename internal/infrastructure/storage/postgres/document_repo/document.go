// Package document_repo provides the PostgreSQL implementation of the
// document aggregate repository. The aggregate spans four tables: the
// header plus shops, asset lines and security-set lines; reads always
// return the whole tree.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/infrastructure/storage/postgres"
)

const (
	documentTable     = "doc_documents"
	shopTable         = "doc_document_shops"
	assetLineTable    = "doc_document_assets"
	securityLineTable = "doc_document_security_sets"
)

// DocumentRepo implements document.Repository.
type DocumentRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewDocumentRepo creates a new document repository.
func NewDocumentRepo(txManager *postgres.TxManager) *DocumentRepo {
	return &DocumentRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[document.Document](),
	}
}

var _ document.Repository = (*DocumentRepo)(nil)

func (r *DocumentRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *DocumentRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create inserts the document header. Lines go through ReplaceShops.
func (r *DocumentRepo) Create(ctx context.Context, doc *document.Document) error {
	data := postgres.StructToMap(doc)

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(documentTable).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID retrieves the full aggregate.
func (r *DocumentRepo) GetByID(ctx context.Context, docID id.ID) (*document.Document, error) {
	return r.get(ctx, docID, false)
}

// GetForUpdate retrieves the aggregate with the header row locked.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, docID id.ID) (*document.Document, error) {
	return r.get(ctx, docID, true)
}

func (r *DocumentRepo) get(ctx context.Context, docID id.ID, forUpdate bool) (*document.Document, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(documentTable).
		Where(squirrel.Eq{"id": docID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	doc := &document.Document{}
	querier := r.querier(ctx)
	if err := pgxscan.Get(ctx, querier, doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("document", docID.String())
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	if err := r.loadShops(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *DocumentRepo) loadShops(ctx context.Context, doc *document.Document) error {
	querier := r.querier(ctx)

	shopCols := postgres.ExtractDBColumns[document.Shop]()
	sql, args, err := r.builder().
		Select(shopCols...).
		From(shopTable).
		Where(squirrel.Eq{"document_id": doc.ID}).
		OrderBy("line_no").
		ToSql()
	if err != nil {
		return fmt.Errorf("build shops query: %w", err)
	}

	doc.Shops = nil
	if err := pgxscan.Select(ctx, querier, &doc.Shops, sql, args...); err != nil {
		return fmt.Errorf("load shops: %w", err)
	}

	for si := range doc.Shops {
		shop := &doc.Shops[si]

		assetCols := postgres.ExtractDBColumns[document.AssetLine]()
		sql, args, err := r.builder().
			Select(assetCols...).
			From(assetLineTable).
			Where(squirrel.Eq{"shop_line_id": shop.LineID}).
			OrderBy("line_no").
			ToSql()
		if err != nil {
			return fmt.Errorf("build asset lines query: %w", err)
		}
		if err := pgxscan.Select(ctx, querier, &shop.Assets, sql, args...); err != nil {
			return fmt.Errorf("load asset lines: %w", err)
		}

		secCols := postgres.ExtractDBColumns[document.SecuritySetLine]()
		sql, args, err = r.builder().
			Select(secCols...).
			From(securityLineTable).
			Where(squirrel.Eq{"shop_line_id": shop.LineID}).
			OrderBy("line_no").
			ToSql()
		if err != nil {
			return fmt.Errorf("build security lines query: %w", err)
		}
		if err := pgxscan.Select(ctx, querier, &shop.SecuritySets, sql, args...); err != nil {
			return fmt.Errorf("load security lines: %w", err)
		}
	}

	return nil
}

// Update persists header fields with an optimistic-lock version check.
func (r *DocumentRepo) Update(ctx context.Context, doc *document.Document) error {
	data := postgres.StructToMap(doc)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("document has no version field")
	}
	// Touch() already bumped the in-memory version; the check runs
	// against the stored one.
	storedVersion := version - 1

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "created_at", "created_by", "version", "updated_at":
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(documentTable).
		SetMap(filtered).
		Set("version", version).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": doc.ID}).
		Where(squirrel.Eq{"version": storedVersion}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("document", doc.ID.String())
	}
	return nil
}

// ReplaceShops rewrites the document's shops and all their lines.
// Delete-and-insert keeps line ordering authoritative from the aggregate.
func (r *DocumentRepo) ReplaceShops(ctx context.Context, doc *document.Document) error {
	querier := r.querier(ctx)

	// Asset and security lines cascade from shops via FK.
	sql, args, err := r.builder().
		Delete(shopTable).
		Where(squirrel.Eq{"document_id": doc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete shops: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete shops: %w", err)
	}

	for si := range doc.Shops {
		shop := &doc.Shops[si]

		data := postgres.StructToMap(shop)
		data["document_id"] = doc.ID
		sql, args, err := r.builder().
			Insert(shopTable).
			SetMap(data).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert shop: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert shop: %w", err)
		}

		for li := range shop.Assets {
			data := postgres.StructToMap(&shop.Assets[li])
			data["shop_line_id"] = shop.LineID
			sql, args, err := r.builder().
				Insert(assetLineTable).
				SetMap(data).
				ToSql()
			if err != nil {
				return fmt.Errorf("build insert asset line: %w", err)
			}
			if _, err := querier.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("insert asset line: %w", err)
			}
		}

		for li := range shop.SecuritySets {
			data := postgres.StructToMap(&shop.SecuritySets[li])
			data["shop_line_id"] = shop.LineID
			sql, args, err := r.builder().
				Insert(securityLineTable).
				SetMap(data).
				ToSql()
			if err != nil {
				return fmt.Errorf("build insert security line: %w", err)
			}
			if _, err := querier.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("insert security line: %w", err)
			}
		}
	}

	return nil
}

// List returns document headers matching the filter. Lines are not
// loaded; use GetByID for the full aggregate.
func (r *DocumentRepo) List(ctx context.Context, filter document.ListFilter) ([]document.Document, error) {
	q := r.applyFilter(r.builder().
		Select(r.selectCols...).
		From(documentTable), filter).
		OrderBy("created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var docs []document.Document
	if err := pgxscan.Select(ctx, r.querier(ctx), &docs, sql, args...); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Count returns the unpaged total for the filter.
func (r *DocumentRepo) Count(ctx context.Context, filter document.ListFilter) (int64, error) {
	q := r.applyFilter(r.builder().
		Select("COUNT(*)").
		From(documentTable), filter)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return total, nil
}

func (r *DocumentRepo) applyFilter(q squirrel.SelectBuilder, filter document.ListFilter) squirrel.SelectBuilder {
	q = q.Where(squirrel.Eq{"deletion_mark": false})

	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"document_type": filter.Type})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.CreatorVendor != "" {
		q = q.Where(squirrel.Eq{"creator_vendor": filter.CreatorVendor})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"requester_name": pattern},
		})
	}
	return q
}
