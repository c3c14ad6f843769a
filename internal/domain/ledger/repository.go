package ledger

import (
	"context"
	"time"

	"fixtrack/internal/core/id"
)

// HistoryRepository defines operations on the asset transaction ledger.
type HistoryRepository interface {
	// CreateBatch inserts new ledger rows (used during approval).
	CreateBatch(ctx context.Context, rows []AssetTransactionHistory) error

	// GetByID retrieves one ledger row.
	GetByID(ctx context.Context, rowID id.ID) (*AssetTransactionHistory, error)

	// GetLatestOpenLeg returns the most recent row for barcode whose
	// balance equals BalanceIn, locked FOR UPDATE. "Most recent" is by
	// insertion id (UUIDv7 is time-ordered), which doubles as the
	// tie-break. Returns apperror.NewNotFound when no open leg exists.
	GetLatestOpenLeg(ctx context.Context, barcode string) (*AssetTransactionHistory, error)

	// Update rewrites a ledger row in place (repair leg close only).
	Update(ctx context.Context, row *AssetTransactionHistory) error

	// ListByBarcode returns the full movement history for a barcode,
	// newest first.
	ListByBarcode(ctx context.Context, barcode string) ([]AssetTransactionHistory, error)

	// ListByDocument returns all rows written by one document approval.
	ListByDocument(ctx context.Context, documentID id.ID) ([]AssetTransactionHistory, error)
}

// SecurityRepository defines operations on the security-set ledger.
type SecurityRepository interface {
	CreateBatch(ctx context.Context, rows []SecuritySetTransaction) error
	ListByDocument(ctx context.Context, documentID id.ID) ([]SecuritySetTransaction, error)
}

// RepairTaskRepository defines operations on repair tasks.
type RepairTaskRepository interface {
	Create(ctx context.Context, task *RepairTask) error
	ListByDocument(ctx context.Context, documentID id.ID) ([]RepairTask, error)
	List(ctx context.Context, filter RepairTaskFilter) ([]RepairTask, error)
}

// RepairTaskFilter narrows repair task listings.
type RepairTaskFilter struct {
	Barcode         string
	RepairWarehouse string
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}
