package picktask

import (
	"context"

	"fixtrack/internal/core/id"
)

// Repository defines pick task persistence.
type Repository interface {
	// CreateBatch inserts tasks produced by one approval action.
	CreateBatch(ctx context.Context, tasks []PickAssetTask) error

	GetByID(ctx context.Context, taskID id.ID) (*PickAssetTask, error)
	Update(ctx context.Context, task *PickAssetTask) error

	ListByDocument(ctx context.Context, documentID id.ID) ([]PickAssetTask, error)
	List(ctx context.Context, filter ListFilter) ([]PickAssetTask, error)
}

// ListFilter narrows pick task listings.
type ListFilter struct {
	Status    Status
	Warehouse string
	Limit     int
	Offset    int
}
