package asset

import (
	"context"

	"fixtrack/internal/domain"
)

// Repository defines the interface for Asset master data persistence.
type Repository interface {
	domain.CatalogRepository[*Asset]

	// GetByBarcode retrieves the master record for a barcode.
	// Returns apperror.NewNotFound when absent.
	GetByBarcode(ctx context.Context, barcode string) (*Asset, error)
}
