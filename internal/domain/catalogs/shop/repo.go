package shop

import (
	"fixtrack/internal/domain"
)

// Repository defines the interface for Shop master data persistence.
// GetByCode (from CatalogRepository) looks up by MCS code.
type Repository interface {
	domain.CatalogRepository[*Shop]
}
