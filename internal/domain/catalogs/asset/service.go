package asset

import (
	"context"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/tx"
	"fixtrack/internal/domain"
)

// Service provides business logic for the asset master catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Asset]
	repo Repository
}

// NewService creates a new Asset service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Asset]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "asset",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate keeps code and barcode aligned.
func (s *Service) prepareForCreate(ctx context.Context, a *Asset) error {
	if a.Code == "" {
		a.Code = a.Barcode
	}

	exists, err := s.repo.ExistsByCode(ctx, a.Barcode)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("asset", "barcode", a.Barcode)
	}
	return nil
}

// GetByBarcode retrieves the master record for a barcode.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*Asset, error) {
	return s.repo.GetByBarcode(ctx, barcode)
}
