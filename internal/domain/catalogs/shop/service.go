package shop

import (
	"context"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/tx"
	"fixtrack/internal/domain"
)

// Service provides business logic for the shop master catalog.
type Service struct {
	*domain.CatalogService[*Shop]
	repo Repository
}

// NewService creates a new Shop service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Shop]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "shop",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.preventDuplicateCode)

	return svc
}

func (s *Service) preventDuplicateCode(ctx context.Context, sh *Shop) error {
	exists, err := s.repo.ExistsByCode(ctx, sh.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("shop", "code", sh.Code)
	}
	return nil
}

// TypeByCode resolves the shop type for an MCS code. The approval engine
// stamps it onto the out-leg of shop-to-shop ledger rows.
func (s *Service) TypeByCode(ctx context.Context, mcsCode string) (string, error) {
	sh, err := s.repo.GetByCode(ctx, mcsCode)
	if err != nil {
		return "", err
	}
	return string(sh.Type), nil
}
