// Package shop provides the shop master data catalog.
// Shops are retail locations identified by MCS code; the shop type feeds
// the out-leg of shop-to-shop ledger rows.
package shop

import (
	"context"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/entity"
)

// ShopType classifies a retail location.
type ShopType string

const (
	TypeDepartmentStore ShopType = "DEPARTMENT STORE"
	TypeStandalone      ShopType = "STANDALONE"
	TypeKiosk           ShopType = "KIOSK"
	TypeOutlet          ShopType = "OUTLET"
)

// Shop is one master data record for a retail location.
// Code carries the MCS code.
type Shop struct {
	entity.Catalog

	Type ShopType `db:"shop_type" json:"shopType"`

	Province string `db:"province" json:"province,omitempty"`
	Region   string `db:"region" json:"region,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// NewShop creates a master record for an MCS code.
func NewShop(mcsCode, name string, shopType ShopType) *Shop {
	return &Shop{
		Catalog:  entity.NewCatalog(mcsCode, name),
		Type:     shopType,
		IsActive: true,
	}
}

// Validate implements entity.Validatable.
func (s *Shop) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Code == "" {
		return apperror.NewValidation("MCS code is required").
			WithDetail("field", "code")
	}

	return nil
}
