// Package asset provides the asset master data catalog.
// One record per physical unit, keyed by barcode. Ledger writes use it to
// enrich rows with warranty and purchase-order data; a missing record is a
// referential gap, not an error.
package asset

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/entity"
)

// Asset is one master data record for a barcoded unit.
type Asset struct {
	entity.Catalog

	// Barcode is the unique physical identifier.
	Barcode string `db:"barcode" json:"barcode"`

	Size  string `db:"size" json:"size,omitempty"`
	Grade string `db:"grade" json:"grade,omitempty"`

	// Purchase data.
	PONumber string          `db:"po_number" json:"poNumber,omitempty"`
	UnitCost decimal.Decimal `db:"unit_cost" json:"unitCost"`

	WarrantyDate *time.Time `db:"warranty_date" json:"warrantyDate,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// NewAsset creates a master record for a barcode.
func NewAsset(barcode, name string) *Asset {
	return &Asset{
		Catalog:  entity.NewCatalog(barcode, name),
		Barcode:  barcode,
		IsActive: true,
	}
}

// Validate implements entity.Validatable.
func (a *Asset) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if a.Barcode == "" {
		return apperror.NewValidation("barcode is required").
			WithDetail("field", "barcode")
	}

	if a.UnitCost.IsNegative() {
		return apperror.NewValidation("unit cost cannot be negative").
			WithDetail("field", "unitCost")
	}

	return nil
}
