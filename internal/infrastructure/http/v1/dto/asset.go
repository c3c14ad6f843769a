package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"fixtrack/internal/domain/catalogs/asset"
)

// CreateAssetRequest creates an asset master record.
type CreateAssetRequest struct {
	Barcode      string          `json:"barcode" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Size         string          `json:"size,omitempty"`
	Grade        string          `json:"grade,omitempty"`
	PONumber     string          `json:"poNumber,omitempty"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	WarrantyDate *time.Time      `json:"warrantyDate,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateAssetRequest) ToEntity() *asset.Asset {
	a := asset.NewAsset(r.Barcode, r.Name)
	a.Size = r.Size
	a.Grade = r.Grade
	a.PONumber = r.PONumber
	a.UnitCost = r.UnitCost
	a.WarrantyDate = r.WarrantyDate
	return a
}

// UpdateAssetRequest updates an asset master record.
type UpdateAssetRequest struct {
	Name         *string          `json:"name,omitempty"`
	Size         *string          `json:"size,omitempty"`
	Grade        *string          `json:"grade,omitempty"`
	PONumber     *string          `json:"poNumber,omitempty"`
	UnitCost     *decimal.Decimal `json:"unitCost,omitempty"`
	WarrantyDate *time.Time       `json:"warrantyDate,omitempty"`
	IsActive     *bool            `json:"isActive,omitempty"`
	Version      int              `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the update onto an existing asset.
func (r *UpdateAssetRequest) ApplyTo(a *asset.Asset) *asset.Asset {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Size != nil {
		a.Size = *r.Size
	}
	if r.Grade != nil {
		a.Grade = *r.Grade
	}
	if r.PONumber != nil {
		a.PONumber = *r.PONumber
	}
	if r.UnitCost != nil {
		a.UnitCost = *r.UnitCost
	}
	if r.WarrantyDate != nil {
		a.WarrantyDate = r.WarrantyDate
	}
	if r.IsActive != nil {
		a.IsActive = *r.IsActive
	}
	a.SetVersion(r.Version)
	return a
}
