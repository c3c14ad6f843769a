package dto

import (
	"time"

	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/document"
)

// --- Request DTOs ---

// DocumentShopRequest is one shop block in create/update requests.
type DocumentShopRequest struct {
	Code        string     `json:"code,omitempty"`
	Name        string     `json:"name" binding:"required"`
	InstallDate *time.Time `json:"installDate,omitempty"`
	RemovalDate *time.Time `json:"removalDate,omitempty"`
	Q7B7        string     `json:"q7b7,omitempty"`
	ShopFocus   string     `json:"shopFocus,omitempty"`

	Assets       []AssetLineRequest       `json:"assets,omitempty" binding:"dive"`
	SecuritySets []SecuritySetLineRequest `json:"securitySets,omitempty" binding:"dive"`
}

// AssetLineRequest is one asset row in create/update requests.
type AssetLineRequest struct {
	Name        string `json:"name" binding:"required"`
	Size        string `json:"size,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Qty         int    `json:"qty" binding:"required,min=1"`
	Barcode     string `json:"barcode,omitempty"`
	WithdrawFor string `json:"withdrawFor,omitempty"`
}

// SecuritySetLineRequest is one security component row.
type SecuritySetLineRequest struct {
	Name        string `json:"name" binding:"required"`
	Qty         int    `json:"qty" binding:"min=0"`
	Barcode     string `json:"barcode,omitempty"`
	WithdrawFor string `json:"withdrawFor,omitempty"`
}

// CreateDocumentRequest creates a draft document.
type CreateDocumentRequest struct {
	Type             string                `json:"documentType" binding:"required"`
	RequesterName    string                `json:"requesterName" binding:"required"`
	RequesterCompany string                `json:"requesterCompany,omitempty"`
	RequesterPhone   string                `json:"requesterPhone,omitempty"`
	ReturnCondition  string                `json:"returnCondition,omitempty"`
	Shops            []DocumentShopRequest `json:"shops,omitempty" binding:"dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateDocumentRequest) ToEntity() *document.Document {
	doc := document.NewDocument(
		document.Type(r.Type),
		r.RequesterName, r.RequesterCompany, r.RequesterPhone,
	)
	if r.ReturnCondition != "" {
		doc.ReturnCondition = document.ReturnCondition(r.ReturnCondition)
	}
	doc.Shops = mapShops(r.Shops)
	return doc
}

// UpdateDocumentRequest replaces the editable parts of a draft or
// submitted document. Code, type, status and creator fields are
// server-controlled and ignored if sent.
type UpdateDocumentRequest struct {
	RequesterName    string                `json:"requesterName" binding:"required"`
	RequesterCompany string                `json:"requesterCompany,omitempty"`
	RequesterPhone   string                `json:"requesterPhone,omitempty"`
	ReturnCondition  string                `json:"returnCondition,omitempty"`
	Shops            []DocumentShopRequest `json:"shops,omitempty" binding:"dive"`
	Version          int                   `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the update onto an existing document.
func (r *UpdateDocumentRequest) ApplyTo(doc *document.Document) {
	doc.RequesterName = r.RequesterName
	doc.RequesterCompany = r.RequesterCompany
	doc.RequesterPhone = r.RequesterPhone
	if r.ReturnCondition != "" {
		doc.ReturnCondition = document.ReturnCondition(r.ReturnCondition)
	}
	doc.Shops = mapShops(r.Shops)
	doc.SetVersion(r.Version)
}

func mapShops(reqs []DocumentShopRequest) []document.Shop {
	shops := make([]document.Shop, 0, len(reqs))
	for _, sr := range reqs {
		shop := document.Shop{
			LineID:      id.New(),
			Code:        sr.Code,
			Name:        sr.Name,
			InstallDate: sr.InstallDate,
			RemovalDate: sr.RemovalDate,
			Q7B7:        sr.Q7B7,
			ShopFocus:   sr.ShopFocus,
		}
		for _, ar := range sr.Assets {
			shop.Assets = append(shop.Assets, document.AssetLine{
				LineID:      id.New(),
				Name:        ar.Name,
				Size:        ar.Size,
				Grade:       ar.Grade,
				Qty:         ar.Qty,
				Barcode:     ar.Barcode,
				WithdrawFor: ar.WithdrawFor,
			})
		}
		for _, sr2 := range sr.SecuritySets {
			shop.SecuritySets = append(shop.SecuritySets, document.SecuritySetLine{
				LineID:      id.New(),
				Name:        sr2.Name,
				Qty:         sr2.Qty,
				Barcode:     sr2.Barcode,
				WithdrawFor: sr2.WithdrawFor,
			})
		}
		shops = append(shops, shop)
	}
	return shops
}

// ApproveDocumentRequest carries the admin's approval inputs.
type ApproveDocumentRequest struct {
	OtherActivity     string `json:"otherActivity,omitempty"`
	TransactionStatus string `json:"transactionStatus,omitempty"`
}

// RejectDocumentRequest carries the rejection reason.
type RejectDocumentRequest struct {
	Reason string `json:"reason,omitempty"`
}
