// Package document provides the logistics request document aggregate.
// A document asks for retail assets (display fixtures, security hardware)
// to be withdrawn, transferred, returned, repaired or borrowed. Approval of
// a submitted document is the only thing that materializes downstream
// records; the approval engine lives in internal/domain/approval.
package document

import (
	"context"
	"time"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/entity"
	"fixtrack/internal/core/id"
)

// Type is the declared document kind. It alone decides the processing path
// at approval time (see approval.Route).
type Type string

const (
	TypeWithdraw       Type = "withdraw"
	TypeRouting2Shops  Type = "routing2shops"
	TypeRouting3Shops  Type = "routing3shops"
	TypeRouting4Shops  Type = "routing4shops"
	TypeWithdrawOther  Type = "withdrawother"
	TypeOther          Type = "other"
	TypeTransfer       Type = "transfer"
	TypeBorrow         Type = "borrow"
	TypeBorrowSecurity Type = "borrowsecurity"
	TypeReturn         Type = "return"
	TypeReturnAsset    Type = "returnasset"
	TypeShopToShop     Type = "shoptoshop"
	TypeRepair         Type = "repair"
)

// All lists every recognized document type.
func All() []Type {
	return []Type{
		TypeWithdraw, TypeRouting2Shops, TypeRouting3Shops, TypeRouting4Shops,
		TypeWithdrawOther, TypeOther, TypeTransfer, TypeBorrow,
		TypeBorrowSecurity, TypeReturn, TypeReturnAsset, TypeShopToShop,
		TypeRepair,
	}
}

// IsValid reports whether t is a recognized document type.
func (t Type) IsValid() bool {
	for _, known := range All() {
		if t == known {
			return true
		}
	}
	return false
}

// Status is the document lifecycle state. A document transitions to
// approved or rejected exactly once, by an admin action.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// ReturnCondition qualifies return documents: a "from_borrow" return is
// stamped into the borrow-return week column instead of the plain one.
type ReturnCondition string

const (
	ReturnNormal     ReturnCondition = "normal"
	ReturnFromBorrow ReturnCondition = "from_borrow"
)

// NoMCSCode is the sentinel for shops without an MCS code.
const NoMCSCode = "NO MCS"

// Document is a withdrawal/transfer/return/repair/borrow request.
type Document struct {
	entity.BaseDocument

	// Code is the human-readable document number (e.g. "WD-2026-00042").
	Code string `db:"code" json:"code"`

	Type   Type   `db:"document_type" json:"documentType"`
	Status Status `db:"status" json:"status"`

	// Requester identity, snapshotted onto pick tasks at approval.
	RequesterName    string `db:"requester_name" json:"requesterName"`
	RequesterCompany string `db:"requester_company" json:"requesterCompany"`
	RequesterPhone   string `db:"requester_phone" json:"requesterPhone"`

	// ReturnCondition applies to return/returnasset documents only.
	ReturnCondition ReturnCondition `db:"return_condition" json:"returnCondition,omitempty"`

	// OtherActivity, when set by the approving admin, overrides the
	// type-based week-column routing (rental warehouse legs, discard,
	// error adjustment).
	OtherActivity string `db:"other_activity" json:"otherActivity,omitempty"`

	// TransactionStatus is a free-form status string chosen by the admin.
	TransactionStatus string `db:"transaction_status" json:"transactionStatus,omitempty"`

	// CreatorVendor is the home warehouse of the user who created the
	// document. For transfers it is the logical source warehouse; for
	// repairs it is the destination.
	CreatorVendor string `db:"creator_vendor" json:"creatorVendor"`

	// Shops are the destination/source retail locations with their
	// requested lines. For shoptoshop, index 0 is source, index 1 is
	// destination (index 1 may be a bare metadata record).
	Shops []Shop `db:"-" json:"shops"`
}

// Shop is one retail location on a document.
type Shop struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Code is the shop's MCS code; empty means the NO MCS sentinel.
	Code string `db:"code" json:"code,omitempty"`
	Name string `db:"name" json:"name"`

	InstallDate *time.Time `db:"install_date" json:"installDate,omitempty"`
	RemovalDate *time.Time `db:"removal_date" json:"removalDate,omitempty"`

	// Classification tags carried onto pick tasks.
	Q7B7      string `db:"q7b7" json:"q7b7,omitempty"`
	ShopFocus string `db:"shop_focus" json:"shopFocus,omitempty"`

	Assets       []AssetLine       `db:"-" json:"assets"`
	SecuritySets []SecuritySetLine `db:"-" json:"securitySets"`
}

// CodeOrSentinel returns the MCS code or the NO MCS sentinel.
func (s *Shop) CodeOrSentinel() string {
	if s.Code == "" {
		return NoMCSCode
	}
	return s.Code
}

// AssetLine is one requested asset row under a shop.
type AssetLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	Name string `db:"name" json:"name"`
	Size string `db:"size" json:"size,omitempty"`
	Grade string `db:"grade" json:"grade,omitempty"`

	// Qty determines fan-out count; always >= 1.
	Qty int `db:"qty" json:"qty"`

	// Barcode is required for return/repair/transfer lines and assigned
	// later by a picker for outbound withdrawals.
	Barcode string `db:"barcode" json:"barcode,omitempty"`

	// WithdrawFor is the target (or source) warehouse name.
	WithdrawFor string `db:"withdraw_for" json:"withdrawFor"`
}

// SecuritySetLine is one requested security component row under a shop.
type SecuritySetLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Name classifies the line: Type C components are aggregate-only,
	// control boxes are tracked per unit.
	Name string `db:"name" json:"name"`

	// Qty may be zero; zero-qty lines are excluded from materialization.
	Qty int `db:"qty" json:"qty"`

	Barcode     string `db:"barcode" json:"barcode,omitempty"`
	WithdrawFor string `db:"withdraw_for" json:"withdrawFor"`
}

// NewDocument creates a draft document for the given type.
func NewDocument(docType Type, requesterName, requesterCompany, requesterPhone string) *Document {
	return &Document{
		BaseDocument:     entity.NewBaseDocument(),
		Type:             docType,
		Status:           StatusDraft,
		RequesterName:    requesterName,
		RequesterCompany: requesterCompany,
		RequesterPhone:   requesterPhone,
		ReturnCondition:  ReturnNormal,
	}
}

// Validate implements entity.Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if !d.Type.IsValid() {
		return apperror.NewUnknownDocumentType(string(d.Type))
	}

	if d.RequesterName == "" {
		return apperror.NewValidation("requester name is required").
			WithDetail("field", "requesterName")
	}

	for si, shop := range d.Shops {
		if shop.Name == "" && shop.Code == "" {
			return apperror.NewValidation("shop needs a name or code").
				WithDetail("field", "shops").
				WithDetail("shopNo", si+1)
		}
		for li, line := range shop.Assets {
			if line.Qty < 1 {
				return apperror.NewValidation("asset quantity must be at least 1").
					WithDetail("field", "assets").
					WithDetail("shopNo", si+1).
					WithDetail("lineNo", li+1)
			}
		}
		for li, line := range shop.SecuritySets {
			if line.Qty < 0 {
				return apperror.NewValidation("security set quantity cannot be negative").
					WithDetail("field", "securitySets").
					WithDetail("shopNo", si+1).
					WithDetail("lineNo", li+1)
			}
		}
	}

	return nil
}

// CanModify checks if the document can still be edited.
// Approved and rejected documents are immutable.
func (d *Document) CanModify() error {
	if d.Status == StatusApproved || d.Status == StatusRejected {
		return apperror.NewBusinessRule(
			apperror.CodeAlreadyApproved,
			"Cannot modify a finalized document",
		).WithDetail("document_id", d.ID.String()).
			WithDetail("status", string(d.Status))
	}
	return nil
}

// Submit transitions draft -> submitted.
func (d *Document) Submit() error {
	if d.Status != StatusDraft {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Only draft documents can be submitted",
		).WithDetail("document_id", d.ID.String()).
			WithDetail("status", string(d.Status))
	}
	d.Status = StatusSubmitted
	d.Touch()
	return nil
}

// HasItems reports whether any shop carries at least one asset line or
// security-set line. Routing uses this to tell Picker from No-op.
func (d *Document) HasItems() bool {
	for _, shop := range d.Shops {
		if len(shop.Assets) > 0 || len(shop.SecuritySets) > 0 {
			return true
		}
	}
	return false
}

// SourceShop returns the shop at index 0, or nil.
func (d *Document) SourceShop() *Shop {
	if len(d.Shops) == 0 {
		return nil
	}
	return &d.Shops[0]
}

// DestinationShop returns the shop at index 1, or nil. For shoptoshop
// documents this may be a bare metadata record with no lines.
func (d *Document) DestinationShop() *Shop {
	if len(d.Shops) < 2 {
		return nil
	}
	return &d.Shops[1]
}
