// Package ledger provides the asset and security-set transaction ledgers.
//
// A ledger row records one physical unit's movement as two legs: the in-leg
// (received into a warehouse) and the out-leg (left it again). Balance 1
// means the unit currently sits in a warehouse, 0 means it is out. A row
// may gain its in-leg from one document and its out-leg from a different
// one: the repair flow closes the latest open leg for a barcode.
package ledger

import (
	"time"

	"fixtrack/internal/core/entity"
	"fixtrack/internal/core/id"
)

// Balance values for ledger rows.
const (
	BalanceOut = 0 // unit is out of the warehouse
	BalanceIn  = 1 // unit is in the warehouse
)

// AssetStatusUsed marks returned assets; AssetStatusRepair marks units
// shipped off for repair.
const (
	AssetStatusUsed   = "USED"
	AssetStatusRepair = "SEND TO REPAIR"
)

// WeekColumn identifies one of the mutually-exclusive week-marker columns.
// Any single document approval writes at most one of them, except
// shoptoshop which legitimately stamps WkIn and WkOut together (one event,
// both legs).
type WeekColumn string

const (
	ColWkOut              WeekColumn = "wk_out"
	ColWkIn               WeekColumn = "wk_in"
	ColWkOutForRepair     WeekColumn = "wk_out_for_repair"
	ColWkInForRepair      WeekColumn = "wk_in_for_repair"
	ColNewInStock         WeekColumn = "new_in_stock"
	ColRefurbishedInStock WeekColumn = "refurbished_in_stock"
	ColBorrow             WeekColumn = "borrow"
	ColReturn             WeekColumn = "return"
	ColRepair             WeekColumn = "repair"
	ColOutToRental        WeekColumn = "out_to_rental_warehouse"
	ColInToRental         WeekColumn = "in_to_rental_warehouse"
	ColDiscarded          WeekColumn = "discarded"
	ColAdjustError        WeekColumn = "adjust_error"
)

// AllWeekColumns lists every week-marker column, in ledger column order.
func AllWeekColumns() []WeekColumn {
	return []WeekColumn{
		ColWkOut, ColWkIn, ColWkOutForRepair, ColWkInForRepair,
		ColNewInStock, ColRefurbishedInStock, ColBorrow, ColReturn,
		ColRepair, ColOutToRental, ColInToRental, ColDiscarded,
		ColAdjustError,
	}
}

// OtherActivityColumn maps an admin-selected otherActivity value to its
// week column. Returns false for unrecognized or empty values.
func OtherActivityColumn(activity string) (WeekColumn, bool) {
	switch activity {
	case "outToRentalWarehouse":
		return ColOutToRental, true
	case "inToRentalWarehouse":
		return ColInToRental, true
	case "discarded":
		return ColDiscarded, true
	case "adjustError":
		return ColAdjustError, true
	}
	return "", false
}

// AssetTransactionHistory is one ledger row for a single physical asset,
// keyed by barcode.
type AssetTransactionHistory struct {
	entity.BaseEntity

	Barcode   string `db:"barcode" json:"barcode"`
	AssetName string `db:"asset_name" json:"assetName"`
	Size      string `db:"size" json:"size,omitempty"`
	Grade     string `db:"grade" json:"grade,omitempty"`

	// Asset master enrichment; left empty when the master record is
	// missing (referential gaps are not errors).
	WarrantyDate *time.Time `db:"warranty_date" json:"warrantyDate,omitempty"`
	PONumber     string     `db:"po_number" json:"poNumber,omitempty"`

	// Document that produced (or last touched) this row.
	DocumentID   *id.ID `db:"document_id" json:"documentId,omitempty"`
	DocumentCode string `db:"document_code" json:"documentCode,omitempty"`

	// In-leg
	WarehouseIn *string    `db:"warehouse_in" json:"warehouseIn,omitempty"`
	InStockDate *time.Time `db:"in_stock_date" json:"inStockDate,omitempty"`
	FromVendor  *string    `db:"from_vendor" json:"fromVendor,omitempty"`
	FromShop    *string    `db:"from_shop" json:"fromShop,omitempty"`
	MCSCodeIn   *string    `db:"mcs_code_in" json:"mcsCodeIn,omitempty"`
	RemarkIn    *string    `db:"remark_in" json:"remarkIn,omitempty"`

	// Out-leg
	OutDate     *time.Time `db:"out_date" json:"outDate,omitempty"`
	ToVendor    *string    `db:"to_vendor" json:"toVendor,omitempty"`
	ToShop      *string    `db:"to_shop" json:"toShop,omitempty"`
	MCSCodeOut  *string    `db:"mcs_code_out" json:"mcsCodeOut,omitempty"`
	AssetStatus *string    `db:"asset_status" json:"assetStatus,omitempty"`
	ShopType    *string    `db:"shop_type" json:"shopType,omitempty"`
	RemarkOut   *string    `db:"remark_out" json:"remarkOut,omitempty"`

	// Balance: 1 = in warehouse, 0 = out.
	Balance int `db:"balance" json:"balance"`

	// Week-marker columns. Populated only through StampWeek so the
	// exclusivity invariant holds per approval action.
	WkOut              *string `db:"wk_out" json:"wkOut,omitempty"`
	WkIn               *string `db:"wk_in" json:"wkIn,omitempty"`
	WkOutForRepair     *string `db:"wk_out_for_repair" json:"wkOutForRepair,omitempty"`
	WkInForRepair      *string `db:"wk_in_for_repair" json:"wkInForRepair,omitempty"`
	NewInStock         *string `db:"new_in_stock" json:"newInStock,omitempty"`
	RefurbishedInStock *string `db:"refurbished_in_stock" json:"refurbishedInStock,omitempty"`
	Borrow             *string `db:"borrow" json:"borrow,omitempty"`
	Return             *string `db:"return" json:"return,omitempty"`
	Repair             *string `db:"repair" json:"repair,omitempty"`
	OutToRental        *string `db:"out_to_rental_warehouse" json:"outToRentalWarehouse,omitempty"`
	InToRental         *string `db:"in_to_rental_warehouse" json:"inToRentalWarehouse,omitempty"`
	Discarded          *string `db:"discarded" json:"discarded,omitempty"`
	AdjustError        *string `db:"adjust_error" json:"adjustError,omitempty"`
}

// StampWeek writes label into exactly the given week column.
func (h *AssetTransactionHistory) StampWeek(col WeekColumn, label string) {
	if field := h.weekField(col); field != nil {
		*field = &label
	}
}

// WeekMark returns the label in the given column, or "" when unset.
func (h *AssetTransactionHistory) WeekMark(col WeekColumn) string {
	field := h.weekField(col)
	if field == nil || *field == nil {
		return ""
	}
	return **field
}

// MarkedWeekColumns returns every week column carrying a label.
// Tests use this to assert the exclusivity invariant.
func (h *AssetTransactionHistory) MarkedWeekColumns() []WeekColumn {
	var marked []WeekColumn
	for _, col := range AllWeekColumns() {
		if h.WeekMark(col) != "" {
			marked = append(marked, col)
		}
	}
	return marked
}

func (h *AssetTransactionHistory) weekField(col WeekColumn) **string {
	switch col {
	case ColWkOut:
		return &h.WkOut
	case ColWkIn:
		return &h.WkIn
	case ColWkOutForRepair:
		return &h.WkOutForRepair
	case ColWkInForRepair:
		return &h.WkInForRepair
	case ColNewInStock:
		return &h.NewInStock
	case ColRefurbishedInStock:
		return &h.RefurbishedInStock
	case ColBorrow:
		return &h.Borrow
	case ColReturn:
		return &h.Return
	case ColRepair:
		return &h.Repair
	case ColOutToRental:
		return &h.OutToRental
	case ColInToRental:
		return &h.InToRental
	case ColDiscarded:
		return &h.Discarded
	case ColAdjustError:
		return &h.AdjustError
	}
	return nil
}

// SecuritySetTransaction is the ledger row for security-set items.
// Barcode-tracked classes get one row per unit; aggregate (Type C) classes
// get one row with UnitIn carrying the whole quantity. Only the in-leg is
// ever populated here: these rows mean "received back".
type SecuritySetTransaction struct {
	entity.BaseEntity

	Name    string  `db:"name" json:"name"`
	Barcode *string `db:"barcode" json:"barcode,omitempty"`
	UnitIn  int     `db:"unit_in" json:"unitIn"`

	DocumentID   *id.ID `db:"document_id" json:"documentId,omitempty"`
	DocumentCode string `db:"document_code" json:"documentCode,omitempty"`

	WarehouseIn *string    `db:"warehouse_in" json:"warehouseIn,omitempty"`
	InStockDate *time.Time `db:"in_stock_date" json:"inStockDate,omitempty"`
	FromVendor  *string    `db:"from_vendor" json:"fromVendor,omitempty"`
	FromShop    *string    `db:"from_shop" json:"fromShop,omitempty"`
	MCSCodeIn   *string    `db:"mcs_code_in" json:"mcsCodeIn,omitempty"`
}

// RepairTask records a unit handed off for repair. Created at approval of a
// repair document whether or not an open ledger leg was found for the
// barcode; PriorHistoryID is nil in the not-found case.
type RepairTask struct {
	entity.BaseEntity

	DocumentID   id.ID  `db:"document_id" json:"documentId"`
	DocumentCode string `db:"document_code" json:"documentCode,omitempty"`

	Barcode        string `db:"barcode" json:"barcode"`
	AssetName      string `db:"asset_name" json:"assetName,omitempty"`
	PriorHistoryID *id.ID `db:"prior_history_id" json:"priorHistoryId,omitempty"`

	ReporterName    string `db:"reporter_name" json:"reporterName"`
	ReporterPhone   string `db:"reporter_phone" json:"reporterPhone,omitempty"`
	RepairWarehouse string `db:"repair_warehouse" json:"repairWarehouse"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
