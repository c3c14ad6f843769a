package approval

import (
	"time"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/entity"
	"fixtrack/internal/domain/catalogs/asset"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/ledger"
	"fixtrack/pkg/week"
)

// Direct-ledger planners. Like the pick-task fan-out these are pure: the
// engine prefetches master data and resolves shop types, the planners only
// decide field population. Asset lines without a barcode are skipped
// everywhere (display-only groupings carry no ledger identity).

// PlanShopToShopRows builds the ledger rows for a shoptoshop document.
// Each row carries both legs at once and balance 0: one event, the unit
// left the source shop and arrived at the destination, never passing
// through a warehouse. The week label derives from the source shop's
// install date, falling back to the approval date, and stamps wk_in and
// wk_out together.
//
// destShopType is the destination's resolved shop type (or the NO MCS
// sentinel when the destination has no code). A missing source shop is
// fatal; a missing destination degrades to sentinel metadata.
func PlanShopToShopRows(doc *document.Document, approvedAt time.Time, destShopType string) ([]ledger.AssetTransactionHistory, error) {
	source := doc.SourceShop()
	if source == nil {
		return nil, apperror.NewBusinessRule(
			apperror.CodeDocumentHasNoShops,
			"Shop-to-shop document has no source shop",
		).WithDetail("document_id", doc.ID.String())
	}

	destName := ""
	destCode := document.NoMCSCode
	if dest := doc.DestinationShop(); dest != nil {
		destName = dest.Name
		destCode = dest.CodeOrSentinel()
	}

	moveDate := approvedAt
	if source.InstallDate != nil {
		moveDate = *source.InstallDate
	}
	label := week.Bucket(moveDate)

	var rows []ledger.AssetTransactionHistory
	for _, line := range source.Assets {
		if line.Barcode == "" {
			continue
		}

		docID := doc.ID
		row := ledger.AssetTransactionHistory{
			BaseEntity:   entity.NewBaseEntity(),
			Barcode:      line.Barcode,
			AssetName:    line.Name,
			Size:         line.Size,
			Grade:        line.Grade,
			DocumentID:   &docID,
			DocumentCode: doc.Code,
			Balance:      ledger.BalanceOut,

			InStockDate: ptr(moveDate),
			FromShop:    ptr(source.Name),
			MCSCodeIn:   ptr(source.CodeOrSentinel()),

			OutDate:    ptr(moveDate),
			ToShop:     ptr(destName),
			MCSCodeOut: ptr(destCode),
			ShopType:   ptr(destShopType),
		}
		row.StampWeek(ledger.ColWkIn, label)
		row.StampWeek(ledger.ColWkOut, label)
		rows = append(rows, row)
	}

	return rows, nil
}

// PlanReturnRows builds the ledger rows for a return/returnasset document:
// in-leg only, balance 1, asset status USED. The week column comes from
// ResolveWeekColumn, so returnCondition and otherActivity are already
// folded in. Master records in masters (keyed by barcode) enrich name,
// size, grade, warranty and PO; a missing master falls back to the line's
// own values.
func PlanReturnRows(doc *document.Document, approvedAt time.Time, col ledger.WeekColumn, masters map[string]*asset.Asset) []ledger.AssetTransactionHistory {
	label := week.Bucket(approvedAt)

	var rows []ledger.AssetTransactionHistory
	for si := range doc.Shops {
		shop := &doc.Shops[si]

		for _, line := range shop.Assets {
			if line.Barcode == "" {
				continue
			}

			docID := doc.ID
			row := ledger.AssetTransactionHistory{
				BaseEntity:   entity.NewBaseEntity(),
				Barcode:      line.Barcode,
				AssetName:    line.Name,
				Size:         line.Size,
				Grade:        line.Grade,
				DocumentID:   &docID,
				DocumentCode: doc.Code,
				Balance:      ledger.BalanceIn,

				WarehouseIn: ptr(line.WithdrawFor),
				InStockDate: ptr(approvedAt),
				FromVendor:  ptr(doc.RequesterCompany),
				FromShop:    ptr(shop.Name),
				MCSCodeIn:   ptr(shop.CodeOrSentinel()),
				AssetStatus: ptr(ledger.AssetStatusUsed),
			}

			if master := masters[line.Barcode]; master != nil {
				row.AssetName = master.Name
				if master.Size != "" {
					row.Size = master.Size
				}
				if master.Grade != "" {
					row.Grade = master.Grade
				}
				row.WarrantyDate = master.WarrantyDate
				row.PONumber = master.PONumber
			}

			row.StampWeek(col, label)
			rows = append(rows, row)
		}
	}

	return rows
}

// CloseRepairLeg writes the out-leg onto an open ledger row for a unit
// leaving for repair: destination is the document creator's vendor, status
// SEND TO REPAIR, balance flips to 0 and the repair week column is
// stamped. The row must be the latest balance=1 leg for the barcode,
// fetched under a row lock by the engine.
func CloseRepairLeg(row *ledger.AssetTransactionHistory, doc *document.Document, approvedAt time.Time) {
	row.OutDate = ptr(approvedAt)
	row.ToVendor = ptr(doc.CreatorVendor)
	row.AssetStatus = ptr(ledger.AssetStatusRepair)
	row.Balance = ledger.BalanceOut
	row.StampWeek(ledger.ColRepair, week.Bucket(approvedAt))
	row.Touch()
}

// NewRepairTask records the repair hand-off itself. Created whether or not
// an open ledger leg was found; priorHistory is nil in the not-found case.
func NewRepairTask(doc *document.Document, line document.AssetLine, prior *ledger.AssetTransactionHistory, approvedAt time.Time) ledger.RepairTask {
	task := ledger.RepairTask{
		BaseEntity:      entity.NewBaseEntity(),
		DocumentID:      doc.ID,
		DocumentCode:    doc.Code,
		Barcode:         line.Barcode,
		AssetName:       line.Name,
		ReporterName:    doc.RequesterName,
		ReporterPhone:   doc.RequesterPhone,
		RepairWarehouse: doc.CreatorVendor,
		CreatedAt:       approvedAt,
	}
	if prior != nil {
		priorID := prior.ID
		task.PriorHistoryID = &priorID
		if prior.AssetName != "" {
			task.AssetName = prior.AssetName
		}
	}
	return task
}
