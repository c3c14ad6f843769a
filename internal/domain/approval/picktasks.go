package approval

import (
	"time"

	"fixtrack/internal/core/entity"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/picktask"
)

// PlanPickTasks expands a Picker-path document into one task per physical
// unit. Pure: it never touches storage, so the fan-out rules are testable
// without a database. The engine persists the returned slice exactly once
// per approval; idempotency is the caller's concern.
//
// Rules:
//   - each AssetLine emits qty tasks of qty 1
//   - transfer documents pre-fill the line barcode and use the creator's
//     vendor as the warehouse (the transfer already knows its source);
//     every other type picks from the line's withdrawFor warehouse
//   - security-set lines with qty 0 are skipped; aggregate classes
//     collapse into a single task carrying the whole quantity
//   - every task snapshots shop metadata and requester identity, so later
//     document edits never leak into created tasks
func PlanPickTasks(doc *document.Document, now time.Time) []picktask.PickAssetTask {
	isTransfer := doc.Type == document.TypeTransfer

	var tasks []picktask.PickAssetTask
	for si := range doc.Shops {
		shop := &doc.Shops[si]

		for _, line := range shop.Assets {
			warehouse := line.WithdrawFor
			barcode := ""
			if isTransfer {
				warehouse = doc.CreatorVendor
				barcode = line.Barcode
			}

			for i := 0; i < line.Qty; i++ {
				task := newTask(doc, shop, now)
				task.AssetName = line.Name
				task.Size = line.Size
				task.Grade = line.Grade
				task.Qty = 1
				task.Warehouse = warehouse
				task.Barcode = barcode
				tasks = append(tasks, task)
			}
		}

		for _, line := range shop.SecuritySets {
			if line.Qty <= 0 {
				continue
			}

			warehouse := line.WithdrawFor
			if isTransfer {
				warehouse = doc.CreatorVendor
			}

			if IsAggregateSecurityClass(line.Name) {
				task := newTask(doc, shop, now)
				task.AssetName = line.Name
				task.Qty = line.Qty
				task.IsSecuritySet = true
				task.Warehouse = warehouse
				tasks = append(tasks, task)
				continue
			}

			// Tracked classes: one task per unit, each to be barcoded
			// by a picker later.
			for i := 0; i < line.Qty; i++ {
				task := newTask(doc, shop, now)
				task.AssetName = line.Name
				task.Qty = 1
				task.IsSecuritySet = true
				task.Warehouse = warehouse
				tasks = append(tasks, task)
			}
		}
	}

	return tasks
}

func newTask(doc *document.Document, shop *document.Shop, now time.Time) picktask.PickAssetTask {
	return picktask.PickAssetTask{
		BaseEntity:   entity.NewBaseEntity(),
		DocumentID:   doc.ID,
		DocumentCode: doc.Code,
		TaskCode:     picktask.NewTaskCode(now),
		Status:       picktask.StatusPending,
		CreatedAt:    now,

		ShopCode:    shop.CodeOrSentinel(),
		ShopName:    shop.Name,
		InstallDate: shop.InstallDate,
		RemovalDate: shop.RemovalDate,
		Q7B7:        shop.Q7B7,
		ShopFocus:   shop.ShopFocus,

		RequesterName:    doc.RequesterName,
		RequesterCompany: doc.RequesterCompany,
		RequesterPhone:   doc.RequesterPhone,
	}
}
