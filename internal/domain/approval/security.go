package approval

import (
	"strings"
	"time"

	"fixtrack/internal/core/entity"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/ledger"
)

// aggregateMarker identifies security-set classes that are never tracked
// per unit. Matching is a case-insensitive substring check against the
// class name, so "Spider Wrap TYPE C" and "type c box" both qualify.
const aggregateMarker = "TYPE C"

// IsAggregateSecurityClass reports whether a security-set class is
// accounted for in bulk rather than unit by unit.
func IsAggregateSecurityClass(name string) bool {
	return strings.Contains(strings.ToUpper(name), aggregateMarker)
}

// PlanSecurityRows builds the in-leg security ledger rows for an approved
// document. Security sets only ever enter the ledger here; the out leg is
// recorded by whatever document later consumes them.
//
//   - tracked class with a caller-supplied barcode: one row, unitIn 1
//   - tracked class without a barcode: qty rows of unitIn 1, barcode nil,
//     to be filled when the physical units are labelled
//   - aggregate class: a single row carrying the whole quantity
func PlanSecurityRows(doc *document.Document, approvedAt time.Time) []ledger.SecuritySetTransaction {
	var rows []ledger.SecuritySetTransaction
	for si := range doc.Shops {
		shop := &doc.Shops[si]

		for _, line := range shop.SecuritySets {
			if line.Qty <= 0 {
				continue
			}

			if IsAggregateSecurityClass(line.Name) {
				row := newSecurityRow(doc, shop, line, approvedAt)
				row.UnitIn = line.Qty
				rows = append(rows, row)
				continue
			}

			if line.Barcode != "" {
				barcode := line.Barcode
				row := newSecurityRow(doc, shop, line, approvedAt)
				row.Barcode = &barcode
				row.UnitIn = 1
				rows = append(rows, row)
				continue
			}

			for i := 0; i < line.Qty; i++ {
				row := newSecurityRow(doc, shop, line, approvedAt)
				row.UnitIn = 1
				rows = append(rows, row)
			}
		}
	}

	return rows
}

func newSecurityRow(doc *document.Document, shop *document.Shop, line document.SecuritySetLine, approvedAt time.Time) ledger.SecuritySetTransaction {
	docID := doc.ID
	return ledger.SecuritySetTransaction{
		BaseEntity:   entity.NewBaseEntity(),
		DocumentID:   &docID,
		DocumentCode: doc.Code,
		Name:         line.Name,
		WarehouseIn:  ptr(line.WithdrawFor),
		InStockDate:  ptr(approvedAt),
		FromVendor:   ptr(doc.RequesterCompany),
		FromShop:     ptr(shop.Name),
		MCSCodeIn:    ptr(shop.CodeOrSentinel()),
	}
}

func ptr[T any](v T) *T { return &v }
