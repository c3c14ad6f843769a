package approval

import (
	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/ledger"
)

// ResolveWeekColumn maps a document type plus condition flags to the one
// week-marker column the approval must populate. Returns false when the
// type has no week mapping.
//
// An admin-supplied otherActivity always wins: it selects its own column
// exclusively and suppresses the type's normal column. Otherwise return
// documents land in wk_in, unless the return closes a borrow, which lands
// in the borrow-return column instead. An approved repair document marks
// the unit's eventual reshelving as refurbished stock.
//
// Shoptoshop is deliberately absent here: it is the one event that stamps
// two columns (wk_in + wk_out) and the ledger planner handles it directly.
func ResolveWeekColumn(docType document.Type, cond document.ReturnCondition, otherActivity string) (ledger.WeekColumn, bool) {
	if col, ok := ledger.OtherActivityColumn(otherActivity); ok {
		return col, true
	}

	switch docType {
	case document.TypeWithdraw, document.TypeRouting2Shops,
		document.TypeRouting3Shops, document.TypeRouting4Shops,
		document.TypeWithdrawOther:
		return ledger.ColWkOut, true

	case document.TypeTransfer:
		return ledger.ColWkOutForRepair, true

	case document.TypeBorrow, document.TypeBorrowSecurity:
		return ledger.ColBorrow, true

	case document.TypeReturn, document.TypeReturnAsset:
		if cond == document.ReturnFromBorrow {
			return ledger.ColReturn, true
		}
		return ledger.ColWkIn, true

	case document.TypeRepair:
		return ledger.ColRefurbishedInStock, true
	}

	return "", false
}
