package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/ledger"
)

func TestResolveWeekColumn_TypeDefaults(t *testing.T) {
	tests := []struct {
		docType document.Type
		cond    document.ReturnCondition
		want    ledger.WeekColumn
	}{
		{document.TypeWithdraw, document.ReturnNormal, ledger.ColWkOut},
		{document.TypeRouting2Shops, document.ReturnNormal, ledger.ColWkOut},
		{document.TypeRouting3Shops, document.ReturnNormal, ledger.ColWkOut},
		{document.TypeRouting4Shops, document.ReturnNormal, ledger.ColWkOut},
		{document.TypeWithdrawOther, document.ReturnNormal, ledger.ColWkOut},
		{document.TypeTransfer, document.ReturnNormal, ledger.ColWkOutForRepair},
		{document.TypeBorrow, document.ReturnNormal, ledger.ColBorrow},
		{document.TypeBorrowSecurity, document.ReturnNormal, ledger.ColBorrow},
		{document.TypeReturn, document.ReturnNormal, ledger.ColWkIn},
		{document.TypeReturnAsset, document.ReturnNormal, ledger.ColWkIn},
		{document.TypeReturn, document.ReturnFromBorrow, ledger.ColReturn},
		{document.TypeReturnAsset, document.ReturnFromBorrow, ledger.ColReturn},
		{document.TypeRepair, document.ReturnNormal, ledger.ColRefurbishedInStock},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType)+"/"+string(tt.cond), func(t *testing.T) {
			col, ok := ResolveWeekColumn(tt.docType, tt.cond, "")
			require.True(t, ok)
			assert.Equal(t, tt.want, col)
		})
	}
}

func TestResolveWeekColumn_OtherActivityAlwaysWins(t *testing.T) {
	tests := []struct {
		activity string
		want     ledger.WeekColumn
	}{
		{"outToRentalWarehouse", ledger.ColOutToRental},
		{"inToRentalWarehouse", ledger.ColInToRental},
		{"discarded", ledger.ColDiscarded},
		{"adjustError", ledger.ColAdjustError},
	}

	for _, tt := range tests {
		t.Run(tt.activity, func(t *testing.T) {
			// Even a from_borrow return yields only the override column.
			col, ok := ResolveWeekColumn(document.TypeReturn, document.ReturnFromBorrow, tt.activity)
			require.True(t, ok)
			assert.Equal(t, tt.want, col)
		})
	}
}

func TestResolveWeekColumn_UnrecognizedActivityFallsBack(t *testing.T) {
	col, ok := ResolveWeekColumn(document.TypeWithdraw, document.ReturnNormal, "repainted")
	require.True(t, ok)
	assert.Equal(t, ledger.ColWkOut, col)
}

func TestResolveWeekColumn_ShopToShopHasNoSingleColumn(t *testing.T) {
	// Shoptoshop stamps wk_in and wk_out together in the ledger planner;
	// the single-column resolver does not map it.
	_, ok := ResolveWeekColumn(document.TypeShopToShop, document.ReturnNormal, "")
	assert.False(t, ok)
}
