package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixtrack/internal/domain/document"
)

func returnDoc() *document.Document {
	doc := document.NewDocument(document.TypeReturnAsset, "Somchai P.", "Acme Displays", "081-234-5678")
	doc.Code = "RA-2026-00007"
	doc.Shops = []document.Shop{{
		Code: "MCS-1001",
		Name: "Central Rama 9",
	}}
	return doc
}

func TestIsAggregateSecurityClass(t *testing.T) {
	assert.True(t, IsAggregateSecurityClass("Spider Wrap TYPE C"))
	assert.True(t, IsAggregateSecurityClass("type c box"))
	assert.False(t, IsAggregateSecurityClass("CONTROLBOX"))
	assert.False(t, IsAggregateSecurityClass("Type B Keeper"))
}

func TestPlanSecurityRows_AggregateSingleRow(t *testing.T) {
	doc := returnDoc()
	doc.Shops[0].SecuritySets = []document.SecuritySetLine{
		{Name: "Spider Wrap TYPE C", Qty: 7, WithdrawFor: "WH-NORTH"},
	}

	rows := PlanSecurityRows(doc, time.Now())
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].UnitIn)
	assert.Nil(t, rows[0].Barcode)
}

func TestPlanSecurityRows_TrackedWithBarcode(t *testing.T) {
	doc := returnDoc()
	doc.Shops[0].SecuritySets = []document.SecuritySetLine{
		{Name: "CONTROLBOX", Qty: 3, Barcode: "SEC-9001", WithdrawFor: "WH-NORTH"},
	}

	// A caller-supplied barcode pins the line to one concrete unit.
	rows := PlanSecurityRows(doc, time.Now())
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].UnitIn)
	require.NotNil(t, rows[0].Barcode)
	assert.Equal(t, "SEC-9001", *rows[0].Barcode)
}

func TestPlanSecurityRows_TrackedWithoutBarcodeFansOut(t *testing.T) {
	doc := returnDoc()
	doc.Shops[0].SecuritySets = []document.SecuritySetLine{
		{Name: "CONTROLBOX", Qty: 3, WithdrawFor: "WH-NORTH"},
	}

	rows := PlanSecurityRows(doc, time.Now())
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, 1, row.UnitIn)
		assert.Nil(t, row.Barcode)
	}
}

func TestPlanSecurityRows_ZeroQtyExcluded(t *testing.T) {
	doc := returnDoc()
	doc.Shops[0].SecuritySets = []document.SecuritySetLine{
		{Name: "CONTROLBOX", Qty: 0, WithdrawFor: "WH-NORTH"},
		{Name: "Spider Wrap TYPE C", Qty: 0, WithdrawFor: "WH-NORTH"},
	}

	assert.Empty(t, PlanSecurityRows(doc, time.Now()))
}

func TestPlanSecurityRows_InLegOnly(t *testing.T) {
	approvedAt := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	doc := returnDoc()
	doc.Shops[0].SecuritySets = []document.SecuritySetLine{
		{Name: "CONTROLBOX", Qty: 1, Barcode: "SEC-9001", WithdrawFor: "WH-NORTH"},
	}

	rows := PlanSecurityRows(doc, approvedAt)
	require.Len(t, rows, 1)

	row := rows[0]
	require.NotNil(t, row.WarehouseIn)
	assert.Equal(t, "WH-NORTH", *row.WarehouseIn)
	require.NotNil(t, row.InStockDate)
	assert.Equal(t, approvedAt, *row.InStockDate)
	require.NotNil(t, row.FromVendor)
	assert.Equal(t, "Acme Displays", *row.FromVendor)
	require.NotNil(t, row.FromShop)
	assert.Equal(t, "Central Rama 9", *row.FromShop)
	require.NotNil(t, row.MCSCodeIn)
	assert.Equal(t, "MCS-1001", *row.MCSCodeIn)
	require.NotNil(t, row.DocumentID)
	assert.Equal(t, doc.ID, *row.DocumentID)
}
