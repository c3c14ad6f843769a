package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixtrack/internal/domain/catalogs/asset"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/ledger"
)

func shopToShopDoc() *document.Document {
	doc := document.NewDocument(document.TypeShopToShop, "Somchai P.", "Acme Displays", "081-234-5678")
	doc.Code = "SS-2026-00011"
	install := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) // Wednesday, 2025 WK 01
	doc.Shops = []document.Shop{
		{
			Code:        "MCS-1001",
			Name:        "Central Rama 9",
			InstallDate: &install,
			Assets: []document.AssetLine{
				{Name: "Display Case", Qty: 1, Barcode: "BC-7001", WithdrawFor: "WH-NORTH"},
				{Name: "Grouping Only", Qty: 1, WithdrawFor: "WH-NORTH"}, // no barcode, skipped
			},
		},
		{Code: "MCS-2002", Name: "Siam Paragon"},
	}
	return doc
}

func TestPlanShopToShopRows_BothLegsOneEvent(t *testing.T) {
	doc := shopToShopDoc()
	approvedAt := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	rows, err := PlanShopToShopRows(doc, approvedAt, "DEPARTMENT STORE")
	require.NoError(t, err)
	require.Len(t, rows, 1, "barcode-less lines are skipped")

	row := rows[0]
	assert.Equal(t, "BC-7001", row.Barcode)
	assert.Equal(t, ledger.BalanceOut, row.Balance)

	require.NotNil(t, row.FromShop)
	assert.Equal(t, "Central Rama 9", *row.FromShop)
	require.NotNil(t, row.MCSCodeIn)
	assert.Equal(t, "MCS-1001", *row.MCSCodeIn)
	require.NotNil(t, row.ToShop)
	assert.Equal(t, "Siam Paragon", *row.ToShop)
	require.NotNil(t, row.MCSCodeOut)
	assert.Equal(t, "MCS-2002", *row.MCSCodeOut)
	require.NotNil(t, row.ShopType)
	assert.Equal(t, "DEPARTMENT STORE", *row.ShopType)

	// Week label derives from the install date, not the approval date,
	// and lands in exactly wk_in + wk_out.
	assert.Equal(t, "2025 WK 01", row.WeekMark(ledger.ColWkIn))
	assert.Equal(t, "2025 WK 01", row.WeekMark(ledger.ColWkOut))
	assert.ElementsMatch(t,
		[]ledger.WeekColumn{ledger.ColWkIn, ledger.ColWkOut},
		row.MarkedWeekColumns(),
	)
}

func TestPlanShopToShopRows_InstallDateDefaultsToApproval(t *testing.T) {
	doc := shopToShopDoc()
	doc.Shops[0].InstallDate = nil
	approvedAt := time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC) // Monday of 2025 WK 01

	rows, err := PlanShopToShopRows(doc, approvedAt, "DEPARTMENT STORE")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025 WK 01", rows[0].WeekMark(ledger.ColWkOut))
}

func TestPlanShopToShopRows_MissingSourceIsFatal(t *testing.T) {
	doc := shopToShopDoc()
	doc.Shops = nil

	_, err := PlanShopToShopRows(doc, time.Now(), "")
	require.Error(t, err)
}

func TestPlanShopToShopRows_MissingDestinationDegrades(t *testing.T) {
	doc := shopToShopDoc()
	doc.Shops = doc.Shops[:1]

	rows, err := PlanShopToShopRows(doc, time.Now(), document.NoMCSCode)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NotNil(t, rows[0].MCSCodeOut)
	assert.Equal(t, document.NoMCSCode, *rows[0].MCSCodeOut)
	require.NotNil(t, rows[0].ToShop)
	assert.Empty(t, *rows[0].ToShop)
}

func TestPlanReturnRows_InLegOnlyBalanceIn(t *testing.T) {
	doc := returnDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Display Case", Size: "80cm", Qty: 1, Barcode: "BC-7001", WithdrawFor: "WH-NORTH"},
	}
	approvedAt := time.Date(2025, 12, 31, 8, 0, 0, 0, time.UTC) // 2026 WK 01

	rows := PlanReturnRows(doc, approvedAt, ledger.ColWkIn, nil)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, ledger.BalanceIn, row.Balance)
	require.NotNil(t, row.AssetStatus)
	assert.Equal(t, ledger.AssetStatusUsed, *row.AssetStatus)
	require.NotNil(t, row.WarehouseIn)
	assert.Equal(t, "WH-NORTH", *row.WarehouseIn)
	require.NotNil(t, row.FromVendor)
	assert.Equal(t, "Acme Displays", *row.FromVendor)
	assert.Nil(t, row.OutDate)
	assert.Nil(t, row.ToShop)

	assert.Equal(t, "2026 WK 01", row.WeekMark(ledger.ColWkIn))
	assert.Equal(t, []ledger.WeekColumn{ledger.ColWkIn}, row.MarkedWeekColumns())
}

func TestPlanReturnRows_MasterEnrichmentWithLineFallback(t *testing.T) {
	warranty := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	master := asset.NewAsset("BC-7001", "Display Case Mk II")
	master.Size = "85cm"
	master.PONumber = "PO-5521"
	master.WarrantyDate = &warranty

	doc := returnDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Display Case", Size: "80cm", Qty: 1, Barcode: "BC-7001", WithdrawFor: "WH-NORTH"},
		{Name: "Orphan Shelf", Qty: 1, Barcode: "BC-9999", WithdrawFor: "WH-NORTH"},
	}

	masters := map[string]*asset.Asset{"BC-7001": master, "BC-9999": nil}
	rows := PlanReturnRows(doc, time.Now(), ledger.ColWkIn, masters)
	require.Len(t, rows, 2)

	assert.Equal(t, "Display Case Mk II", rows[0].AssetName)
	assert.Equal(t, "85cm", rows[0].Size)
	assert.Equal(t, "PO-5521", rows[0].PONumber)
	assert.Equal(t, &warranty, rows[0].WarrantyDate)

	// Missing master is a referential gap: line values survive.
	assert.Equal(t, "Orphan Shelf", rows[1].AssetName)
	assert.Empty(t, rows[1].PONumber)
}

func TestPlanReturnRows_SkipsBarcodelessAndEmptyShops(t *testing.T) {
	doc := returnDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Grouping Only", Qty: 2, WithdrawFor: "WH-NORTH"},
	}
	assert.Empty(t, PlanReturnRows(doc, time.Now(), ledger.ColWkIn, nil))

	doc.Shops = nil
	assert.Empty(t, PlanReturnRows(doc, time.Now(), ledger.ColWkIn, nil))
}

func TestCloseRepairLeg(t *testing.T) {
	doc := document.NewDocument(document.TypeRepair, "Somchai P.", "Acme Displays", "081-234-5678")
	doc.CreatorVendor = "REPAIR-HUB"
	approvedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	row := &ledger.AssetTransactionHistory{Barcode: "BC-7001", Balance: ledger.BalanceIn}
	row.StampWeek(ledger.ColWkIn, "2024 WK 50") // earlier leg's mark stays

	CloseRepairLeg(row, doc, approvedAt)

	assert.Equal(t, ledger.BalanceOut, row.Balance)
	require.NotNil(t, row.ToVendor)
	assert.Equal(t, "REPAIR-HUB", *row.ToVendor)
	require.NotNil(t, row.AssetStatus)
	assert.Equal(t, ledger.AssetStatusRepair, *row.AssetStatus)
	require.NotNil(t, row.OutDate)
	assert.Equal(t, approvedAt, *row.OutDate)
	assert.Equal(t, "2025 WK 01", row.WeekMark(ledger.ColRepair))
}

func TestNewRepairTask(t *testing.T) {
	doc := document.NewDocument(document.TypeRepair, "Somchai P.", "Acme Displays", "081-234-5678")
	doc.Code = "RP-2026-00003"
	doc.CreatorVendor = "REPAIR-HUB"
	line := document.AssetLine{Name: "Display Case", Barcode: "BC-7001", Qty: 1}

	prior := &ledger.AssetTransactionHistory{AssetName: "Display Case Mk II"}
	prior.ID = doc.ID // any non-nil id

	task := NewRepairTask(doc, line, prior, time.Now())
	require.NotNil(t, task.PriorHistoryID)
	assert.Equal(t, prior.ID, *task.PriorHistoryID)
	assert.Equal(t, "Display Case Mk II", task.AssetName, "prior leg's name wins over the line")
	assert.Equal(t, "REPAIR-HUB", task.RepairWarehouse)
	assert.Equal(t, "Somchai P.", task.ReporterName)

	orphan := NewRepairTask(doc, line, nil, time.Now())
	assert.Nil(t, orphan.PriorHistoryID)
	assert.Equal(t, "Display Case", orphan.AssetName)
}
