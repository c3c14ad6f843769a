package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/picktask"
)

func withdrawDoc() *document.Document {
	doc := document.NewDocument(document.TypeWithdraw, "Somchai P.", "Acme Displays", "081-234-5678")
	doc.Code = "WD-2026-00042"
	doc.CreatorVendor = "BKK-MAIN"
	install := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	doc.Shops = []document.Shop{{
		Code:        "MCS-1001",
		Name:        "Central Rama 9",
		InstallDate: &install,
		Q7B7:        "Q7",
		ShopFocus:   "focus",
	}}
	return doc
}

func TestPlanPickTasks_AssetQtyFanOut(t *testing.T) {
	doc := withdrawDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Gondola Shelf", Size: "120cm", Grade: "A", Qty: 3, WithdrawFor: "WH-NORTH"},
	}

	tasks := PlanPickTasks(doc, time.Now())
	require.Len(t, tasks, 3)

	for _, task := range tasks {
		assert.Equal(t, 1, task.Qty)
		assert.Equal(t, "Gondola Shelf", task.AssetName)
		assert.Equal(t, "WH-NORTH", task.Warehouse)
		assert.Empty(t, task.Barcode, "non-transfer tasks are barcoded by the picker")
		assert.Equal(t, picktask.StatusPending, task.Status)
	}
}

func TestPlanPickTasks_AggregateSecurityCollapses(t *testing.T) {
	// One qty=3 asset line plus one aggregate qty=5 security line must
	// yield exactly 4 tasks, not 8.
	doc := withdrawDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Gondola Shelf", Qty: 3, WithdrawFor: "WH-NORTH"},
	}
	doc.Shops[0].SecuritySets = []document.SecuritySetLine{
		{Name: "Spider Wrap TYPE C", Qty: 5, WithdrawFor: "WH-NORTH"},
	}

	tasks := PlanPickTasks(doc, time.Now())
	require.Len(t, tasks, 4)

	var aggregate *picktask.PickAssetTask
	for i := range tasks {
		if tasks[i].IsSecuritySet {
			aggregate = &tasks[i]
		}
	}
	require.NotNil(t, aggregate)
	assert.Equal(t, 5, aggregate.Qty)
}

func TestPlanPickTasks_TrackedSecurityFansOut(t *testing.T) {
	doc := withdrawDoc()
	doc.Shops[0].SecuritySets = []document.SecuritySetLine{
		{Name: "CONTROLBOX", Qty: 2, WithdrawFor: "WH-NORTH"},
		{Name: "Keeper TYPE C", Qty: 0, WithdrawFor: "WH-NORTH"}, // excluded
	}

	tasks := PlanPickTasks(doc, time.Now())
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.True(t, task.IsSecuritySet)
		assert.Equal(t, 1, task.Qty)
	}
}

func TestPlanPickTasks_TransferPrefillsBarcodeAndWarehouse(t *testing.T) {
	doc := withdrawDoc()
	doc.Type = document.TypeTransfer
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Display Case", Qty: 1, Barcode: "BC-7001", WithdrawFor: "WH-NORTH"},
	}

	tasks := PlanPickTasks(doc, time.Now())
	require.Len(t, tasks, 1)

	// Transfers pick from the creator's own warehouse and already know
	// which unit moves.
	assert.Equal(t, "BKK-MAIN", tasks[0].Warehouse)
	assert.Equal(t, "BC-7001", tasks[0].Barcode)
}

func TestPlanPickTasks_SnapshotsShopAndRequester(t *testing.T) {
	doc := withdrawDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Gondola Shelf", Qty: 1, WithdrawFor: "WH-NORTH"},
	}

	tasks := PlanPickTasks(doc, time.Now())
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, "MCS-1001", task.ShopCode)
	assert.Equal(t, "Central Rama 9", task.ShopName)
	assert.Equal(t, doc.Shops[0].InstallDate, task.InstallDate)
	assert.Equal(t, "Q7", task.Q7B7)
	assert.Equal(t, "Somchai P.", task.RequesterName)
	assert.Equal(t, "Acme Displays", task.RequesterCompany)
	assert.Equal(t, doc.Code, task.DocumentCode)
	assert.NotEmpty(t, task.TaskCode)

	// Mutating the document afterwards must not reach the snapshot.
	doc.Shops[0].Name = "renamed"
	doc.RequesterName = "someone else"
	assert.Equal(t, "Central Rama 9", task.ShopName)
	assert.Equal(t, "Somchai P.", task.RequesterName)
}

func TestPlanPickTasks_SentinelShopCode(t *testing.T) {
	doc := withdrawDoc()
	doc.Shops[0].Code = ""
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Gondola Shelf", Qty: 1, WithdrawFor: "WH-NORTH"},
	}

	tasks := PlanPickTasks(doc, time.Now())
	require.Len(t, tasks, 1)
	assert.Equal(t, document.NoMCSCode, tasks[0].ShopCode)
}

func TestPlanPickTasks_UniqueTaskCodes(t *testing.T) {
	doc := withdrawDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Gondola Shelf", Qty: 10, WithdrawFor: "WH-NORTH"},
	}

	tasks := PlanPickTasks(doc, time.Now())
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		assert.False(t, seen[task.TaskCode], "duplicate task code %s", task.TaskCode)
		seen[task.TaskCode] = true
	}
}
