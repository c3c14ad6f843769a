package approval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/catalogs/asset"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/ledger"
	"fixtrack/internal/domain/picktask"
)

// In-memory fakes. The tx manager just runs the function: atomicity is the
// database's job, the engine's job is to keep every write inside one call.

type fakeTxManager struct{ calls int }

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeDocumentRepo struct {
	docs map[id.ID]*document.Document
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *document.Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, docID id.ID) (*document.Document, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("document", docID.String())
	}
	return doc, nil
}

func (r *fakeDocumentRepo) GetForUpdate(ctx context.Context, docID id.ID) (*document.Document, error) {
	return r.GetByID(ctx, docID)
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *document.Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) ReplaceShops(_ context.Context, _ *document.Document) error { return nil }

func (r *fakeDocumentRepo) List(_ context.Context, _ document.ListFilter) ([]document.Document, error) {
	return nil, nil
}

func (r *fakeDocumentRepo) Count(_ context.Context, _ document.ListFilter) (int64, error) {
	return 0, nil
}

type fakePickTaskRepo struct {
	tasks []picktask.PickAssetTask
}

func (r *fakePickTaskRepo) CreateBatch(_ context.Context, tasks []picktask.PickAssetTask) error {
	r.tasks = append(r.tasks, tasks...)
	return nil
}

func (r *fakePickTaskRepo) GetByID(_ context.Context, _ id.ID) (*picktask.PickAssetTask, error) {
	return nil, apperror.NewNotFound("pick task", "")
}

func (r *fakePickTaskRepo) Update(_ context.Context, _ *picktask.PickAssetTask) error { return nil }

func (r *fakePickTaskRepo) ListByDocument(_ context.Context, _ id.ID) ([]picktask.PickAssetTask, error) {
	return nil, nil
}

func (r *fakePickTaskRepo) List(_ context.Context, _ picktask.ListFilter) ([]picktask.PickAssetTask, error) {
	return nil, nil
}

type fakeHistoryRepo struct {
	rows    []ledger.AssetTransactionHistory
	updated []ledger.AssetTransactionHistory
}

func (r *fakeHistoryRepo) CreateBatch(_ context.Context, rows []ledger.AssetTransactionHistory) error {
	r.rows = append(r.rows, rows...)
	return nil
}

func (r *fakeHistoryRepo) GetByID(_ context.Context, _ id.ID) (*ledger.AssetTransactionHistory, error) {
	return nil, apperror.NewNotFound("ledger row", "")
}

func (r *fakeHistoryRepo) GetLatestOpenLeg(_ context.Context, barcode string) (*ledger.AssetTransactionHistory, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].Barcode == barcode && r.rows[i].Balance == ledger.BalanceIn {
			row := r.rows[i]
			return &row, nil
		}
	}
	return nil, apperror.NewNotFound("open ledger leg", barcode)
}

func (r *fakeHistoryRepo) Update(_ context.Context, row *ledger.AssetTransactionHistory) error {
	r.updated = append(r.updated, *row)
	for i := range r.rows {
		if r.rows[i].ID == row.ID {
			r.rows[i] = *row
		}
	}
	return nil
}

func (r *fakeHistoryRepo) ListByBarcode(_ context.Context, _ string) ([]ledger.AssetTransactionHistory, error) {
	return nil, nil
}

func (r *fakeHistoryRepo) ListByDocument(_ context.Context, _ id.ID) ([]ledger.AssetTransactionHistory, error) {
	return nil, nil
}

type fakeSecurityRepo struct {
	rows []ledger.SecuritySetTransaction
}

func (r *fakeSecurityRepo) CreateBatch(_ context.Context, rows []ledger.SecuritySetTransaction) error {
	r.rows = append(r.rows, rows...)
	return nil
}

func (r *fakeSecurityRepo) ListByDocument(_ context.Context, _ id.ID) ([]ledger.SecuritySetTransaction, error) {
	return nil, nil
}

type fakeRepairRepo struct {
	tasks []ledger.RepairTask
}

func (r *fakeRepairRepo) Create(_ context.Context, task *ledger.RepairTask) error {
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *fakeRepairRepo) ListByDocument(_ context.Context, _ id.ID) ([]ledger.RepairTask, error) {
	return nil, nil
}

func (r *fakeRepairRepo) List(_ context.Context, _ ledger.RepairTaskFilter) ([]ledger.RepairTask, error) {
	return nil, nil
}

type fakeAssetLookup struct {
	assets map[string]*asset.Asset
}

func (l *fakeAssetLookup) GetByBarcode(_ context.Context, barcode string) (*asset.Asset, error) {
	if a, ok := l.assets[barcode]; ok {
		return a, nil
	}
	return nil, apperror.NewNotFound("asset", barcode)
}

type fakeShopTypeLookup struct {
	types map[string]string
}

func (l *fakeShopTypeLookup) TypeByCode(_ context.Context, code string) (string, error) {
	if t, ok := l.types[code]; ok {
		return t, nil
	}
	return "", apperror.NewNotFound("shop", code)
}

type engineFixture struct {
	engine    *Engine
	documents *fakeDocumentRepo
	tasks     *fakePickTaskRepo
	history   *fakeHistoryRepo
	security  *fakeSecurityRepo
	repairs   *fakeRepairRepo
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{
		documents: &fakeDocumentRepo{docs: make(map[id.ID]*document.Document)},
		tasks:     &fakePickTaskRepo{},
		history:   &fakeHistoryRepo{},
		security:  &fakeSecurityRepo{},
		repairs:   &fakeRepairRepo{},
	}
	f.engine = NewEngine(
		f.documents, f.tasks, f.history, f.security, f.repairs,
		&fakeAssetLookup{assets: map[string]*asset.Asset{}},
		&fakeShopTypeLookup{types: map[string]string{"MCS-2002": "DEPARTMENT STORE"}},
		&fakeTxManager{}, nil,
	)
	return f
}

func (f *engineFixture) add(doc *document.Document) *document.Document {
	doc.Status = document.StatusSubmitted
	f.documents.docs[doc.ID] = doc
	return doc
}

func TestEngineApprove_PickerPath(t *testing.T) {
	f := newEngineFixture(t)
	doc := withdrawDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Gondola Shelf", Qty: 3, WithdrawFor: "WH-NORTH"},
	}
	doc.Shops[0].SecuritySets = []document.SecuritySetLine{
		{Name: "Spider Wrap TYPE C", Qty: 5, WithdrawFor: "WH-NORTH"},
	}
	f.add(doc)

	res, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.NoError(t, err)

	assert.Equal(t, PathPicker, res.Path)
	assert.Equal(t, document.StatusApproved, res.Status)
	assert.Equal(t, 4, res.TasksCreated)
	assert.Len(t, f.tasks.tasks, 4)
	assert.Equal(t, document.StatusApproved, f.documents.docs[doc.ID].Status)
}

func TestEngineApprove_NoOpPath(t *testing.T) {
	f := newEngineFixture(t)
	doc := f.add(withdrawDoc())

	res, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.NoError(t, err)

	assert.Equal(t, PathNoOp, res.Path)
	assert.Zero(t, res.TasksCreated)
	assert.Empty(t, f.tasks.tasks)
	assert.Equal(t, document.StatusApproved, f.documents.docs[doc.ID].Status)
}

func TestEngineApprove_DoubleApprovalRejected(t *testing.T) {
	f := newEngineFixture(t)
	doc := withdrawDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Gondola Shelf", Qty: 1, WithdrawFor: "WH-NORTH"},
	}
	f.add(doc)

	_, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.NoError(t, err)

	_, err = f.engine.Approve(context.Background(), doc.ID, "", "")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotSubmitted, appErr.Code)

	// No duplicate tasks from the rejected second call.
	assert.Len(t, f.tasks.tasks, 1)
}

func TestEngineApprove_DocumentNotFound(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.engine.Approve(context.Background(), id.New(), "", "")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestEngineApprove_DraftRejected(t *testing.T) {
	f := newEngineFixture(t)
	doc := withdrawDoc()
	f.documents.docs[doc.ID] = doc // stays draft

	_, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotSubmitted, appErr.Code)
}

func TestEngineApprove_ReturnWritesLedgerAndSecurity(t *testing.T) {
	f := newEngineFixture(t)
	doc := returnDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Display Case", Qty: 1, Barcode: "BC-7001", WithdrawFor: "WH-NORTH"},
	}
	doc.Shops[0].SecuritySets = []document.SecuritySetLine{
		{Name: "CONTROLBOX", Qty: 2, WithdrawFor: "WH-NORTH"},
	}
	f.add(doc)

	res, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.NoError(t, err)

	assert.Equal(t, PathDirectLedger, res.Path)
	assert.Equal(t, 1, res.TransactionsCreated)
	assert.Equal(t, 2, res.SecurityTransactionsCreated)
	require.Len(t, f.history.rows, 1)
	assert.Equal(t, []ledger.WeekColumn{ledger.ColWkIn}, f.history.rows[0].MarkedWeekColumns())
}

func TestEngineApprove_OtherActivityOverridesReturnColumn(t *testing.T) {
	f := newEngineFixture(t)
	doc := returnDoc()
	doc.ReturnCondition = document.ReturnFromBorrow
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Display Case", Qty: 1, Barcode: "BC-7001", WithdrawFor: "WH-NORTH"},
	}
	f.add(doc)

	res, err := f.engine.Approve(context.Background(), doc.ID, "discarded", "")
	require.NoError(t, err)
	require.Equal(t, 1, res.TransactionsCreated)

	row := f.history.rows[0]
	assert.Equal(t, []ledger.WeekColumn{ledger.ColDiscarded}, row.MarkedWeekColumns())
	assert.Empty(t, row.WeekMark(ledger.ColWkIn))
	assert.Empty(t, row.WeekMark(ledger.ColReturn))
	assert.Equal(t, "discarded", f.documents.docs[doc.ID].OtherActivity)
}

func TestEngineApprove_UnknownOtherActivityFails(t *testing.T) {
	f := newEngineFixture(t)
	doc := f.add(returnDoc())

	_, err := f.engine.Approve(context.Background(), doc.ID, "vaporized", "")
	require.Error(t, err)
	assert.Equal(t, document.StatusSubmitted, f.documents.docs[doc.ID].Status)
}

func TestEngineApprove_ShopToShop(t *testing.T) {
	f := newEngineFixture(t)
	doc := f.add(shopToShopDoc())

	res, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, res.TransactionsCreated)
	require.Len(t, f.history.rows, 1)
	row := f.history.rows[0]
	require.NotNil(t, row.ShopType)
	assert.Equal(t, "DEPARTMENT STORE", *row.ShopType)
	assert.ElementsMatch(t,
		[]ledger.WeekColumn{ledger.ColWkIn, ledger.ColWkOut},
		row.MarkedWeekColumns(),
	)
}

func TestEngineApprove_RepairClosesOpenLeg(t *testing.T) {
	f := newEngineFixture(t)

	// Seed an open leg as a previous return would have left it.
	open := ledger.AssetTransactionHistory{Barcode: "BC-7001", Balance: ledger.BalanceIn}
	open.ID = id.New()
	f.history.rows = append(f.history.rows, open)

	doc := document.NewDocument(document.TypeRepair, "Somchai P.", "Acme Displays", "081-234-5678")
	doc.Code = "RP-2026-00003"
	doc.CreatorVendor = "REPAIR-HUB"
	doc.Shops = []document.Shop{{
		Name: "Central Rama 9",
		Assets: []document.AssetLine{
			{Name: "Display Case", Qty: 1, Barcode: "BC-7001", WithdrawFor: "WH-NORTH"},
			{Name: "Ghost Shelf", Qty: 1, Barcode: "BC-MISSING", WithdrawFor: "WH-NORTH"},
		},
	}}
	f.add(doc)

	res, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.NoError(t, err)

	// One leg closed, two repair tasks created, one warning.
	assert.Equal(t, 1, res.TransactionsUpdated)
	assert.Equal(t, 2, res.TransactionsCreated)
	assert.Equal(t, []string{"BC-MISSING"}, res.NotFoundBarcodes)

	require.Len(t, f.history.updated, 1)
	closed := f.history.updated[0]
	assert.Equal(t, ledger.BalanceOut, closed.Balance)
	require.NotNil(t, closed.AssetStatus)
	assert.Equal(t, ledger.AssetStatusRepair, *closed.AssetStatus)
	require.NotNil(t, closed.ToVendor)
	assert.Equal(t, "REPAIR-HUB", *closed.ToVendor)

	require.Len(t, f.repairs.tasks, 2)
	assert.NotNil(t, f.repairs.tasks[0].PriorHistoryID)
	assert.Nil(t, f.repairs.tasks[1].PriorHistoryID)
	assert.Equal(t, "REPAIR-HUB", f.repairs.tasks[1].RepairWarehouse)
}

func TestEngineApprove_RepairAllMissingStillSucceeds(t *testing.T) {
	f := newEngineFixture(t)
	doc := document.NewDocument(document.TypeRepair, "Somchai P.", "Acme Displays", "081-234-5678")
	doc.CreatorVendor = "REPAIR-HUB"
	doc.Shops = []document.Shop{{
		Name: "Central Rama 9",
		Assets: []document.AssetLine{
			{Name: "Ghost Shelf", Qty: 1, Barcode: "BC-MISSING", WithdrawFor: "WH-NORTH"},
		},
	}}
	f.add(doc)

	res, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.NoError(t, err)

	assert.Zero(t, res.TransactionsUpdated)
	assert.Equal(t, 1, res.TransactionsCreated)
	assert.Equal(t, []string{"BC-MISSING"}, res.NotFoundBarcodes)
	assert.Equal(t, document.StatusApproved, f.documents.docs[doc.ID].Status)
}

func TestEngineApprove_ShopToShopNoSourceShopAborts(t *testing.T) {
	f := newEngineFixture(t)
	doc := document.NewDocument(document.TypeShopToShop, "Somchai P.", "Acme Displays", "081-234-5678")
	f.add(doc)

	_, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDocumentHasNoShops, appErr.Code)
	assert.Empty(t, f.history.rows)
}

func TestEngineReject(t *testing.T) {
	f := newEngineFixture(t)
	doc := f.add(withdrawDoc())

	res, err := f.engine.Reject(context.Background(), doc.ID, "duplicate request")
	require.NoError(t, err)
	assert.Equal(t, document.StatusRejected, res.Status)
	assert.Equal(t, document.StatusRejected, f.documents.docs[doc.ID].Status)
	assert.Equal(t, "duplicate request", f.documents.docs[doc.ID].TransactionStatus)

	// A rejected document cannot be approved afterwards.
	_, err = f.engine.Approve(context.Background(), doc.ID, "", "")
	require.Error(t, err)
}

func TestEngineApprove_DeterministicClock(t *testing.T) {
	f := newEngineFixture(t)
	f.engine.now = func() time.Time {
		return time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	}

	doc := returnDoc()
	doc.Shops[0].Assets = []document.AssetLine{
		{Name: "Display Case", Qty: 1, Barcode: "BC-7001", WithdrawFor: "WH-NORTH"},
	}
	f.add(doc)

	_, err := f.engine.Approve(context.Background(), doc.ID, "", "")
	require.NoError(t, err)
	require.Len(t, f.history.rows, 1)
	assert.Equal(t, "2025 WK 01", f.history.rows[0].WeekMark(ledger.ColWkIn))
}
