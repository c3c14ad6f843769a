package document

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/id"
	"fixtrack/pkg/docnum"
)

type fakeRepo struct {
	docs map[id.ID]*Document
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[id.ID]*Document)}
}

func (r *fakeRepo) Create(_ context.Context, doc *Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, docID id.ID) (*Document, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("document", docID.String())
	}
	return doc, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Document, error) {
	return r.GetByID(ctx, docID)
}

func (r *fakeRepo) Update(_ context.Context, doc *Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) ReplaceShops(_ context.Context, _ *Document) error { return nil }

func (r *fakeRepo) List(_ context.Context, _ ListFilter) ([]Document, error) { return nil, nil }

func (r *fakeRepo) Count(_ context.Context, _ ListFilter) (int64, error) { return 0, nil }

type fakeNumerator struct{ next int }

func (n *fakeNumerator) GetNextNumber(_ context.Context, cfg docnum.Config, _ *docnum.Options, period time.Time) (string, error) {
	n.next++
	return fmt.Sprintf("%s-%d-%05d", cfg.Prefix, period.Year(), n.next), nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, &fakeNumerator{}, passthroughTx{}), repo
}

func validDoc(docType Type) *Document {
	doc := NewDocument(docType, "Somchai P.", "Acme Displays", "081-234-5678")
	doc.CreatorVendor = "BKK-MAIN"
	doc.Shops = []Shop{{
		Code: "MCS-1001",
		Name: "Central Rama 9",
		Assets: []AssetLine{
			{Name: "Gondola Shelf", Qty: 2, WithdrawFor: "WH-NORTH"},
		},
	}}
	return doc
}

func TestServiceCreate_IssuesTypedCode(t *testing.T) {
	svc, repo := newTestService()

	doc := validDoc(TypeWithdraw)
	require.NoError(t, svc.Create(context.Background(), doc))

	stored := repo.docs[doc.ID]
	require.NotNil(t, stored)
	assert.Equal(t, StatusDraft, stored.Status)
	assert.Contains(t, stored.Code, "WD-")

	other := validDoc(TypeRepair)
	require.NoError(t, svc.Create(context.Background(), other))
	assert.Contains(t, other.Code, "RP-")
}

func TestServiceCreate_AssignsLineNumbers(t *testing.T) {
	svc, _ := newTestService()

	doc := validDoc(TypeWithdraw)
	doc.Shops[0].Assets = append(doc.Shops[0].Assets,
		AssetLine{Name: "Display Case", Qty: 1, WithdrawFor: "WH-NORTH"},
	)
	require.NoError(t, svc.Create(context.Background(), doc))

	assert.Equal(t, 1, doc.Shops[0].LineNo)
	assert.False(t, id.IsNil(doc.Shops[0].LineID))
	assert.Equal(t, 1, doc.Shops[0].Assets[0].LineNo)
	assert.Equal(t, 2, doc.Shops[0].Assets[1].LineNo)
}

func TestServiceCreate_RejectsInvalid(t *testing.T) {
	svc, _ := newTestService()

	doc := validDoc(TypeWithdraw)
	doc.RequesterName = ""
	err := svc.Create(context.Background(), doc)
	require.Error(t, err)

	doc = validDoc(Type("teleport"))
	err = svc.Create(context.Background(), doc)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnknownDocumentType, appErr.Code)
}

func TestServiceSubmit(t *testing.T) {
	svc, repo := newTestService()
	doc := validDoc(TypeWithdraw)
	require.NoError(t, svc.Create(context.Background(), doc))

	submitted, err := svc.Submit(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)
	assert.Equal(t, StatusSubmitted, repo.docs[doc.ID].Status)

	// Second submit fails: not a draft anymore.
	_, err = svc.Submit(context.Background(), doc.ID)
	require.Error(t, err)
}

func TestServiceUpdate_FinalizedIsImmutable(t *testing.T) {
	svc, repo := newTestService()
	doc := validDoc(TypeWithdraw)
	require.NoError(t, svc.Create(context.Background(), doc))
	repo.docs[doc.ID].Status = StatusApproved

	err := svc.Update(context.Background(), doc)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAlreadyApproved, appErr.Code)
}

func TestServiceUpdate_PreservesServerFields(t *testing.T) {
	svc, repo := newTestService()
	doc := validDoc(TypeWithdraw)
	require.NoError(t, svc.Create(context.Background(), doc))
	originalCode := doc.Code

	edited := *doc
	edited.Code = "HACKED-001"
	edited.Type = TypeRepair
	edited.Status = StatusApproved

	require.NoError(t, svc.Update(context.Background(), &edited))

	stored := repo.docs[doc.ID]
	assert.Equal(t, originalCode, stored.Code)
	assert.Equal(t, TypeWithdraw, stored.Type)
	assert.Equal(t, StatusDraft, stored.Status)
}

func TestServiceDelete_DraftOnly(t *testing.T) {
	svc, repo := newTestService()
	doc := validDoc(TypeWithdraw)
	require.NoError(t, svc.Create(context.Background(), doc))

	require.NoError(t, svc.Delete(context.Background(), doc.ID))
	assert.True(t, repo.docs[doc.ID].DeletionMark)

	submitted := validDoc(TypeWithdraw)
	require.NoError(t, svc.Create(context.Background(), submitted))
	_, err := svc.Submit(context.Background(), submitted.ID)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), submitted.ID)
	require.Error(t, err)
}
