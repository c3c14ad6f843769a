package approval

import (
	"context"
	"time"

	"fixtrack/internal/core/apperror"
	appctx "fixtrack/internal/core/context"
	"fixtrack/internal/core/id"
	"fixtrack/internal/core/tx"
	"fixtrack/internal/domain/catalogs/asset"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/ledger"
	"fixtrack/internal/domain/picktask"
	"fixtrack/pkg/logger"
)

// AssetLookup resolves asset master data for ledger-row enrichment.
// A nil result with a NotFound error is a referential gap, not a failure.
type AssetLookup interface {
	GetByBarcode(ctx context.Context, barcode string) (*asset.Asset, error)
}

// ShopTypeLookup resolves a shop's type from master data by MCS code.
type ShopTypeLookup interface {
	TypeByCode(ctx context.Context, code string) (string, error)
}

// Auditor records approval/rejection actions. Optional.
type Auditor interface {
	Record(ctx context.Context, action string, entityID id.ID, payload any) error
}

// Engine is the approval decision point. Approve locks the document,
// checks the submitted precondition, routes by type and materializes pick
// tasks or ledger rows - all inside one transaction, so either everything
// lands together with the status flip or nothing does.
type Engine struct {
	documents document.Repository
	tasks     picktask.Repository
	history   ledger.HistoryRepository
	security  ledger.SecurityRepository
	repairs   ledger.RepairTaskRepository
	assets    AssetLookup
	shopTypes ShopTypeLookup
	txManager tx.Manager
	auditor   Auditor

	now func() time.Time
}

// NewEngine wires the approval engine. auditor may be nil.
func NewEngine(
	documents document.Repository,
	tasks picktask.Repository,
	history ledger.HistoryRepository,
	security ledger.SecurityRepository,
	repairs ledger.RepairTaskRepository,
	assets AssetLookup,
	shopTypes ShopTypeLookup,
	txManager tx.Manager,
	auditor Auditor,
) *Engine {
	return &Engine{
		documents: documents,
		tasks:     tasks,
		history:   history,
		security:  security,
		repairs:   repairs,
		assets:    assets,
		shopTypes: shopTypes,
		txManager: txManager,
		auditor:   auditor,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Approve transitions a submitted document to approved and materializes
// its side effects. otherActivity, when non-empty, overrides the type's
// week-column routing and is persisted onto the document.
//
// The submitted-status check runs on a row-locked document inside the
// same transaction as every write, so a concurrent second approval of the
// same document blocks on the lock and then fails the precondition.
func (e *Engine) Approve(ctx context.Context, documentID id.ID, otherActivity, transactionStatus string) (*Result, error) {
	var result *Result

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := e.documents.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}

		if doc.Status != document.StatusSubmitted {
			return apperror.NewNotSubmitted(doc.ID.String(), string(doc.Status))
		}

		if otherActivity != "" {
			if _, ok := ledger.OtherActivityColumn(otherActivity); !ok {
				return apperror.NewValidation("unrecognized other activity").
					WithDetail("otherActivity", otherActivity)
			}
			doc.OtherActivity = otherActivity
		}
		if transactionStatus != "" {
			doc.TransactionStatus = transactionStatus
		}

		path, err := Route(doc.Type, doc.HasItems())
		if err != nil {
			return err
		}

		approvedAt := e.now()
		res := &Result{
			DocumentID: doc.ID.String(),
			Status:     document.StatusApproved,
			Path:       path,
		}

		switch path {
		case PathPicker:
			if err := e.approvePicker(ctx, doc, approvedAt, res); err != nil {
				return err
			}
		case PathDirectLedger:
			if err := e.approveDirectLedger(ctx, doc, approvedAt, res); err != nil {
				return err
			}
		case PathNoOp:
			// Status flip only.
		}

		doc.Status = document.StatusApproved
		doc.UpdatedBy = appctx.GetUserID(ctx)
		doc.Touch()
		if err := e.documents.Update(ctx, doc); err != nil {
			return err
		}

		e.audit(ctx, "document.approve", doc.ID, res)

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "document approved",
		"document_id", result.DocumentID,
		"path", result.Path,
		"tasks_created", result.TasksCreated,
		"transactions_created", result.TransactionsCreated,
		"transactions_updated", result.TransactionsUpdated,
		"not_found_barcodes", len(result.NotFoundBarcodes),
	)
	return result, nil
}

// Reject transitions a submitted document to rejected. No side-effect
// records are produced; the same locked precondition check applies.
func (e *Engine) Reject(ctx context.Context, documentID id.ID, reason string) (*Result, error) {
	var result *Result

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := e.documents.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}

		if doc.Status != document.StatusSubmitted {
			return apperror.NewNotSubmitted(doc.ID.String(), string(doc.Status))
		}

		doc.Status = document.StatusRejected
		if reason != "" {
			doc.TransactionStatus = reason
		}
		doc.UpdatedBy = appctx.GetUserID(ctx)
		doc.Touch()
		if err := e.documents.Update(ctx, doc); err != nil {
			return err
		}

		result = &Result{
			DocumentID: doc.ID.String(),
			Status:     document.StatusRejected,
			Path:       PathNoOp,
		}

		e.audit(ctx, "document.reject", doc.ID, result)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "document rejected", "document_id", result.DocumentID)
	return result, nil
}

func (e *Engine) approvePicker(ctx context.Context, doc *document.Document, approvedAt time.Time, res *Result) error {
	tasks := PlanPickTasks(doc, approvedAt)
	if len(tasks) == 0 {
		return nil
	}
	if err := e.tasks.CreateBatch(ctx, tasks); err != nil {
		return err
	}
	res.TasksCreated = len(tasks)
	return nil
}

func (e *Engine) approveDirectLedger(ctx context.Context, doc *document.Document, approvedAt time.Time, res *Result) error {
	switch doc.Type {
	case document.TypeShopToShop:
		return e.approveShopToShop(ctx, doc, approvedAt, res)
	case document.TypeReturn, document.TypeReturnAsset:
		return e.approveReturn(ctx, doc, approvedAt, res)
	case document.TypeRepair:
		return e.approveRepair(ctx, doc, approvedAt, res)
	}
	return apperror.NewUnknownDocumentType(string(doc.Type))
}

func (e *Engine) approveShopToShop(ctx context.Context, doc *document.Document, approvedAt time.Time, res *Result) error {
	destType := document.NoMCSCode
	if dest := doc.DestinationShop(); dest != nil && dest.Code != "" {
		t, err := e.shopTypes.TypeByCode(ctx, dest.Code)
		switch {
		case err == nil && t != "":
			destType = t
		case err != nil && !apperror.IsNotFound(err):
			return err
		}
	}

	rows, err := PlanShopToShopRows(doc, approvedAt, destType)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if err := e.history.CreateBatch(ctx, rows); err != nil {
		return err
	}
	res.TransactionsCreated = len(rows)
	return nil
}

func (e *Engine) approveReturn(ctx context.Context, doc *document.Document, approvedAt time.Time, res *Result) error {
	col, ok := ResolveWeekColumn(doc.Type, doc.ReturnCondition, doc.OtherActivity)
	if !ok {
		return apperror.NewUnknownDocumentType(string(doc.Type))
	}

	masters, err := e.fetchMasters(ctx, doc)
	if err != nil {
		return err
	}

	rows := PlanReturnRows(doc, approvedAt, col, masters)
	if len(rows) > 0 {
		if err := e.history.CreateBatch(ctx, rows); err != nil {
			return err
		}
		res.TransactionsCreated = len(rows)
	}

	secRows := PlanSecurityRows(doc, approvedAt)
	if len(secRows) > 0 {
		if err := e.security.CreateBatch(ctx, secRows); err != nil {
			return err
		}
		res.SecurityTransactionsCreated = len(secRows)
	}

	return nil
}

// approveRepair closes the latest open ledger leg per barcode and records
// a RepairTask regardless. TransactionsCreated counts RepairTask records,
// TransactionsUpdated counts closed legs; barcodes with no open leg are
// collected as warnings and do not fail the approval.
func (e *Engine) approveRepair(ctx context.Context, doc *document.Document, approvedAt time.Time, res *Result) error {
	for si := range doc.Shops {
		for _, line := range doc.Shops[si].Assets {
			if line.Barcode == "" {
				continue
			}

			prior, err := e.history.GetLatestOpenLeg(ctx, line.Barcode)
			switch {
			case err == nil:
				CloseRepairLeg(prior, doc, approvedAt)
				if err := e.history.Update(ctx, prior); err != nil {
					return err
				}
				res.TransactionsUpdated++
			case apperror.IsNotFound(err):
				prior = nil
				res.NotFoundBarcodes = append(res.NotFoundBarcodes, line.Barcode)
				logger.Warn(ctx, "no open ledger leg for repair barcode",
					"document_id", doc.ID.String(),
					"barcode", line.Barcode,
				)
			default:
				return err
			}

			task := NewRepairTask(doc, line, prior, approvedAt)
			if err := e.repairs.Create(ctx, &task); err != nil {
				return err
			}
			res.TransactionsCreated++
		}
	}
	return nil
}

func (e *Engine) fetchMasters(ctx context.Context, doc *document.Document) (map[string]*asset.Asset, error) {
	masters := make(map[string]*asset.Asset)
	for si := range doc.Shops {
		for _, line := range doc.Shops[si].Assets {
			if line.Barcode == "" {
				continue
			}
			if _, seen := masters[line.Barcode]; seen {
				continue
			}

			master, err := e.assets.GetByBarcode(ctx, line.Barcode)
			if err != nil {
				if apperror.IsNotFound(err) {
					masters[line.Barcode] = nil
					continue
				}
				return nil, err
			}
			masters[line.Barcode] = master
		}
	}
	return masters, nil
}

func (e *Engine) audit(ctx context.Context, action string, entityID id.ID, payload any) {
	if e.auditor == nil {
		return
	}
	if err := e.auditor.Record(ctx, action, entityID, payload); err != nil {
		// Audit is best-effort; losing a record must not abort approval.
		logger.Warn(ctx, "audit record failed", "action", action, "error", err)
	}
}
