package document

import (
	"context"
	"time"

	"fixtrack/internal/core/apperror"
	appctx "fixtrack/internal/core/context"
	"fixtrack/internal/core/id"
	"fixtrack/internal/core/tx"
	"fixtrack/pkg/docnum"
	"fixtrack/pkg/logger"
)

// codePrefixes maps each document type to its number prefix.
var codePrefixes = map[Type]string{
	TypeWithdraw:       "WD",
	TypeRouting2Shops:  "R2",
	TypeRouting3Shops:  "R3",
	TypeRouting4Shops:  "R4",
	TypeWithdrawOther:  "WO",
	TypeOther:          "OT",
	TypeTransfer:       "TF",
	TypeBorrow:         "BR",
	TypeBorrowSecurity: "BS",
	TypeReturn:         "RT",
	TypeReturnAsset:    "RA",
	TypeShopToShop:     "SS",
	TypeRepair:         "RP",
}

// Numerator issues sequential document codes.
type Numerator interface {
	GetNextNumber(ctx context.Context, cfg docnum.Config, opts *docnum.Options, period time.Time) (string, error)
}

// Service handles the document lifecycle up to submission. Approval and
// rejection are the approval engine's job (internal/domain/approval).
type Service struct {
	repo      Repository
	numerator Numerator
	txManager tx.Manager
}

// NewService wires the document service.
func NewService(repo Repository, numerator Numerator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: numerator,
		txManager: txManager,
	}
}

// Create validates and persists a new draft. The document code is issued
// inside the same transaction as the insert, so gaps only appear when a
// request genuinely fails.
func (s *Service) Create(ctx context.Context, doc *Document) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	doc.Status = StatusDraft
	doc.CreatedBy = appctx.GetUserID(ctx)
	if doc.CreatorVendor == "" {
		doc.CreatorVendor = appctx.GetVendor(ctx)
	}
	s.renumberLines(doc)

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		code, err := s.nextCode(ctx, doc.Type)
		if err != nil {
			return err
		}
		doc.Code = code

		if err := s.repo.Create(ctx, doc); err != nil {
			return err
		}
		if err := s.repo.ReplaceShops(ctx, doc); err != nil {
			return err
		}

		logger.Info(ctx, "document created",
			"document_id", doc.ID.String(),
			"code", doc.Code,
			"type", doc.Type,
		)
		return nil
	})
}

// GetByID returns the full aggregate.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("document", docID.String())
		}
		return nil, err
	}
	return doc, nil
}

// Update rewrites header and lines of a draft or submitted document.
// Finalized documents are immutable.
func (s *Service) Update(ctx context.Context, doc *Document) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, doc.ID)
		if err != nil {
			return err
		}
		if err := current.CanModify(); err != nil {
			return err
		}

		// Code, type and status are not client-editable.
		doc.Code = current.Code
		doc.Type = current.Type
		doc.Status = current.Status
		doc.CreatedAt = current.CreatedAt
		doc.CreatedBy = current.CreatedBy
		doc.CreatorVendor = current.CreatorVendor
		doc.UpdatedBy = appctx.GetUserID(ctx)
		doc.Touch()
		s.renumberLines(doc)

		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.ReplaceShops(ctx, doc)
	})
}

// Submit transitions a draft to submitted, making it eligible for
// approval.
func (s *Service) Submit(ctx context.Context, docID id.ID) (*Document, error) {
	var doc *Document
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		if err := doc.Submit(); err != nil {
			return err
		}
		doc.UpdatedBy = appctx.GetUserID(ctx)
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "document submitted", "document_id", docID.String(), "code", doc.Code)
	return doc, nil
}

// Delete soft-deletes a draft. Submitted and finalized documents stay.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		if doc.Status != StatusDraft {
			return apperror.NewBusinessRule(
				apperror.CodeBusinessRule,
				"Only draft documents can be deleted",
			).WithDetail("document_id", docID.String()).
				WithDetail("status", string(doc.Status))
		}
		doc.MarkDeleted()
		doc.Touch()
		return s.repo.Update(ctx, doc)
	})
}

// List returns documents matching the filter plus the unpaged total.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Document, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 50
	}

	docs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (s *Service) nextCode(ctx context.Context, docType Type) (string, error) {
	prefix, ok := codePrefixes[docType]
	if !ok {
		return "", apperror.NewUnknownDocumentType(string(docType))
	}
	return s.numerator.GetNextNumber(ctx, docnum.DefaultConfig(prefix), docnum.DefaultOptions(), time.Now().UTC())
}

// renumberLines assigns sequential line numbers and ids where missing,
// keeping the aggregate stable for storage.
func (s *Service) renumberLines(doc *Document) {
	for si := range doc.Shops {
		shop := &doc.Shops[si]
		shop.LineNo = si + 1
		if id.IsNil(shop.LineID) {
			shop.LineID = id.New()
		}
		for li := range shop.Assets {
			shop.Assets[li].LineNo = li + 1
			if id.IsNil(shop.Assets[li].LineID) {
				shop.Assets[li].LineID = id.New()
			}
		}
		for li := range shop.SecuritySets {
			shop.SecuritySets[li].LineNo = li + 1
			if id.IsNil(shop.SecuritySets[li].LineID) {
				shop.SecuritySets[li].LineID = id.New()
			}
		}
	}
}
