package ledger

import (
	"context"

	"fixtrack/internal/core/id"
)

// Service exposes read-side ledger queries to the HTTP layer.
// All writes go through the approval engine, never through here.
type Service struct {
	history HistoryRepository
	secsets SecurityRepository
	repairs RepairTaskRepository
}

// NewService creates a ledger query service.
func NewService(history HistoryRepository, secsets SecurityRepository, repairs RepairTaskRepository) *Service {
	return &Service{
		history: history,
		secsets: secsets,
		repairs: repairs,
	}
}

// HistoryByBarcode returns the movement history for one barcode, newest first.
func (s *Service) HistoryByBarcode(ctx context.Context, barcode string) ([]AssetTransactionHistory, error) {
	return s.history.ListByBarcode(ctx, barcode)
}

// HistoryByDocument returns all ledger rows a document approval produced.
func (s *Service) HistoryByDocument(ctx context.Context, documentID id.ID) ([]AssetTransactionHistory, error) {
	return s.history.ListByDocument(ctx, documentID)
}

// SecurityByDocument returns security-set rows for a document.
func (s *Service) SecurityByDocument(ctx context.Context, documentID id.ID) ([]SecuritySetTransaction, error) {
	return s.secsets.ListByDocument(ctx, documentID)
}

// RepairTasks lists repair tasks by filter.
func (s *Service) RepairTasks(ctx context.Context, filter RepairTaskFilter) ([]RepairTask, error) {
	return s.repairs.List(ctx, filter)
}
