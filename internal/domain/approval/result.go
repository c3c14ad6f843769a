package approval

import "fixtrack/internal/domain/document"

// Result reports what a single approval action did. Counters are
// path-specific: picker approvals fill TasksCreated, direct-ledger
// approvals fill the transaction counters. NotFoundBarcodes lists repair
// barcodes that had no open ledger leg to close; the operation still
// succeeds, these need manual reconciliation.
type Result struct {
	DocumentID string          `json:"documentId"`
	Status     document.Status `json:"status"`
	Path       Path            `json:"path"`

	TasksCreated                int `json:"tasksCreated,omitempty"`
	TransactionsCreated         int `json:"transactionsCreated,omitempty"`
	TransactionsUpdated         int `json:"transactionsUpdated,omitempty"`
	SecurityTransactionsCreated int `json:"securityTransactionsCreated,omitempty"`

	NotFoundBarcodes []string `json:"notFoundBarcodes,omitempty"`
}
