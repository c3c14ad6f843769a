package document

import (
	"context"

	"fixtrack/internal/core/id"
)

// Repository defines document persistence. Reads return the full
// aggregate: shops with their asset and security-set lines, in line order.
type Repository interface {
	Create(ctx context.Context, doc *Document) error

	GetByID(ctx context.Context, docID id.ID) (*Document, error)

	// GetForUpdate locks the document row (SELECT FOR UPDATE) for the
	// rest of the transaction. Approval uses it so the status
	// precondition and every resulting write happen against the same
	// locked row.
	GetForUpdate(ctx context.Context, docID id.ID) (*Document, error)

	// Update persists header fields with an optimistic-lock version
	// check. Nested lines are replaced separately via ReplaceShops.
	Update(ctx context.Context, doc *Document) error

	// ReplaceShops rewrites the document's shops and their lines.
	ReplaceShops(ctx context.Context, doc *Document) error

	List(ctx context.Context, filter ListFilter) ([]Document, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
}

// ListFilter narrows document listings.
type ListFilter struct {
	Type          Type
	Status        Status
	CreatorVendor string
	Search        string // matches code or requester name
	Limit         int
	Offset        int
}
