// Package picktask provides the warehouse picking queue.
// Tasks are created once, at approval time, for Picker-path documents; the
// picking workflow then assigns real barcodes and photo evidence and moves
// tasks to completed or cancelled.
package picktask

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"fixtrack/internal/core/entity"
	"fixtrack/internal/core/id"
)

// Status of a pick task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// PickAssetTask is one physical unit (or one aggregated security-set
// group) awaiting a picker's barcode assignment and photo evidence.
type PickAssetTask struct {
	entity.BaseEntity

	DocumentID   id.ID  `db:"document_id" json:"documentId"`
	DocumentCode string `db:"document_code" json:"documentCode,omitempty"`

	// TaskCode is a ULID printed on pick labels; lexical order follows
	// creation order so pickers work the queue top to bottom.
	TaskCode string `db:"task_code" json:"taskCode"`

	AssetName string `db:"asset_name" json:"assetName"`
	Size      string `db:"size" json:"size,omitempty"`
	Grade     string `db:"grade" json:"grade,omitempty"`

	// Qty is 1 except for aggregate security classes, which collapse a
	// whole line into one task.
	Qty           int  `db:"qty" json:"qty"`
	IsSecuritySet bool `db:"is_security_set" json:"isSecuritySet"`

	// Warehouse the unit is picked from (or for).
	Warehouse string `db:"warehouse" json:"warehouse"`

	// Barcode is pre-assigned for transfer documents only; pickers fill
	// it in for everything else.
	Barcode string `db:"barcode" json:"barcode,omitempty"`

	// PhotoKey references the uploaded picking evidence (storage is
	// external to this service).
	PhotoKey string `db:"photo_key" json:"photoKey,omitempty"`

	// Shop metadata snapshot. Later document edits never touch these.
	ShopCode    string     `db:"shop_code" json:"shopCode"`
	ShopName    string     `db:"shop_name" json:"shopName"`
	InstallDate *time.Time `db:"install_date" json:"installDate,omitempty"`
	RemovalDate *time.Time `db:"removal_date" json:"removalDate,omitempty"`
	Q7B7        string     `db:"q7b7" json:"q7b7,omitempty"`
	ShopFocus   string     `db:"shop_focus" json:"shopFocus,omitempty"`

	// Requester snapshot.
	RequesterName    string `db:"requester_name" json:"requesterName"`
	RequesterCompany string `db:"requester_company" json:"requesterCompany,omitempty"`
	RequesterPhone   string `db:"requester_phone" json:"requesterPhone,omitempty"`

	Status Status `db:"status" json:"status"`

	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`
}

// NewTaskCode generates a ULID task code. Codes generated within the same
// fan-out sort in creation order.
func NewTaskCode(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}
