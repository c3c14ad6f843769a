// Package approval implements the document approval engine: the single
// decision point that turns an approved document into pick tasks or ledger
// rows. Routing, week-column selection and fan-out planning are pure
// functions; the Engine wires them to repositories inside one transaction.
package approval

import (
	"fixtrack/internal/core/apperror"
	"fixtrack/internal/domain/document"
)

// Path is the processing path an approval action takes.
type Path string

const (
	// PathPicker: items must be physically picked before ledger entry.
	PathPicker Path = "picker"
	// PathDirectLedger: ledger rows are written immediately at approval.
	PathDirectLedger Path = "direct_ledger"
	// PathNoOp: status change only, no side-effect records.
	PathNoOp Path = "noop"
)

// routing is the single place a document type is bound to its behavior.
// Adding a type means one entry here, nothing else.
var routing = map[document.Type]Path{
	document.TypeReturn:      PathDirectLedger,
	document.TypeReturnAsset: PathDirectLedger,
	document.TypeShopToShop:  PathDirectLedger,
	document.TypeRepair:      PathDirectLedger,

	document.TypeWithdraw:       PathPicker,
	document.TypeRouting2Shops:  PathPicker,
	document.TypeRouting3Shops:  PathPicker,
	document.TypeRouting4Shops:  PathPicker,
	document.TypeWithdrawOther:  PathPicker,
	document.TypeOther:          PathPicker,
	document.TypeTransfer:       PathPicker,
	document.TypeBorrow:         PathPicker,
	document.TypeBorrowSecurity: PathPicker,
}

// Route decides the processing path for a document type.
// Direct-ledger types route there regardless of item count; picker types
// need at least one asset or security-set line, otherwise the approval is
// a pure status change. Unknown types fail loudly, never default to NoOp.
func Route(docType document.Type, hasItems bool) (Path, error) {
	path, ok := routing[docType]
	if !ok {
		return "", apperror.NewUnknownDocumentType(string(docType))
	}

	if path == PathPicker && !hasItems {
		return PathNoOp, nil
	}
	return path, nil
}
