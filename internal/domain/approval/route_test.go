package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/domain/document"
)

func TestRoute_DirectLedgerTypes(t *testing.T) {
	for _, docType := range []document.Type{
		document.TypeReturn,
		document.TypeReturnAsset,
		document.TypeShopToShop,
		document.TypeRepair,
	} {
		t.Run(string(docType), func(t *testing.T) {
			// Direct-ledger regardless of item count.
			path, err := Route(docType, true)
			require.NoError(t, err)
			assert.Equal(t, PathDirectLedger, path)

			path, err = Route(docType, false)
			require.NoError(t, err)
			assert.Equal(t, PathDirectLedger, path)
		})
	}
}

func TestRoute_PickerTypes(t *testing.T) {
	pickerTypes := []document.Type{
		document.TypeWithdraw,
		document.TypeRouting2Shops,
		document.TypeRouting3Shops,
		document.TypeRouting4Shops,
		document.TypeWithdrawOther,
		document.TypeOther,
		document.TypeTransfer,
		document.TypeBorrow,
		document.TypeBorrowSecurity,
	}

	for _, docType := range pickerTypes {
		t.Run(string(docType), func(t *testing.T) {
			path, err := Route(docType, true)
			require.NoError(t, err)
			assert.Equal(t, PathPicker, path)

			// Same type with no items is a pure status change.
			path, err = Route(docType, false)
			require.NoError(t, err)
			assert.Equal(t, PathNoOp, path)
		})
	}
}

func TestRoute_UnknownTypeFailsLoudly(t *testing.T) {
	_, err := Route(document.Type("teleport"), true)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnknownDocumentType, appErr.Code)
}

func TestRoute_CoversEveryKnownType(t *testing.T) {
	for _, docType := range document.All() {
		_, err := Route(docType, true)
		assert.NoError(t, err, "type %s has no routing entry", docType)
	}
}
