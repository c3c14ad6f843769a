package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fixtrack/internal/core/entity"
	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/ledger"
)

type mockCatalog struct {
	entity.BaseCatalog
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func TestExtractDBColumns_EmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	for _, expected := range []string{"id", "deletion_mark", "version", "code", "name"} {
		assert.Contains(t, cols, expected)
	}
}

func TestExtractDBColumns_SkipsIgnoredFields(t *testing.T) {
	type withIgnored struct {
		ID     id.ID  `db:"id"`
		Hidden string `db:"-"`
		NoTag  string
	}

	cols := ExtractDBColumns[withIgnored]()
	assert.Equal(t, []string{"id"}, cols)
}

func TestExtractDBColumns_LedgerWeekColumns(t *testing.T) {
	cols := ExtractDBColumns[ledger.AssetTransactionHistory]()
	for _, col := range ledger.AllWeekColumns() {
		assert.Contains(t, cols, string(col))
	}
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code: "TEST",
		Name: "Test Name",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
}
