package catalog_repo

import (
	"fixtrack/internal/domain/catalogs/shop"
	"fixtrack/internal/infrastructure/storage/postgres"
)

const shopTable = "cat_shops"

// ShopRepo implements shop.Repository. Shop type lookup for shoptoshop
// documents goes through GetByCode (the MCS code).
type ShopRepo struct {
	*BaseCatalogRepo[*shop.Shop]
}

// NewShopRepo creates a new shop repository.
func NewShopRepo(txManager *postgres.TxManager) *ShopRepo {
	return &ShopRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*shop.Shop](
			txManager,
			shopTable,
			postgres.ExtractDBColumns[shop.Shop](),
			func() *shop.Shop { return &shop.Shop{} },
		),
	}
}
