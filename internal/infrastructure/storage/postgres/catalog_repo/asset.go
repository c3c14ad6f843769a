package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/domain/catalogs/asset"
	"fixtrack/internal/infrastructure/storage/postgres"
)

const assetTable = "cat_assets"

// AssetRepo implements asset.Repository.
type AssetRepo struct {
	*BaseCatalogRepo[*asset.Asset]
}

// NewAssetRepo creates a new asset repository.
func NewAssetRepo(txManager *postgres.TxManager) *AssetRepo {
	return &AssetRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*asset.Asset](
			txManager,
			assetTable,
			postgres.ExtractDBColumns[asset.Asset](),
			func() *asset.Asset { return &asset.Asset{} },
		),
	}
}

// GetByBarcode retrieves an asset master record by barcode.
func (r *AssetRepo) GetByBarcode(ctx context.Context, barcode string) (*asset.Asset, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[asset.Asset]()...).
		From(assetTable).
		Where(squirrel.Eq{"barcode": barcode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("asset", barcode)
		}
		return nil, err
	}
	return item, nil
}
