package handlers

import (
	"github.com/gin-gonic/gin"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/domain/catalogs/asset"
	"fixtrack/internal/infrastructure/http/v1/dto"
)

// AssetCatalogHandler handles asset master CRUD.
type AssetCatalogHandler = CatalogHandler[
	*asset.Asset,
	dto.CreateAssetRequest,
	dto.UpdateAssetRequest,
]

// AssetHandler adds barcode lookup on top of the generic catalog handler.
type AssetHandler struct {
	*AssetCatalogHandler
	service *asset.Service
}

// NewAssetHandler creates the asset handler.
func NewAssetHandler(base *BaseHandler, service *asset.Service) *AssetHandler {
	config := CatalogHandlerConfig[
		*asset.Asset,
		dto.CreateAssetRequest,
		dto.UpdateAssetRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "asset",

		MapCreateDTO: func(req dto.CreateAssetRequest) *asset.Asset {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateAssetRequest, existing *asset.Asset) *asset.Asset {
			return req.ApplyTo(existing)
		},
	}

	return &AssetHandler{
		AssetCatalogHandler: NewCatalogHandler(base, config),
		service:             service,
	}
}

// GetByBarcode handles GET /assets/barcode/:barcode.
func (h *AssetHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		h.Error(c, apperror.NewValidation("barcode is required"))
		return
	}

	a, err := h.service.GetByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, a)
}
