package handlers

import (
	"fixtrack/internal/domain/catalogs/shop"
	"fixtrack/internal/infrastructure/http/v1/dto"
)

// ShopHTTPHandler handles shop master CRUD.
type ShopHTTPHandler = CatalogHandler[
	*shop.Shop,
	dto.CreateShopRequest,
	dto.UpdateShopRequest,
]

// NewShopHandler creates the shop handler.
func NewShopHandler(base *BaseHandler, service *shop.Service) *ShopHTTPHandler {
	config := CatalogHandlerConfig[
		*shop.Shop,
		dto.CreateShopRequest,
		dto.UpdateShopRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "shop",

		MapCreateDTO: func(req dto.CreateShopRequest) *shop.Shop {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateShopRequest, existing *shop.Shop) *shop.Shop {
			return req.ApplyTo(existing)
		},
	}

	return NewCatalogHandler(base, config)
}
