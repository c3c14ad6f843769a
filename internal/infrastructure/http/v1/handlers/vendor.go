package handlers

import (
	"fixtrack/internal/domain/catalogs/vendor"
	"fixtrack/internal/infrastructure/http/v1/dto"
)

// VendorHTTPHandler handles vendor/warehouse CRUD.
type VendorHTTPHandler = CatalogHandler[
	*vendor.Vendor,
	dto.CreateVendorRequest,
	dto.UpdateVendorRequest,
]

// NewVendorHandler creates the vendor handler.
func NewVendorHandler(base *BaseHandler, service *vendor.Service) *VendorHTTPHandler {
	config := CatalogHandlerConfig[
		*vendor.Vendor,
		dto.CreateVendorRequest,
		dto.UpdateVendorRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "vendor",

		MapCreateDTO: func(req dto.CreateVendorRequest) *vendor.Vendor {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateVendorRequest, existing *vendor.Vendor) *vendor.Vendor {
			return req.ApplyTo(existing)
		},
	}

	return NewCatalogHandler(base, config)
}
