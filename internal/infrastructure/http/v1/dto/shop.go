package dto

import (
	"fixtrack/internal/domain/catalogs/shop"
)

// CreateShopRequest creates a shop master record.
type CreateShopRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Type     string `json:"shopType" binding:"required"`
	Province string `json:"province,omitempty"`
	Region   string `json:"region,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateShopRequest) ToEntity() *shop.Shop {
	s := shop.NewShop(r.Code, r.Name, shop.ShopType(r.Type))
	s.Province = r.Province
	s.Region = r.Region
	return s
}

// UpdateShopRequest updates a shop master record.
type UpdateShopRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"shopType,omitempty"`
	Province *string `json:"province,omitempty"`
	Region   *string `json:"region,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the update onto an existing shop.
func (r *UpdateShopRequest) ApplyTo(s *shop.Shop) *shop.Shop {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Type != nil {
		s.Type = shop.ShopType(*r.Type)
	}
	if r.Province != nil {
		s.Province = *r.Province
	}
	if r.Region != nil {
		s.Region = *r.Region
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	s.SetVersion(r.Version)
	return s
}
