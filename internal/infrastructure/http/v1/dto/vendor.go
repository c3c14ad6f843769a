package dto

import (
	"fixtrack/internal/domain/catalogs/vendor"
)

// CreateVendorRequest creates a vendor/warehouse record.
type CreateVendorRequest struct {
	Code           string `json:"code,omitempty"`
	Name           string `json:"name" binding:"required"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	IsRepairCenter bool   `json:"isRepairCenter,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateVendorRequest) ToEntity() *vendor.Vendor {
	v := vendor.NewVendor(r.Code, r.Name)
	v.Address = r.Address
	v.Phone = r.Phone
	v.IsRepairCenter = r.IsRepairCenter
	return v
}

// UpdateVendorRequest updates a vendor record.
type UpdateVendorRequest struct {
	Name           *string `json:"name,omitempty"`
	Address        *string `json:"address,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	IsRepairCenter *bool   `json:"isRepairCenter,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
	Version        int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the update onto an existing vendor.
func (r *UpdateVendorRequest) ApplyTo(v *vendor.Vendor) *vendor.Vendor {
	if r.Name != nil {
		v.Name = *r.Name
	}
	if r.Address != nil {
		v.Address = *r.Address
	}
	if r.Phone != nil {
		v.Phone = *r.Phone
	}
	if r.IsRepairCenter != nil {
		v.IsRepairCenter = *r.IsRepairCenter
	}
	if r.IsActive != nil {
		v.IsActive = *r.IsActive
	}
	v.SetVersion(r.Version)
	return v
}
