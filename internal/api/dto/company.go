package dto

import (
	"strings"

	"github.com/invoiceai/invoiceai/internal/domain/company"
	"github.com/invoiceai/invoiceai/internal/validator"
)

type CreateCompanyRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
	TaxNumber  *string `json:"taxNumber,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	LogoURL    *string `json:"logoUrl,omitempty" validate:"omitempty,url"`
}

func (r *CreateCompanyRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.ValidateRequest(r)
}

func (r *CreateCompanyRequest) ToCompany(tenantID string) *company.Company {
	c := company.NewCompany(tenantID, r.Name)
	c.Address = r.Address
	c.City = r.City
	c.State = r.State
	c.PostalCode = r.PostalCode
	c.Country = r.Country
	c.TaxNumber = r.TaxNumber
	c.Email = r.Email
	c.Phone = r.Phone
	c.LogoURL = r.LogoURL
	return c
}

// UpdateCompanyRequest is a partial update; omitted fields are unchanged
type UpdateCompanyRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
	TaxNumber  *string `json:"taxNumber,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	LogoURL    *string `json:"logoUrl,omitempty" validate:"omitempty,url"`
}

func (r *UpdateCompanyRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpdateCompanyRequest) ToUpdate() *company.CompanyUpdate {
	return &company.CompanyUpdate{
		Name:       r.Name,
		Address:    r.Address,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		TaxNumber:  r.TaxNumber,
		Email:      r.Email,
		Phone:      r.Phone,
		LogoURL:    r.LogoURL,
	}
}

type CompanyResponse struct {
	ID         string  `json:"id"`
	TenantID   string  `json:"tenantId"`
	Name       string  `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
	TaxNumber  *string `json:"taxNumber"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	LogoURL    *string `json:"logoUrl"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func NewCompanyResponse(c *company.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:         c.ID,
		TenantID:   c.TenantID,
		Name:       c.Name,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
		Country:    c.Country,
		TaxNumber:  c.TaxNumber,
		Email:      c.Email,
		Phone:      c.Phone,
		LogoURL:    c.LogoURL,
		CreatedAt:  formatTime(c.CreatedAt),
		UpdatedAt:  formatTime(c.UpdatedAt),
	}
}
