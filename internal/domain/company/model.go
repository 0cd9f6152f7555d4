package company

import (
	"time"

	"github.com/invoiceai/invoiceai/internal/types"
)

// Company is the billing identity printed on a tenant's invoices.
// A tenant has at most one.
type Company struct {
	ID         string    `db:"id" json:"id"`
	TenantID   string    `db:"tenant_id" json:"tenantId"`
	Name       string    `db:"name" json:"name"`
	Address    *string   `db:"address" json:"address,omitempty"`
	City       *string   `db:"city" json:"city,omitempty"`
	State      *string   `db:"state" json:"state,omitempty"`
	PostalCode *string   `db:"postal_code" json:"postalCode,omitempty"`
	Country    *string   `db:"country" json:"country,omitempty"`
	TaxNumber  *string   `db:"tax_number" json:"taxNumber,omitempty"`
	Email      *string   `db:"email" json:"email,omitempty"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	LogoURL    *string   `db:"logo_url" json:"logoUrl,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

func NewCompany(tenantID, name string) *Company {
	now := time.Now().UTC()
	return &Company{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMPANY),
		TenantID:  tenantID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CompanyUpdate is a partial update; nil fields are left untouched
type CompanyUpdate struct {
	Name       *string
	Address    *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
	TaxNumber  *string
	Email      *string
	Phone      *string
	LogoURL    *string
}

// Apply merges the non-nil fields of u into c
func (u *CompanyUpdate) Apply(c *Company) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Address != nil {
		c.Address = u.Address
	}
	if u.City != nil {
		c.City = u.City
	}
	if u.State != nil {
		c.State = u.State
	}
	if u.PostalCode != nil {
		c.PostalCode = u.PostalCode
	}
	if u.Country != nil {
		c.Country = u.Country
	}
	if u.TaxNumber != nil {
		c.TaxNumber = u.TaxNumber
	}
	if u.Email != nil {
		c.Email = u.Email
	}
	if u.Phone != nil {
		c.Phone = u.Phone
	}
	if u.LogoURL != nil {
		c.LogoURL = u.LogoURL
	}
}
