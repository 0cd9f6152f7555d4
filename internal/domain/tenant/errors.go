package tenant

import (
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

func NewTenantNotFoundError(id string) error {
	return ierr.NewError("tenant not found").
		WithHintf("Tenant %s was not found", id).
		Mark(ierr.ErrNotFound)
}
