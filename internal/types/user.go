package types

import (
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

type UserRole string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) Validate() error {
	switch r {
	case UserRoleMember, UserRoleAdmin:
		return nil
	default:
		return ierr.NewError("invalid user role").
			WithHintf("Role must be one of: %s, %s", UserRoleMember, UserRoleAdmin).
			WithReportableDetails(map[string]any{"role": r}).
			Mark(ierr.ErrValidation)
	}
}
