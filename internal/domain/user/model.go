package user

import (
	"strings"
	"time"

	"github.com/invoiceai/invoiceai/internal/types"
)

type User struct {
	ID              string         `db:"id" json:"id"`
	Email           string         `db:"email" json:"email"`
	FirstName       *string        `db:"first_name" json:"firstName,omitempty"`
	LastName        *string        `db:"last_name" json:"lastName,omitempty"`
	ProfileImageURL *string        `db:"profile_image_url" json:"profileImageUrl,omitempty"`
	TenantID        *string        `db:"tenant_id" json:"tenantId,omitempty"`
	Role            types.UserRole `db:"role" json:"role"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`
}

func NewUser(email string, role types.UserRole) *User {
	now := time.Now().UTC()
	return &User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetTenantID returns the assigned tenant, or empty before provisioning
func (u *User) GetTenantID() string {
	if u == nil || u.TenantID == nil {
		return ""
	}
	return *u.TenantID
}

// DisplayName is the first name when known, else the local part of the email
func (u *User) DisplayName() string {
	if u.FirstName != nil && *u.FirstName != "" {
		return *u.FirstName
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// UserUpdate carries the administrative changes a user record accepts
type UserUpdate struct {
	TenantID *string
	Role     *types.UserRole
}
