package dto

import (
	"strings"

	"github.com/invoiceai/invoiceai/internal/domain/user"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/invoiceai/invoiceai/internal/validator"
)

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.ValidateRequest(r)
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt string        `json:"expiresAt"`
	User      *UserResponse `json:"user"`
}

type UserResponse struct {
	ID              string         `json:"id"`
	Email           string         `json:"email"`
	FirstName       *string        `json:"firstName"`
	LastName        *string        `json:"lastName"`
	ProfileImageURL *string        `json:"profileImageUrl"`
	TenantID        *string        `json:"tenantId"`
	Role            types.UserRole `json:"role"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

// MeResponse wraps the current user
type MeResponse struct {
	User *UserResponse `json:"user"`
}

func NewUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		TenantID:        u.TenantID,
		Role:            u.Role,
		CreatedAt:       formatTime(u.CreatedAt),
		UpdatedAt:       formatTime(u.UpdatedAt),
	}
}
