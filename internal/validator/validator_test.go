package validator

import (
	"testing"

	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	Quantity *float64 `json:"quantity" validate:"required,gt=0,lte=1000"`
}

type testRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"omitempty,email"`
	Currency string     `json:"currency" validate:"omitempty,len=3,alpha"`
	Items    []testItem `json:"items" validate:"required,min=1,dive"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()
	neg := -1.0
	one := 1.0
	huge := 1e6

	testCases := []struct {
		name     string
		req      testRequest
		wantErr  bool
		messages []string
	}{
		{
			name: "valid",
			req:  testRequest{Name: "Acme", Items: []testItem{{Quantity: &one}}},
		},
		{
			name:     "missing name and items",
			req:      testRequest{},
			wantErr:  true,
			messages: []string{"name: is required", "items: is required"},
		},
		{
			name:     "non positive quantity",
			req:      testRequest{Name: "Acme", Items: []testItem{{Quantity: &neg}}},
			wantErr:  true,
			messages: []string{"items[0].quantity: must be greater than 0"},
		},
		{
			name:     "bad email",
			req:      testRequest{Name: "Acme", Email: "nope", Items: []testItem{{Quantity: &one}}},
			wantErr:  true,
			messages: []string{"email: must be a valid email address"},
		},
		{
			name:     "quantity above bound",
			req:      testRequest{Name: "Acme", Items: []testItem{{Quantity: &huge}}},
			wantErr:  true,
			messages: []string{"items[0].quantity: must be at most 1000"},
		},
		{
			name:     "currency too long",
			req:      testRequest{Name: "Acme", Currency: "POUNDS", Items: []testItem{{Quantity: &one}}},
			wantErr:  true,
			messages: []string{"currency: must be exactly 3 characters"},
		},
		{
			name:     "currency not letters",
			req:      testRequest{Name: "Acme", Currency: "G8P", Items: []testItem{{Quantity: &one}}},
			wantErr:  true,
			messages: []string{"currency: must contain only letters"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
			assert.ElementsMatch(t, tc.messages, ierr.ValidationMessages(err))
		})
	}
}
