package v1

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
)

// scopeFromContext returns the tenant scope set by the tenant middleware.
// A missing scope is recorded on the gin context as unauthenticated.
func scopeFromContext(c *gin.Context) (types.TenantScope, bool) {
	scope, ok := types.GetScope(c.Request.Context())
	if !ok {
		c.Error(ierr.NewError("tenant scope missing from request").
			WithHint("Not authenticated").
			Mark(ierr.ErrUnauthenticated))
		return types.TenantScope{}, false
	}
	return scope, true
}

func bindError(err error) error {
	return ierr.WithError(err).
		WithHint("Please check the request payload").
		WithValidationErrors([]string{err.Error()}).
		Mark(ierr.ErrValidation)
}
