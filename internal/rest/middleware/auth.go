package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/auth"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/service"
	"github.com/invoiceai/invoiceai/internal/types"
)

// AuthenticateMiddleware validates the bearer token in the Authorization
// header and stores the resulting principal in the request context.
func AuthenticateMiddleware(provider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortWithError(c, ierr.NewError("missing authorization header").
				WithHint("Not authenticated").
				Mark(ierr.ErrUnauthenticated))
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, ierr.NewError("malformed authorization header").
				WithHint("Invalid authorization header format").
				Mark(ierr.ErrUnauthenticated))
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		principal, err := provider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			abortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// TenantMiddleware resolves the principal into a tenant scope. Handlers
// read the scope back with types.GetScope.
func TenantMiddleware(directory service.TenantDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		scope, err := directory.Resolve(ctx, auth.PrincipalFromContext(ctx))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(types.SetScope(ctx, scope))
		c.Next()
	}
}

// RequireAdmin rejects callers whose role is not admin
func RequireAdmin(c *gin.Context) {
	scope, ok := types.GetScope(c.Request.Context())
	if !ok || !scope.IsAdmin() {
		abortWithError(c, ierr.NewError("admin role required").
			WithHint("Admin access required").
			Mark(ierr.ErrPermissionDenied))
		return
	}
	c.Next()
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
