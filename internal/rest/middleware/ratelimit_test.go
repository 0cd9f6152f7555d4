package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantRateLimiterAllow(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.GeneratePerMinute = 1
	cfg.RateLimit.Burst = 2
	limiter := NewTenantRateLimiter(cfg)

	ok, _ := limiter.Allow("tenant_a")
	assert.True(t, ok)
	ok, _ = limiter.Allow("tenant_a")
	assert.True(t, ok)

	ok, wait := limiter.Allow("tenant_a")
	assert.False(t, ok)
	assert.Greater(t, wait.Seconds(), 0.0)

	// buckets are per tenant
	ok, _ = limiter.Allow("tenant_b")
	assert.True(t, ok)
}

func TestTenantRateLimiterDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.GeneratePerMinute = 0
	limiter := NewTenantRateLimiter(cfg)

	for i := 0; i < 100; i++ {
		ok, _ := limiter.Allow("tenant_a")
		require.True(t, ok)
	}
}

func TestTenantRateLimiterMiddleware(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.GeneratePerMinute = 1
	cfg.RateLimit.Burst = 1
	limiter := NewTenantRateLimiter(cfg)

	r := newTestEngine(cfg)
	r.POST("/generate", func(c *gin.Context) {
		tenantID := c.GetHeader("X-Test-Tenant")
		if tenantID != "" {
			c.Request = c.Request.WithContext(types.SetScope(c.Request.Context(), types.TenantScope{
				TenantID: tenantID,
				UserID:   "user_1",
				Role:     types.UserRoleMember,
			}))
		}
		c.Next()
	}, limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	call := func(tenantID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		if tenantID != "" {
			req.Header.Set("X-Test-Tenant", tenantID)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call("tenant_a").Code)

	w := call("tenant_a")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	retryAfter, err := strconv.Atoi(w.Header().Get(types.HeaderRetryAfter))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, 60)
	assert.Contains(t, decodeError(t, w).Message, "Too many requests. Please try again in")

	assert.Equal(t, http.StatusOK, call("tenant_b").Code)

	// requests without a scope are not limited here
	assert.Equal(t, http.StatusOK, call("").Code)
	assert.Equal(t, http.StatusOK, call("").Code)
}

func TestToHeaderValue(t *testing.T) {
	assert.Equal(t, "42", toHeaderValue(float64(42)))
	assert.Equal(t, "7", toHeaderValue(7))
	assert.Equal(t, "soon", toHeaderValue("soon"))
}
