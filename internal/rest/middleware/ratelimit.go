package middleware

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/config"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
	goCache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// idle tenants lose their bucket after limiterIdleExpiry
const (
	limiterIdleExpiry      = 10 * time.Minute
	limiterCleanupInterval = 5 * time.Minute
)

// TenantRateLimiter keeps one token bucket per tenant
type TenantRateLimiter struct {
	mu       sync.Mutex
	limiters *goCache.Cache
	limit    rate.Limit
	burst    int
}

// NewTenantRateLimiter builds a limiter from the rate_limit section.
// A non-positive rate disables limiting.
func NewTenantRateLimiter(cfg *config.Configuration) *TenantRateLimiter {
	perMinute := cfg.RateLimit.GeneratePerMinute
	burst := cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60.0)
	}

	return &TenantRateLimiter{
		limiters: goCache.New(limiterIdleExpiry, limiterCleanupInterval),
		limit:    limit,
		burst:    burst,
	}
}

func (l *TenantRateLimiter) limiterFor(tenantID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.limiters.Get(tenantID); ok {
		limiter := v.(*rate.Limiter)
		l.limiters.SetDefault(tenantID, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(l.limit, l.burst)
	l.limiters.SetDefault(tenantID, limiter)
	return limiter
}

// Allow reports whether the tenant may proceed, and if not how long to wait
func (l *TenantRateLimiter) Allow(tenantID string) (bool, time.Duration) {
	if l.limit == rate.Inf {
		return true, 0
	}

	r := l.limiterFor(tenantID).Reserve()
	if !r.OK() {
		return false, time.Minute
	}
	delay := r.Delay()
	if delay > 0 {
		r.Cancel()
		return false, delay
	}
	return true, 0
}

// Middleware limits the wrapped routes per tenant. It must run after the
// tenant middleware.
func (l *TenantRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := types.GetTenantID(c.Request.Context())
		if tenantID == "" {
			c.Next()
			return
		}

		allowed, wait := l.Allow(tenantID)
		if !allowed {
			seconds := int(math.Ceil(wait.Seconds()))
			abortWithError(c, ierr.NewError("rate limit exceeded").
				WithHintf("Too many requests. Please try again in %d seconds.", seconds).
				WithReportableDetails(map[string]any{"retry_after": seconds}).
				Mark(ierr.ErrTooManyRequests))
			return
		}
		c.Next()
	}
}

func toHeaderValue(v any) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%d", int(n))
	default:
		return fmt.Sprintf("%v", n)
	}
}
