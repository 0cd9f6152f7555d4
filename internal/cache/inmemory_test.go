package cache

import (
	"context"
	"testing"
	"time"

	"github.com/invoiceai/invoiceai/internal/config"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/stretchr/testify/assert"
)

func newTestCache(enabled bool) Cache {
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = enabled
	return NewInMemoryCache(cfg, logger.NewNopLogger())
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		c := newTestCache(true)
		c.Set(ctx, "k", "v", time.Minute)

		v, ok := c.Get(ctx, "k")
		assert.True(t, ok)
		assert.Equal(t, "v", v)
	})

	t.Run("delete by prefix", func(t *testing.T) {
		c := newTestCache(true)
		c.Set(ctx, GenerateKey(PrefixUser, "a"), 1, time.Minute)
		c.Set(ctx, GenerateKey(PrefixUser, "b"), 2, time.Minute)
		c.Set(ctx, GenerateKey(PrefixTenant, "a"), 3, time.Minute)

		c.DeleteByPrefix(ctx, PrefixUser)

		_, ok := c.Get(ctx, GenerateKey(PrefixUser, "a"))
		assert.False(t, ok)
		_, ok = c.Get(ctx, GenerateKey(PrefixTenant, "a"))
		assert.True(t, ok)
	})

	t.Run("disabled cache never hits", func(t *testing.T) {
		c := newTestCache(false)
		c.Set(ctx, "k", "v", time.Minute)

		_, ok := c.Get(ctx, "k")
		assert.False(t, ok)
	})
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "user:v1::user_1", GenerateKey(PrefixUser, "user_1"))
}
