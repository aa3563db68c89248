package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "PRODUCT_API_TIMEOUT", "LOGIN_RATE_BURST", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.ProductAPITimeout)
	assert.Equal(t, 10, cfg.LoginRateBurst)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", StoreDriverMongo)
	t.Setenv("PRODUCT_API_TIMEOUT", "750ms")
	t.Setenv("LOGIN_RATE_LIMIT", "2.5")
	t.Setenv("LOGIN_RATE_BURST", "3")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreDriverMongo, cfg.StoreDriver)
	assert.Equal(t, 750*time.Millisecond, cfg.ProductAPITimeout)
	assert.Equal(t, 2.5, cfg.LoginRateLimit)
	assert.Equal(t, 3, cfg.LoginRateBurst)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PRODUCT_CACHE_TTL", "soon")
	t.Setenv("LOGIN_RATE_BURST", "many")

	cfg := Load()

	assert.Equal(t, 10*time.Minute, cfg.ProductCacheTTL)
	assert.Equal(t, 10, cfg.LoginRateBurst)
}
