package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv restores the previous values when the test ends.
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("CART_STORAGE", "redis")
		t.Setenv("CART_REQUIRES_AUTH", "true")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("FREE_SHIPPING_THRESHOLD", "75")
		t.Setenv("USERNAME_CHECK_DELAY_MS", "250")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, StorageRedis, cfg.CartStorage)
		assert.True(t, cfg.CartRequiresAuth)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, "75", cfg.FreeShippingThreshold.String())
		assert.Equal(t, 250*time.Millisecond, cfg.UsernameCheckDelay)
		assert.True(t, cfg.HasDatabase())
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("CART_STORAGE", "")
		t.Setenv("FREE_SHIPPING_THRESHOLD", "not-a-number")
		t.Setenv("REDIS_DB", "x")

		cfg := LoadConfig()

		assert.Equal(t, StorageMemory, cfg.CartStorage)
		assert.Equal(t, "50", cfg.FreeShippingThreshold.String())
		assert.Equal(t, "9.99", cfg.ShippingFee.String())
		assert.Equal(t, "100", cfg.SavingsThreshold.String())
		assert.Equal(t, "0.1", cfg.SavingsRate.String())
		assert.Equal(t, 0, cfg.RedisDB)
		assert.Equal(t, 120*time.Minute, cfg.CartSessionIdle)
		assert.False(t, cfg.HasDatabase())
	})
}
