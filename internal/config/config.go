package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Cart storage backends.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	AppEnv  string
	AppPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret  string
	CORSOrigin string

	CartStorage      string
	CartFileDir      string
	CartRequiresAuth bool
	CartSessionIdle  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	SavingsThreshold      decimal.Decimal
	SavingsRate           decimal.Decimal

	UsernameCheckDelay time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),

		CartStorage:      getEnv("CART_STORAGE", StorageMemory),
		CartFileDir:      getEnv("CART_FILE_DIR", "./data/carts"),
		CartRequiresAuth: getEnvBool("CART_REQUIRES_AUTH", false),
		CartSessionIdle:  time.Duration(getEnvInt("CART_SESSION_IDLE_MINUTES", 120)) * time.Minute,

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		FreeShippingThreshold: getEnvDecimal("FREE_SHIPPING_THRESHOLD", "50"),
		ShippingFee:           getEnvDecimal("SHIPPING_FEE", "9.99"),
		SavingsThreshold:      getEnvDecimal("SAVINGS_THRESHOLD", "100"),
		SavingsRate:           getEnvDecimal("SAVINGS_RATE", "0.10"),

		UsernameCheckDelay: time.Duration(getEnvInt("USERNAME_CHECK_DELAY_MS", 400)) * time.Millisecond,
	}
}

// HasDatabase reports whether the connection settings are present.
func (c *Config) HasDatabase() bool {
	return c.DBHost != "" && c.DBName != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(fallback)
}
