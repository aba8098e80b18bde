package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort           string
	PostgresDSN        string
	RedisAddr          string
	StorefrontCacheTTL time.Duration
}

func Load() Config {
	return Config{
		HTTPPort:           getenv("PORT", "3000"),
		PostgresDSN:        postgresDSN(),
		RedisAddr:          getenv("REDIS_ADDR", ""),
		StorefrontCacheTTL: time.Duration(getenvInt("STOREFRONT_CACHE_TTL_SECONDS", 30)) * time.Second,
	}
}

func postgresDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "postgres"),
		getenv("DB_PASSWORD", "postgres"),
		getenv("DB_NAME", "marketplace"),
		getenv("DB_PORT", "5432"),
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
