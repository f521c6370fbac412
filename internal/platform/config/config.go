// Package config loads application settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"toysns/internal/platform/db"
	jwtmw "toysns/internal/platform/jwt"
	"toysns/internal/platform/redis"
)

// devJWTSecret is only accepted when APP_ENV is dev.
const devJWTSecret = "toysns-dev-secret-do-not-use-in-production"

// ErrMissingJWTSecret is returned outside dev when JWT_SECRET is empty.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set outside the dev environment")

// RateLimitConfig bounds join and login attempts per client.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Config is the resolved application configuration.
type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	DB    db.Config
	Redis redis.Config
	JWT   jwtmw.Config

	BcryptCost        int
	PostCacheTTL      time.Duration
	PrincipalCacheTTL time.Duration
	RateLimit         RateLimitConfig

	CORSAllowedOrigins []string

	// UsingDevJWTSecret is set when JWT_SECRET was empty in dev and the
	// development secret was substituted. The caller logs the warning once
	// its logger is installed.
	UsingDevJWTSecret bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_DRIVER", db.DriverSQLite)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "toysns")
	v.SetDefault("DB_NAME", "toysns")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "toysns.db")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("DB_CONNECT_TIMEOUT", "60s")

	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_EXPIRED_TIME_MS", int64(30*24*time.Hour/time.Millisecond))
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("POST_CACHE_TTL", "1m")
	v.SetDefault("PRINCIPAL_CACHE_TTL", "30s")
	v.SetDefault("RATE_LIMIT_REQUESTS", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
}

// Load reads .env if present, then resolves every key from the environment
// with defaults for anything unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppEnv:   v.GetString("APP_ENV"),
		HTTPAddr: v.GetString("HTTP_ADDR"),
		LogLevel: v.GetString("LOG_LEVEL"),
		DB: db.Config{
			Driver:         v.GetString("DB_DRIVER"),
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Name:           v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			Path:           v.GetString("DB_PATH"),
			RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
			ConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
		},
		Redis: redis.Config{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: jwtmw.Config{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: time.Duration(v.GetInt64("JWT_EXPIRED_TIME_MS")) * time.Millisecond,
		},
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		PostCacheTTL:       v.GetDuration("POST_CACHE_TTL"),
		PrincipalCacheTTL:  v.GetDuration("PRINCIPAL_CACHE_TTL"),
		RateLimit:          RateLimitConfig{Requests: v.GetInt("RATE_LIMIT_REQUESTS"), Window: v.GetDuration("RATE_LIMIT_WINDOW")},
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRED_TIME_MS must be positive")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}

	// JWT_SECRET check (development fallback)
	if c.JWT.Secret == "" {
		if c.AppEnv != "dev" {
			return ErrMissingJWTSecret
		}
		c.JWT.Secret = devJWTSecret
		c.UsingDevJWTSecret = true
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
