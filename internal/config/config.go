package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application, loaded from the
// environment with sensible development defaults.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Trips    TripConfig
	NewRelic NewRelicConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds identity token configuration. JWTSecret has no
// default; main refuses to start without it.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// TripConfig holds trip lifecycle engine configuration.
type TripConfig struct {
	// MaxUpdateAttempts bounds the optimistic retry loop per mutation.
	MaxUpdateAttempts int

	// ClosedBlocksRequests rejects new reservation requests on closed trips.
	ClosedBlocksRequests bool
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	cfg := &Config{}

	cfg.Server.Port = envStr("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = envDuration("SERVER_READ_TIMEOUT", 10*time.Second)
	cfg.Server.WriteTimeout = envDuration("SERVER_WRITE_TIMEOUT", 10*time.Second)

	cfg.Database.Host = envStr("DB_HOST", "localhost")
	cfg.Database.Port = envStr("DB_PORT", "5432")
	cfg.Database.User = envStr("DB_USER", "postgres")
	cfg.Database.Password = envStr("DB_PASSWORD", "postgres")
	cfg.Database.DBName = envStr("DB_NAME", "carpool")
	cfg.Database.SSLMode = envStr("DB_SSLMODE", "disable")

	cfg.Redis.Addr = envStr("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = envStr("REDIS_PASSWORD", "")
	cfg.Redis.DB = envInt("REDIS_DB", 0)

	cfg.Auth.JWTSecret = envStr("JWT_SECRET", "")
	cfg.Auth.TokenTTL = envDuration("TOKEN_TTL", time.Hour)

	cfg.Trips.MaxUpdateAttempts = envInt("TRIP_MAX_UPDATE_ATTEMPTS", 5)
	cfg.Trips.ClosedBlocksRequests = envBool("TRIP_CLOSED_BLOCKS_REQUESTS", false)

	cfg.NewRelic.AppName = envStr("NEW_RELIC_APP_NAME", "carpool-service")
	cfg.NewRelic.LicenseKey = envStr("NEW_RELIC_LICENSE_KEY", "")
	cfg.NewRelic.Enabled = envBool("NEW_RELIC_ENABLED", false)

	return cfg
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
