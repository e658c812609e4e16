// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Module-specific config interfaces keep each consumer on the smallest
// surface it needs.

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for the auth middleware.
// Token minting lives in the identity provider, not in this service.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// SchedulerConfig provides settings for the reminder scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetReminderQueue() string
	GetReminderLead() time.Duration
	IsSchedulerEnabled() bool
}

// Config holds all application configuration.
type Config struct {
	Env string

	HTTPAddr    string
	CORSAllow   bool
	CORSOrigins []string

	DatabaseURL string

	JWTAccessSecret string

	RedisURL         string
	ReminderQueue    string
	ReminderLead     time.Duration
	SchedulerEnabled bool
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllow:        getBool("CORS_ALLOW_ALL", false),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTAccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		RedisURL:         os.Getenv("REDIS_URL"),
		ReminderQueue:    getEnv("REMINDER_QUEUE", "default"),
		ReminderLead:     getDuration("REMINDER_LEAD", time.Hour),
		SchedulerEnabled: getBool("SCHEDULER_ENABLED", false),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.SchedulerEnabled && cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required when SCHEDULER_ENABLED=true")
	}

	return cfg, nil
}

func (c *Config) GetDatabaseURL() string   { return c.DatabaseURL }
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllow }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

func (c *Config) GetRedisURL() string           { return c.RedisURL }
func (c *Config) GetReminderQueue() string      { return c.ReminderQueue }
func (c *Config) GetReminderLead() time.Duration { return c.ReminderLead }
func (c *Config) IsSchedulerEnabled() bool      { return c.SchedulerEnabled }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
