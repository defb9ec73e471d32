package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP Server Configuration
	Server ServerConfig

	// Database Configuration
	Database DatabaseConfig

	// Session Configuration
	Auth AuthConfig

	// Logging Configuration
	Logging LoggingConfig
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Port          string   `validate:"required,numeric"`
	ClientOrigins []string `validate:"required,min=1,dive,url"` // Allowed cross-origin client addresses
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string `validate:"required"`
}

// AuthConfig holds token and session cookie configuration
type AuthConfig struct {
	TokenSecret   string        `validate:"required"`
	TokenTTL      time.Duration `validate:"gt=0"`
	CookieMaxAge  time.Duration `validate:"gt=0"`
	CookieSecure  bool
	Revocation    bool   // Keep a server-side list of logged out tokens
	PurgeSchedule string `validate:"required,cronspec"` // Cron expression for purging expired revocations
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string `validate:"oneof=json console"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	tokenTTL, err := durationEnv("TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	// The cookie outlives the token by default; the browser keeps sending an
	// expired token until the cookie itself ages out.
	cookieMaxAge, err := durationEnv("COOKIE_MAX_AGE", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cookieSecure, err := boolEnv("COOKIE_SECURE", true)
	if err != nil {
		return nil, err
	}

	revocation, err := boolEnv("SESSION_REVOCATION", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          stringEnv("PORT", "5000"),
			ClientOrigins: splitList(stringEnv("CLIENT_ORIGIN", "http://localhost:5173")),
		},
		Database: DatabaseConfig{
			URL: stringEnv("DATABASE_URL", "blog.sqlite"),
		},
		Auth: AuthConfig{
			TokenSecret:   os.Getenv("ACCESS_TOKEN_SECRET"),
			TokenTTL:      tokenTTL,
			CookieMaxAge:  cookieMaxAge,
			CookieSecure:  cookieSecure,
			Revocation:    revocation,
			PurgeSchedule: stringEnv("REVOCATION_PURGE_SCHEDULE", "@hourly"),
		},
		Logging: LoggingConfig{
			Level:  stringEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(stringEnv("LOG_FORMAT", "json")),
		},
	}

	validate := validator.New()
	if err := validate.RegisterValidation("cronspec", validCronSpec); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Same field set the purge worker schedules with
var cronSpecParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func validCronSpec(fl validator.FieldLevel) bool {
	_, err := cronSpecParser.Parse(fl.Field().String())
	return err == nil
}

func stringEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
