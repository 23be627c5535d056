package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverBadger   = "badger"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Storage
	StorageDriver  string
	DatabaseURL    string
	EnableDBCheck  bool
	BadgerPath     string
	MigrationsPath string

	// Rates
	ReferenceCurrency  string
	RateFeedURL        string
	RateFeedTimeout    time.Duration
	RateFeedMaxRetries uint64
	RateSyncInterval   time.Duration
	RateSyncOnStartup  bool

	// Auth
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// APIClients maps client id to a bcrypt hash of its secret.
	APIClients map[string]string

	// HTTP edge
	CORSAllowedOrigins []string
	RateLimit          string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("BADGER_PATH", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REFERENCE_CURRENCY", "DKK")
	viper.SetDefault("RATE_FEED_URL", "https://www.nationalbanken.dk/api/currencyratesxml")
	viper.SetDefault("RATE_FEED_TIMEOUT", "30s")
	viper.SetDefault("RATE_FEED_MAX_RETRIES", 3)
	viper.SetDefault("RATE_SYNC_INTERVAL", "1h")
	viper.SetDefault("RATE_SYNC_ON_STARTUP", true)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "dkk-exchange-service")
	viper.SetDefault("API_CLIENTS", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		StorageDriver:      strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_DRIVER"))),
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		BadgerPath:         viper.GetString("BADGER_PATH"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		ReferenceCurrency:  domain.NormalizeCurrencyCode(viper.GetString("REFERENCE_CURRENCY")),
		RateFeedURL:        viper.GetString("RATE_FEED_URL"),
		RateFeedMaxRetries: viper.GetUint64("RATE_FEED_MAX_RETRIES"),
		RateSyncOnStartup:  viper.GetBool("RATE_SYNC_ON_STARTUP"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	var err error
	if cfg.RateFeedTimeout, err = durationOrDefault("RATE_FEED_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateSyncInterval, err = durationOrDefault("RATE_SYNC_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.JWTExpiryDuration, err = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour); err != nil {
		return nil, err
	}

	if cfg.APIClients, err = parseAPIClients(viper.GetString("API_CLIENTS")); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %q", StorageDriverPostgres)
		}
	case StorageDriverBadger:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q (want %q or %q)", c.StorageDriver, StorageDriverPostgres, StorageDriverBadger)
	}

	if !domain.IsValidCurrencyCode(c.ReferenceCurrency) {
		return fmt.Errorf("REFERENCE_CURRENCY %q must be a 3-letter code", c.ReferenceCurrency)
	}

	if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
		if c.IsProduction {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		c.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if len(c.APIClients) == 0 {
		slog.Warn("API_CLIENTS not set. No client will be able to obtain a token.")
	}
	return nil
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

// parseAPIClients reads "id1:hash1,id2:hash2". bcrypt hashes never contain ':' or ','.
func parseAPIClients(raw string) (map[string]string, error) {
	clients := make(map[string]string)
	for _, pair := range splitList(raw) {
		id, hash, ok := strings.Cut(pair, ":")
		id, hash = strings.TrimSpace(id), strings.TrimSpace(hash)
		if !ok || id == "" || hash == "" {
			return nil, fmt.Errorf("invalid API_CLIENTS entry %q, want id:bcrypt-hash", pair)
		}
		clients[id] = hash
	}
	return clients, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
