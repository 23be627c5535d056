package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T, env map[string]string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setupEnv(t, map[string]string{"STORAGE_DRIVER": "badger"})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageDriverBadger, cfg.StorageDriver)
	assert.Equal(t, "DKK", cfg.ReferenceCurrency)
	assert.Equal(t, time.Hour, cfg.RateSyncInterval)
	assert.Equal(t, 30*time.Second, cfg.RateFeedTimeout)
	assert.Equal(t, uint64(3), cfg.RateFeedMaxRetries)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Empty(t, cfg.APIClients)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setupEnv(t, map[string]string{
		"STORAGE_DRIVER":       "Postgres",
		"PGSQL_URL":            "postgres://u:p@localhost:5432/db",
		"REFERENCE_CURRENCY":   " eur ",
		"RATE_SYNC_INTERVAL":   "15m",
		"API_CLIENTS":          "svc-a:$2a$10$abc, svc-b:$2a$10$def",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "EUR", cfg.ReferenceCurrency)
	assert.Equal(t, 15*time.Minute, cfg.RateSyncInterval)
	assert.Equal(t, map[string]string{"svc-a": "$2a$10$abc", "svc-b": "$2a$10$def"}, cfg.APIClients)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "sqlite"}},
		{"bad reference currency", map[string]string{"STORAGE_DRIVER": "badger", "REFERENCE_CURRENCY": "DK"}},
		{"bad interval", map[string]string{"STORAGE_DRIVER": "badger", "RATE_SYNC_INTERVAL": "soon"}},
		{"negative interval", map[string]string{"STORAGE_DRIVER": "badger", "RATE_SYNC_INTERVAL": "-1h"}},
		{"malformed client", map[string]string{"STORAGE_DRIVER": "badger", "API_CLIENTS": "no-hash"}},
		{"default secret in production", map[string]string{"STORAGE_DRIVER": "badger", "IS_PRODUCTION": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t, tt.env)
			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
