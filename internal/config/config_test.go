package config

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-16-chars!!"

// t.Setenv restores the previous value when the test ends, and Load only
// looks for config.toml in the package directory, which has none.
func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("HEALTHTRACK_JWT_SECRET", testSecret)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, 8080, cfg.App.Port)
		assert.Equal(t, "data/healthtrack.db", cfg.Database.Path)
		assert.Equal(t, "healthtrack", cfg.JWT.Issuer)
		assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenTTL)
		assert.Equal(t, 12, cfg.Auth.BcryptCost)
		assert.Equal(t, DefaultAllowedOrigins, cfg.CORS.AllowedOrigins)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
	})

	t.Run("reads prefixed environment variables", func(t *testing.T) {
		t.Setenv("HEALTHTRACK_JWT_SECRET", testSecret)
		t.Setenv("HEALTHTRACK_APP_PORT", "9090")
		t.Setenv("HEALTHTRACK_DATABASE_PATH", "/tmp/h.db")
		t.Setenv("HEALTHTRACK_JWT_ACCESS_TOKEN_TTL", "2h")
		t.Setenv("HEALTHTRACK_AUTH_BCRYPT_COST", "10")
		t.Setenv("HEALTHTRACK_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("HEALTHTRACK_LOG_FORMAT", "json")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.App.Port)
		assert.Equal(t, "/tmp/h.db", cfg.Database.Path)
		assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenTTL)
		assert.Equal(t, 10, cfg.Auth.BcryptCost)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("missing secret is an error", func(t *testing.T) {
		t.Setenv("HEALTHTRACK_JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{JWT: JWTConfig{Secret: testSecret}}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "at least 16"},
		{"bad port", func(c *Config) { c.App.Port = 70000 }, "app.port"},
		{"bcrypt cost too low", func(c *Config) { c.Auth.BcryptCost = 3 }, "bcrypt_cost"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"production needs long secret", func(c *Config) {
			c.App.Env = "production"
			c.Auth.CookieSecure = true
		}, "32 characters"},
		{"production needs secure cookie", func(c *Config) {
			c.App.Env = "production"
			c.JWT.Secret = "0123456789abcdef0123456789abcdef"
		}, "cookie_secure"},
		{"production rejects wildcard origin", func(c *Config) {
			c.App.Env = "production"
			c.JWT.Secret = "0123456789abcdef0123456789abcdef"
			c.Auth.CookieSecure = true
			c.CORS.AllowedOrigins = []string{"*"}
		}, "cors.allowed_origins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("dropped")
	logger.Warn("kept", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "v", line["k"])
}
