package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":       "test",
			"PORT":          "8080",
			"SENTRY_DSN":    "https://test@sentry.io/123",
			"ALLOW_ORIGINS": "*",
			"SECRET_KEY":    "form-secret",
			"DB_NAME":       "testdb",
			"DB_HOST":       "localhost",
			"DB_PORT":       "5432",
			"DB_USER":       "testuser",
			"DB_PASS":       "testpass",
			"ENABLE_SSL":    "true",
			"TMDB_API_KEY":  "tmdb-key",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, "form-secret", cfg.SecretKey)
		assert.Equal(t, "testdb", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "testuser", cfg.DB.User)
		assert.Equal(t, "testpass", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, "tmdb-key", cfg.TMDB.APIKey)
	})

	t.Run("defaults the TMDB endpoints", func(t *testing.T) {
		t.Setenv("TMDB_API_KEY", "tmdb-key")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500", cfg.TMDB.ImageBaseURL)
	})

	t.Run("fails fast when the TMDB API key is missing", func(t *testing.T) {
		t.Setenv("TMDB_API_KEY", "")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "TMDB_API_KEY")
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("TMDB_API_KEY", "tmdb-key")
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}
