package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	SecretKey    string `envconfig:"SECRET_KEY"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	TMDB struct {
		APIKey       string `envconfig:"TMDB_API_KEY"`
		BaseURL      string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
		ImageBaseURL string `envconfig:"TMDB_IMG_BASE_URL" default:"https://image.tmdb.org/t/p/w500"`
	}
}

// LoadConfig reads the environment. A missing TMDB API key is a startup
// error: without it every outbound request would be malformed.
func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TMDB.APIKey == "" {
		return errors.New("load config error: TMDB_API_KEY is required")
	}
	return nil
}
