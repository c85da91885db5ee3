// Package config loads gateway and CLI settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Token store backends
const (
	StoreBadger = "badger"
	StoreRedis  = "redis"
)

type Config struct {
	API        API
	HTTPServer HTTPServer
	TokenStore TokenStore
	Cache      Cache
	Log        Log
	Dashboard  Dashboard
}

type API struct {
	BaseURL string        `env:"ATLAS_API_BASE_URL" env-default:"http://localhost:8000"`
	Timeout time.Duration `env:"ATLAS_API_TIMEOUT" env-default:"10s"`
}

type HTTPServer struct {
	Port        string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type TokenStore struct {
	Backend       string `env:"TOKEN_STORE" env-default:"badger"`
	BadgerPath    string `env:"TOKEN_STORE_PATH"`
	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	RedisPrefix   string `env:"REDIS_KEY_PREFIX" env-default:"atlasiq:"`
}

type Cache struct {
	TTL time.Duration `env:"SERIES_CACHE_TTL" env-default:"5m"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

type Dashboard struct {
	Countries string `env:"DASHBOARD_COUNTRIES" env-default:"NLD,BEL,LUX,DEU"`
	StartYear int    `env:"DASHBOARD_START_YEAR" env-default:"2015"`
	EndYear   int    `env:"DASHBOARD_END_YEAR" env-default:"2023"`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.TokenStore.BadgerPath == "" {
		cfg.TokenStore.BadgerPath = defaultBadgerPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values cleanenv cannot express as tags
func (c *Config) Validate() error {
	switch c.TokenStore.Backend {
	case StoreBadger, StoreRedis:
	default:
		return fmt.Errorf("unsupported token store %q", c.TokenStore.Backend)
	}

	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api base url must be http(s): %q", c.API.BaseURL)
	}

	if c.Dashboard.StartYear > c.Dashboard.EndYear {
		return fmt.Errorf("dashboard start year %d is after end year %d", c.Dashboard.StartYear, c.Dashboard.EndYear)
	}

	return nil
}

// DashboardCountries splits the configured country list
func (c *Config) DashboardCountries() []string {
	var out []string
	for _, code := range strings.Split(c.Dashboard.Countries, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			out = append(out, code)
		}
	}
	return out
}

func defaultBadgerPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "data", "tokens")
	}
	return filepath.Join(dir, "atlasiq", "tokens")
}
