// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback), optionally seeded from a .env file
//
// Example usage:
//
//	config.LoadDotEnv()
//	cfg := config.LoadOrEnv()
//	ledgerPath := cfg.Ledger.Path
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Ledger        LedgerConfig        `yaml:"ledger"`
	Server        ServerConfig        `yaml:"server"`
	Cache         CacheConfig         `yaml:"cache"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// LedgerConfig describes where the transaction dataset is loaded from
type LedgerConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // csv or sqlite; inferred from the extension when empty
	Table  string `yaml:"table"`  // sqlite only
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit"` // requests per second, 0 disables limiting
	Burst          int      `yaml:"burst"`
}

// CacheConfig controls the range report cache
type CacheConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text (Maven-style) or json
}

// Defaults
const (
	DefaultLedgerPath      = "Sample_dataset_no_liza.csv"
	DefaultPort            = 8080
	DefaultRateLimit       = 10.0
	DefaultBurst           = 30
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCleanupInterval = 20 * time.Minute
)

// DefaultAllowedOrigins are the local development front-ends
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${LEDGER_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Ledger: LedgerConfig{
			Path:   getEnv("LEDGER_PATH", DefaultLedgerPath),
			Format: getEnv("LEDGER_FORMAT", ""),
			Table:  getEnv("LEDGER_TABLE", ""),
		},
		Server: ServerConfig{
			Port:           getEnvInt("PORT", DefaultPort),
			AllowedOrigins: getEnvList("ALLOWED_ORIGINS", DefaultAllowedOrigins),
			RateLimit:      getEnvFloat("RATE_LIMIT", DefaultRateLimit),
			Burst:          getEnvInt("RATE_BURST", DefaultBurst),
		},
		Cache: CacheConfig{
			TTL:             getEnvDuration("CACHE_TTL", DefaultCacheTTL),
			CleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", DefaultCleanupInterval),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// LoadDotEnv seeds the environment from a .env file in the working
// directory or its parent. A missing file is not an error.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil {
		err = godotenv.Load("../.env")
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Ledger.Path == "" {
		c.Ledger.Path = DefaultLedgerPath
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.AllowedOrigins == nil {
		c.Server.AllowedOrigins = DefaultAllowedOrigins
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = DefaultBurst
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.CleanupInterval == 0 {
		c.Cache.CleanupInterval = DefaultCleanupInterval
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if result, err := strconv.Atoi(val); err == nil {
			return result
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if result, err := strconv.ParseFloat(val, 64); err == nil {
			return result
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if result, err := time.ParseDuration(val); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, e.g. ALLOWED_ORIGINS=http://a,http://b
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
