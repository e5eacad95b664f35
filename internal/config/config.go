// Package config loads and validates the pagegen service configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultReadTimeout is the default HTTP read timeout
	DefaultReadTimeout = 10 * time.Second
	// DefaultWriteTimeout is the default HTTP write timeout
	DefaultWriteTimeout = 30 * time.Second
	// DefaultCacheTTL is the revalidation interval for cached pages
	DefaultCacheTTL = 24 * time.Hour
	// DefaultPrerenderLimit caps the slug listing used for pre-rendering
	DefaultPrerenderLimit = 100
)

type Config struct {
	Debug      bool             `yaml:"debug"` // Application debug mode (controls log level and format)
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Site       SiteConfig       `yaml:"site"`
	Generation GenerationConfig `yaml:"generation"`
}

type ServerConfig struct {
	Address      string        `yaml:"address"`       // e.g., ":8080"
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"` // Default: 30s
	CORSOrigins  []string      `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SiteConfig is the fixed organization identity embedded in generated pages.
type SiteConfig struct {
	Origin   string `yaml:"origin"` // e.g., "https://example.com", no trailing slash
	Brand    string `yaml:"brand"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	Currency string `yaml:"currency"` // ISO 4217, e.g., "INR"
}

type GenerationConfig struct {
	Schedule       string        `yaml:"schedule"`        // Optional cron spec for scheduled passes
	PrerenderLimit int           `yaml:"prerender_limit"` // Max slugs returned for pre-rendering
	CacheTTL       time.Duration `yaml:"cache_ttl"`       // Page cache revalidation interval
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Site.Origin == "" {
		return errors.New("site.origin is required")
	}
	if strings.HasSuffix(c.Site.Origin, "/") {
		return fmt.Errorf("site.origin must not end with a slash, got %q", c.Site.Origin)
	}
	if c.Generation.PrerenderLimit <= 0 {
		return fmt.Errorf("generation.prerender_limit must be positive, got %d", c.Generation.PrerenderLimit)
	}
	if c.Generation.CacheTTL <= 0 {
		return fmt.Errorf("generation.cache_ttl must be positive, got %v", c.Generation.CacheTTL)
	}
	return nil
}

// setDefaults sets default values for configuration fields
func setDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Site.Brand == "" {
		cfg.Site.Brand = "Pagegen Digital"
	}
	if cfg.Site.Currency == "" {
		cfg.Site.Currency = "INR"
	}
	if cfg.Generation.PrerenderLimit == 0 {
		cfg.Generation.PrerenderLimit = DefaultPrerenderLimit
	}
	if cfg.Generation.CacheTTL == 0 {
		cfg.Generation.CacheTTL = DefaultCacheTTL
	}
}

// overrideWithEnvVars overrides configuration with environment variables
func overrideWithEnvVars(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("SITE_ORIGIN"); v != "" {
		cfg.Site.Origin = v
	}
	if v := os.Getenv("APP_DEBUG"); v != "" {
		cfg.Debug = parseBool(v)
	}
	if v := os.Getenv("PAGEGEN_PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)
	overrideWithEnvVars(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// parseBool parses a string value as a boolean.
// Returns true for "true", "1", "yes" (case-insensitive), false otherwise.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}
