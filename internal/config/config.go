// Package config loads server and CLI configuration from an optional YAML
// file and the environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all adminsuite configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Export   ExportConfig   `yaml:"export"`
	HTTP     HTTPConfig     `yaml:"http"`
}

type AppConfig struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"` // development, production
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	URL              string        `yaml:"url"`
	MaxConns         int32         `yaml:"max_conns"`
	StatementTimeout time.Duration `yaml:"statement_timeout"`
	AutoMigrate      bool          `yaml:"auto_migrate"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// ExportConfig controls how dates render in CSV cells.
type ExportConfig struct {
	Timezone   string `yaml:"timezone"`
	TimeLayout string `yaml:"time_layout"`
}

type HTTPConfig struct {
	Gzip            bool          `yaml:"gzip"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	IdempotencyTTL  time.Duration `yaml:"idempotency_ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{Port: "8080", Env: "development"},
		Log: LogConfig{Level: "info"},
		Database: DatabaseConfig{
			MaxConns:         10,
			StatementTimeout: 30 * time.Second,
		},
		JWT:    JWTConfig{TTL: 24 * time.Hour},
		Export: ExportConfig{Timezone: "UTC", TimeLayout: "1/2/2006, 3:04:05 PM"},
		HTTP: HTTPConfig{
			Gzip:            true,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			IdempotencyTTL:  24 * time.Hour,
		},
	}
}

// Load reads CONFIG_FILE when set, then applies environment overrides.
func Load() (*Config, error) {
	return load(os.Getenv("CONFIG_FILE"), os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setString("APP_PORT", &c.App.Port)
	setString("APP_ENV", &c.App.Env)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("DATABASE_URL", &c.Database.URL)
	setString("JWT_SECRET", &c.JWT.Secret)
	setString("EXPORT_TIMEZONE", &c.Export.Timezone)
	setString("EXPORT_TIME_LAYOUT", &c.Export.TimeLayout)

	if v := getenv("DB_MAX_CONNS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("DB_MAX_CONNS: %w", err)
		}
		c.Database.MaxConns = int32(n)
	}
	if v := getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_TTL: %w", err)
		}
		c.JWT.TTL = d
	}
	if v := getenv("IDEMPOTENCY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("IDEMPOTENCY_TTL: %w", err)
		}
		c.HTTP.IdempotencyTTL = d
	}
	if v := getenv("DB_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DB_AUTO_MIGRATE: %w", err)
		}
		c.Database.AutoMigrate = b
	}
	if v := getenv("GZIP_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GZIP_ENABLED: %w", err)
		}
		c.HTTP.Gzip = b
	}
	return nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Location resolves the export timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Export.Timezone)
	if err != nil {
		return nil, fmt.Errorf("export timezone %q: %w", c.Export.Timezone, err)
	}
	return loc, nil
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url not configured (set DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret not configured (set JWT_SECRET)")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %s", c.JWT.TTL)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
