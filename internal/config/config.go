package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/Simplici0/costquote/internal/db"
	"github.com/Simplici0/costquote/internal/pricing"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv        string `env:"APP_ENV" envDefault:"development"`
	Port          string `env:"PORT" envDefault:"8080"`
	DBDriver      string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBPath        string `env:"DB_PATH" envDefault:"./dev.db"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON       bool   `env:"LOG_JSON" envDefault:"false"`

	DefaultCurrency     string  `env:"DEFAULT_CURRENCY" envDefault:"COP"`
	DefaultTaxRate      float64 `env:"DEFAULT_TAX_RATE" envDefault:"19"`
	DefaultTaxInclusive bool    `env:"DEFAULT_TAX_INCLUSIVE" envDefault:"false"`
}

// Load reads environment variables and returns a populated Config.
func Load() (Config, error) {
	// Best-effort: load local dev environment variables.
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsDev reports whether the app runs in a local development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == "development" || c.AppEnv == "local"
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == db.DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

// DefaultTax is the tax setting applied when a request does not carry one.
func (c Config) DefaultTax() pricing.TaxSetting {
	return pricing.TaxSetting{Rate: c.DefaultTaxRate, Inclusive: c.DefaultTaxInclusive}
}

func (c Config) validate() error {
	switch c.DBDriver {
	case db.DriverSQLite:
	case db.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", db.DriverPostgres)
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %s or %s, got %q", db.DriverSQLite, db.DriverPostgres, c.DBDriver)
	}
	if c.DefaultTaxRate < 0 {
		return fmt.Errorf("DEFAULT_TAX_RATE must be >= 0, got %v", c.DefaultTaxRate)
	}
	if c.DefaultCurrency == "" {
		return fmt.Errorf("DEFAULT_CURRENCY must not be empty")
	}
	return nil
}
