package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Database   Database `json:"database" mapstructure:"database"`
	ExportPath string   `json:"export_path" mapstructure:"export_path"`
	Counts     Counts   `json:"counts" mapstructure:"counts"`
	Generate   Generate `json:"generate" mapstructure:"generate"`
	Catalog    Catalog  `json:"catalog" mapstructure:"catalog"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Counts holds how many rows each generator produces per run.
type Counts struct {
	Suppliers             int `json:"suppliers" mapstructure:"suppliers"`
	Products              int `json:"products" mapstructure:"products"`
	Customers             int `json:"customers" mapstructure:"customers"`
	Orders                int `json:"orders" mapstructure:"orders"`
	CompetitorsPerProduct int `json:"competitors_per_product" mapstructure:"competitors_per_product"`
}

// Generate holds the sampling bounds used by the generators.
type Generate struct {
	ProductPriceMin   float64 `json:"product_price_min" mapstructure:"product_price_min"`
	ProductPriceMax   float64 `json:"product_price_max" mapstructure:"product_price_max"`
	OrderPriceMin     float64 `json:"order_price_min" mapstructure:"order_price_min"`
	OrderPriceMax     float64 `json:"order_price_max" mapstructure:"order_price_max"`
	OrderHistoryDays  int     `json:"order_history_days" mapstructure:"order_history_days"`
	SignupHistoryDays int     `json:"signup_history_days" mapstructure:"signup_history_days"`
}

type Catalog struct {
	URL            string `json:"url" mapstructure:"url"`
	TimeoutSeconds int    `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Defaults
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = "export"
	}
	if cfg.Counts.Suppliers == 0 {
		cfg.Counts.Suppliers = 7
	}
	if cfg.Counts.Products == 0 {
		cfg.Counts.Products = 500
	}
	if cfg.Counts.Customers == 0 {
		cfg.Counts.Customers = 5000
	}
	if cfg.Counts.Orders == 0 {
		cfg.Counts.Orders = 50000
	}
	if cfg.Counts.CompetitorsPerProduct == 0 {
		cfg.Counts.CompetitorsPerProduct = 4
	}
	if cfg.Generate.ProductPriceMin == 0 {
		cfg.Generate.ProductPriceMin = 5
	}
	if cfg.Generate.ProductPriceMax == 0 {
		cfg.Generate.ProductPriceMax = 1500
	}
	if cfg.Generate.OrderPriceMin == 0 {
		cfg.Generate.OrderPriceMin = 10
	}
	if cfg.Generate.OrderPriceMax == 0 {
		cfg.Generate.OrderPriceMax = 2000
	}
	if cfg.Generate.OrderHistoryDays == 0 {
		cfg.Generate.OrderHistoryDays = 365
	}
	if cfg.Generate.SignupHistoryDays == 0 {
		cfg.Generate.SignupHistoryDays = 3 * 365
	}
	if cfg.Catalog.URL == "" {
		cfg.Catalog.URL = "https://fakestoreapi.com/products"
	}
	if cfg.Catalog.TimeoutSeconds == 0 {
		cfg.Catalog.TimeoutSeconds = 10
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Counts.Suppliers <= 0 || c.Counts.Products <= 0 || c.Counts.Customers <= 0 || c.Counts.Orders <= 0 {
		return fmt.Errorf("entity counts must be positive")
	}
	if c.Counts.CompetitorsPerProduct <= 0 {
		return fmt.Errorf("competitors_per_product must be positive")
	}
	if c.Generate.ProductPriceMin <= 0 || c.Generate.ProductPriceMax <= c.Generate.ProductPriceMin {
		return fmt.Errorf("invalid product price range [%v, %v]", c.Generate.ProductPriceMin, c.Generate.ProductPriceMax)
	}
	if c.Generate.OrderPriceMin <= 0 || c.Generate.OrderPriceMax <= c.Generate.OrderPriceMin {
		return fmt.Errorf("invalid order price range [%v, %v]", c.Generate.OrderPriceMin, c.Generate.OrderPriceMax)
	}
	if c.ExportPath == "" {
		return fmt.Errorf("export_path cannot be empty")
	}

	return nil
}

func (c *Config) EnsureDirectories() error {
	if c.ExportPath == "" || c.ExportPath == "." {
		return nil
	}
	if err := os.MkdirAll(c.ExportPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.ExportPath, err)
	}
	return nil
}
