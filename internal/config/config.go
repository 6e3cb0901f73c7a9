package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Shopify     ShopifyConfig
	Catalog     CatalogConfig
	API         APIConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ShopifyConfig holds the API version used for imports; shop URL and access
// token come per-request from the caller
type ShopifyConfig struct {
	APIVersion string
}

// CatalogConfig holds the fixed references the importer creates records
// under. All must resolve to pre-existing rows; resolution failure is fatal
// to an import run.
type CatalogConfig struct {
	DefaultProductTypeID uuid.UUID
	DefaultCategoryID    uuid.UUID
	SizeAttributeID      uuid.UUID
	ColorAttributeID     uuid.UUID
	DefaultWarehouseID   uuid.UUID
	ParentMenuItemID     uuid.UUID
	NavMenuName          string
}

type APIConfig struct {
	AdminKeyHash string // bcrypt hash of the admin API key
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("NAV_MENU_NAME", "navbar")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "catalogapi"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			APIVersion: getEnvOrViper("SHOPIFY_API_VERSION", "2021-04"),
		},
		API: APIConfig{
			AdminKeyHash: strings.TrimSpace(getEnvOrViper("ADMIN_API_KEY_HASH", "")),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}
	cfg.Catalog.NavMenuName = getEnvOrViper("NAV_MENU_NAME", "navbar")

	// Fixed catalog references; all required
	refs := []struct {
		key  string
		dest *uuid.UUID
	}{
		{"DEFAULT_PRODUCT_TYPE_ID", &cfg.Catalog.DefaultProductTypeID},
		{"DEFAULT_CATEGORY_ID", &cfg.Catalog.DefaultCategoryID},
		{"SIZE_ATTRIBUTE_ID", &cfg.Catalog.SizeAttributeID},
		{"COLOR_ATTRIBUTE_ID", &cfg.Catalog.ColorAttributeID},
		{"DEFAULT_WAREHOUSE_ID", &cfg.Catalog.DefaultWarehouseID},
		{"PARENT_MENU_ITEM_ID", &cfg.Catalog.ParentMenuItemID},
	}
	for _, ref := range refs {
		raw := strings.TrimSpace(getEnvOrViper(ref.key, ""))
		if raw == "" {
			return nil, fmt.Errorf("%s is required", ref.key)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s is not a valid UUID: %w", ref.key, err)
		}
		*ref.dest = id
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
