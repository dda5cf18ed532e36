package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Shopify     ShopifyConfig
	Chart       ChartConfig
	Processing  ProcessingConfig
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

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// ChartConfig carries brand styling overrides for rendered charts. Empty
// fields fall back to the renderer defaults.
type ChartConfig struct {
	BrandName string
	MainColor string
	HeaderBg  string
	LogoPath  string
}

// ProcessingConfig tunes the batch pipeline. MinPairs is the minimum number
// of (size, measurement) pairs a description must yield before a chart is
// considered usable.
type ProcessingConfig struct {
	MinPairs       int
	ProductDelayMs int // pause between products (Shopify allows ~2 req/s)
	PageDelayMs    int // pause between paginated product fetches
}

type APIConfig struct {
	// AdminKeyHash is a bcrypt hash of the operator API key for /v1 routes
	AdminKeyHash string
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
			DBName:   getEnvOrViper("DB_NAME", "sizecharts"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2026-01"),
		},
		Chart: ChartConfig{
			BrandName: strings.TrimSpace(getEnvOrViper("CHART_BRAND_NAME", "")),
			MainColor: strings.TrimSpace(getEnvOrViper("CHART_MAIN_COLOR", "")),
			HeaderBg:  strings.TrimSpace(getEnvOrViper("CHART_HEADER_BG", "")),
			LogoPath:  strings.TrimSpace(getEnvOrViper("CHART_LOGO_PATH", "")),
		},
		Processing: ProcessingConfig{
			MinPairs:       getEnvOrViperInt("CHART_MIN_PAIRS", 2),
			ProductDelayMs: getEnvOrViperInt("PRODUCT_DELAY_MS", 500),
			PageDelayMs:    getEnvOrViperInt("PAGE_DELAY_MS", 600),
		},
		API: APIConfig{
			AdminKeyHash: strings.TrimSpace(getEnvOrViper("ADMIN_API_KEY_HASH", "")),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ACCESS_TOKEN is required")
	}
	if cfg.Processing.MinPairs < 1 {
		return nil, fmt.Errorf("CHART_MIN_PAIRS must be at least 1")
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

func getEnvOrViperInt(key string, defaultValue int) int {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}
