package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
}

// APIConfig holds the remote store API configuration
type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"` // seconds
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// RedisConfig holds Redis connection details for the durable cart storage
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// CheckoutConfig holds the order pricing parameters
type CheckoutConfig struct {
	TaxRate     float64 `mapstructure:"tax_rate"`     // fraction of the subtotal, e.g. 0.10
	ShippingFee float64 `mapstructure:"shipping_fee"` // flat fee, waived for empty carts
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Defaults are complete, so a missing config.yaml is fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "https://fakestoreapi.com")
	viper.SetDefault("api.timeout", 30)
	viper.SetDefault("api.max_retries", 3)
	viper.SetDefault("api.max_requests_per_second", 10)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
	viper.SetDefault("redis.key_prefix", "storefront:")

	viper.SetDefault("checkout.tax_rate", 0.10)
	viper.SetDefault("checkout.shipping_fee", 5.99)
}
