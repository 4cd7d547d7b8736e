package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Odoo        OdooConfig
	Client      ClientConfig
	RateLimit   RateLimitConfig
}

// OdooConfig holds the connection settings for the upstream Odoo instance
type OdooConfig struct {
	Host      string
	Database  string
	Username  string
	Password  string
	VerifySSL bool
}

// ClientConfig holds the shared-secret credentials expected from callers.
// When either value is empty the credential check is disabled.
type ClientConfig struct {
	ID     string
	Secret string
}

// RateLimitConfig holds request rate limiting settings
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("VERIFY_SSL", false)
	viper.SetDefault("RATE_LIMIT_RPS", 100.0)
	viper.SetDefault("RATE_LIMIT_BURST", 200)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Odoo: OdooConfig{
			Host:      viper.GetString("ODOO_HOST"),
			Database:  viper.GetString("ODOO_DB"),
			Username:  viper.GetString("ODOO_USERNAME"),
			Password:  viper.GetString("ODOO_PASSWORD"),
			VerifySSL: viper.GetBool("VERIFY_SSL"),
		},
		Client: ClientConfig{
			ID:     viper.GetString("CLIENT_ID"),
			Secret: viper.GetString("CLIENT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// Validate checks that the upstream connection settings are complete
func (c *Config) Validate() error {
	if c.Odoo.Host == "" {
		return fmt.Errorf("ODOO_HOST is required")
	}
	if c.Odoo.Database == "" {
		return fmt.Errorf("ODOO_DB is required")
	}
	if c.Odoo.Username == "" {
		return fmt.Errorf("ODOO_USERNAME is required")
	}
	if c.Odoo.Password == "" {
		return fmt.Errorf("ODOO_PASSWORD is required")
	}
	return nil
}

// AuthEnabled reports whether the shared-secret check should be enforced
func (c *Config) AuthEnabled() bool {
	return c.Client.ID != "" && c.Client.Secret != ""
}
