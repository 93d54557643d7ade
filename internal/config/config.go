// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Backend names accepted for STORAGE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	StorageBackend  string `mapstructure:"STORAGE_BACKEND"`
	DataDir         string `mapstructure:"DATA_DIR"`
	RedisURL        string `mapstructure:"REDIS_URL"`
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string `mapstructure:"GEMINI_MODEL"`
	AdminEmail      string `mapstructure:"ADMIN_EMAIL"`
	AdminName       string `mapstructure:"ADMIN_NAME"`
	AdminPassword   string `mapstructure:"ADMIN_PASSWORD"`
	NotifPollSecs   int    `mapstructure:"NOTIF_POLL_SECONDS"`
	Env             string `mapstructure:"APP_ENV"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; env vars and defaults cover everything.
	_ = viper.ReadInConfig()

	viper.SetDefault("STORAGE_BACKEND", BackendFile)
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("ADMIN_EMAIL", "admin@civicpulse.local")
	viper.SetDefault("ADMIN_NAME", "City Administrator")
	viper.SetDefault("ADMIN_PASSWORD", "ChangeMe-dev-only-1!")
	viper.SetDefault("NOTIF_POLL_SECONDS", 30)
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of %s, %s, %s", BackendMemory, BackendFile, BackendRedis)
	}
	if c.StorageBackend == BackendFile && c.DataDir == "" {
		return errors.New("DATA_DIR is required for the file backend")
	}
	if c.StorageBackend == BackendRedis && c.RedisURL == "" {
		return errors.New("REDIS_URL is required for the redis backend")
	}
	if c.AdminEmail == "" {
		return errors.New("ADMIN_EMAIL is required")
	}
	if c.NotifPollSecs <= 0 {
		return errors.New("NOTIF_POLL_SECONDS must be positive")
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction {
		if c.AdminPassword == "ChangeMe-dev-only-1!" || c.AdminPassword == "" {
			return errors.New("ADMIN_PASSWORD must be changed from the default value in production")
		}
		if c.GeminiAPIKey == "" {
			log.Println("WARNING: GEMINI_API_KEY is empty; digest summaries will use fallback text")
		}
	}

	return nil
}
