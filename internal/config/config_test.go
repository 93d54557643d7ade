package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		StorageBackend: BackendFile,
		DataDir:        "./data",
		RedisURL:       "localhost:6379",
		AdminEmail:     "admin@civicpulse.local",
		AdminName:      "City Administrator",
		AdminPassword:  "ChangeMe-dev-only-1!",
		NotifPollSecs:  30,
		Env:            "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development defaults", func(*Config) {}, false},
		{"Memory backend", func(c *Config) { c.StorageBackend = BackendMemory }, false},
		{"Unknown backend", func(c *Config) { c.StorageBackend = "postgres" }, true},
		{"File backend without data dir", func(c *Config) { c.DataDir = "" }, true},
		{"Redis backend without URL", func(c *Config) {
			c.StorageBackend = BackendRedis
			c.RedisURL = ""
		}, true},
		{"Missing admin email", func(c *Config) { c.AdminEmail = "" }, true},
		{"Zero poll interval", func(c *Config) { c.NotifPollSecs = 0 }, true},
		{"Production with default admin password", func(c *Config) { c.Env = "production" }, true},
		{"Prod with empty admin password", func(c *Config) {
			c.Env = "prod"
			c.AdminPassword = ""
		}, true},
		{"Production with rotated admin password", func(c *Config) {
			c.Env = "production"
			c.AdminPassword = "a-real-secret-Chosen-by-ops-9!"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
