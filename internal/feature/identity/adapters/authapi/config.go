// Package authapi provides a client for the remote identity service.
package authapi

import (
	"os"
	"time"
)

// Config holds configuration for the identity service client.
type Config struct {
	BaseURL string        // Base URL of the identity service
	Timeout time.Duration // HTTP request timeout for validation calls
}

// LoadConfig loads identity service configuration from environment variables.
func LoadConfig() Config {
	return Config{
		BaseURL: os.Getenv("AUTH_API_URL"),
		Timeout: 10 * time.Second,
	}
}
