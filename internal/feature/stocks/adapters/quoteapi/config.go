// Package quoteapi provides a client for the daily-quote market data API.
package quoteapi

import (
	"os"
	"time"
)

// Config holds configuration for the market data API client.
type Config struct {
	BaseURL string        // Base URL for the API
	APIKey  string        // API key for authentication
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads market data API configuration from environment variables.
func LoadConfig() Config {
	return Config{
		BaseURL: os.Getenv("QUOTE_API_URL"),
		APIKey:  os.Getenv("QUOTE_API_KEY"),
		Timeout: 10 * time.Second,
	}
}
