package api

import "time"

// Config holds client configuration for the reporting backend
type Config struct {
	// BaseURL is the backend endpoint
	BaseURL string `json:"base_url"`

	// Timeout for JSON requests (complaint, pdf, email)
	Timeout time.Duration `json:"timeout"`

	// DetectTimeout for the batch image upload, which carries much larger
	// payloads than the JSON endpoints
	DetectTimeout time.Duration `json:"detect_timeout"`
}

// DefaultConfig returns a default client configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://localhost:8000",
		Timeout:       30 * time.Second,
		DetectTimeout: 2 * time.Minute,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return NewValidationError("base_url", "base URL is required")
	}

	if c.Timeout <= 0 {
		return NewValidationError("timeout", "timeout must be positive")
	}

	if c.DetectTimeout <= 0 {
		return NewValidationError("detect_timeout", "detect timeout must be positive")
	}

	return nil
}
