package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version   string          `yaml:"version" json:"version"`
	Services  ServicesConfig  `yaml:"services" json:"services"`
	Complaint ComplaintConfig `yaml:"complaint" json:"complaint"`
	Export    ExportConfig    `yaml:"export" json:"export"`
	Watch     WatchConfig     `yaml:"watch" json:"watch"`
	Output    OutputConfig    `yaml:"output" json:"output"`
}

// ServicesConfig configures the remote backend endpoints
type ServicesConfig struct {
	BaseURL       string        `yaml:"base_url" json:"base_url"`             // backend base URL
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`               // request timeout
	DetectTimeout time.Duration `yaml:"detect_timeout" json:"detect_timeout"` // detection batch timeout
}

// ComplaintConfig configures default complaint fields
type ComplaintConfig struct {
	UserName      string `yaml:"user_name" json:"user_name"`           // default signature name
	AuthorityName string `yaml:"authority_name" json:"authority_name"` // default addressee
	City          string `yaml:"city" json:"city"`                     // default city
}

// ExportConfig configures local saves
type ExportConfig struct {
	Dir string `yaml:"dir" json:"dir"` // directory for saved images and PDFs
}

// WatchConfig configures the drop folder
type WatchConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"` // pick up dropped files
	Dir     string `yaml:"dir" json:"dir"`         // watched directory
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|text|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	NoEmoji       bool   `yaml:"no_emoji" json:"no_emoji"`             // plain-text indicators
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Services: ServicesConfig{
			BaseURL:       "http://localhost:8000",
			Timeout:       30 * time.Second,
			DetectTimeout: 2 * time.Minute,
		},
		Complaint: ComplaintConfig{
			UserName:      "Concerned Citizen",
			AuthorityName: "Municipal Commissioner",
		},
		Export: ExportConfig{
			Dir: "./exports",
		},
		Watch: WatchConfig{
			Enabled: false,
			Dir:     "./drop",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			NoEmoji:       false,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServicesConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if c.Watch.Enabled && c.Watch.Dir == "" {
		return fmt.Errorf("watch.dir is required when watch is enabled")
	}
	return nil
}

func (c *Config) validateServicesConfig() error {
	if c.Services.BaseURL == "" {
		return fmt.Errorf("services.base_url is required")
	}
	if c.Services.Timeout <= 0 {
		return fmt.Errorf("services.timeout must be positive")
	}
	if c.Services.DetectTimeout <= 0 {
		return fmt.Errorf("services.detect_timeout must be positive")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}
