package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.potholectl.yaml",               // Project-specific config (highest priority)
	"~/.config/potholectl/config.yaml", // User config
	"/etc/potholectl/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.potholectl.yaml
// 4. ~/.config/potholectl/config.yaml
// 5. /etc/potholectl/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load from standard paths in reverse priority order (lowest to highest)
		paths := make([]string, len(l.configPaths))
		copy(paths, l.configPaths)
		for i := len(paths)/2 - 1; i >= 0; i-- {
			opp := len(paths) - 1 - i
			paths[i], paths[opp] = paths[opp], paths[i]
		}

		for _, path := range paths {
			expandedPath := expandPath(path)
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Services Config
		"POTHOLECTL_SERVICES_BASE_URL":       func(v string) error { config.Services.BaseURL = v; return nil },
		"POTHOLECTL_SERVICES_TIMEOUT":        func(v string) error { return parseDuration(v, &config.Services.Timeout) },
		"POTHOLECTL_SERVICES_DETECT_TIMEOUT": func(v string) error { return parseDuration(v, &config.Services.DetectTimeout) },

		// Complaint Config
		"POTHOLECTL_COMPLAINT_USER_NAME":      func(v string) error { config.Complaint.UserName = v; return nil },
		"POTHOLECTL_COMPLAINT_AUTHORITY_NAME": func(v string) error { config.Complaint.AuthorityName = v; return nil },
		"POTHOLECTL_COMPLAINT_CITY":           func(v string) error { config.Complaint.City = v; return nil },

		// Export Config
		"POTHOLECTL_EXPORT_DIR": func(v string) error { config.Export.Dir = v; return nil },

		// Watch Config
		"POTHOLECTL_WATCH_ENABLED": func(v string) error { return parseBool(v, &config.Watch.Enabled) },
		"POTHOLECTL_WATCH_DIR":     func(v string) error { config.Watch.Dir = v; return nil },

		// Output Config
		"POTHOLECTL_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"POTHOLECTL_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"POTHOLECTL_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"POTHOLECTL_OUTPUT_NO_EMOJI":       func(v string) error { return parseBool(v, &config.Output.NoEmoji) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeServicesConfig(&dst.Services, &src.Services)
	mergeComplaintConfig(&dst.Complaint, &src.Complaint)
	mergeExportConfig(&dst.Export, &src.Export)
	mergeWatchConfig(&dst.Watch, &src.Watch)
	mergeOutputConfig(&dst.Output, &src.Output)
}

func mergeServicesConfig(dst, src *ServicesConfig) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.DetectTimeout != 0 {
		dst.DetectTimeout = src.DetectTimeout
	}
}

func mergeComplaintConfig(dst, src *ComplaintConfig) {
	if src.UserName != "" {
		dst.UserName = src.UserName
	}
	if src.AuthorityName != "" {
		dst.AuthorityName = src.AuthorityName
	}
	if src.City != "" {
		dst.City = src.City
	}
}

func mergeExportConfig(dst, src *ExportConfig) {
	if src.Dir != "" {
		dst.Dir = src.Dir
	}
}

func mergeWatchConfig(dst, src *WatchConfig) {
	if src.Enabled {
		dst.Enabled = src.Enabled
	}
	if src.Dir != "" {
		dst.Dir = src.Dir
	}
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.Verbose {
		dst.Verbose = src.Verbose
	}
	if src.NoEmoji {
		dst.NoEmoji = src.NoEmoji
	}
}

// Type conversion helpers

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
