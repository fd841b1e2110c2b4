package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roadwatch/potholectl/internal/config"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage potholectl configuration",
		Long: `Manage potholectl configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and managing configuration files.`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new potholectl configuration file with default values.

By default, creates a full configuration file with all options and comments.
Use --minimal for a compact configuration with only essential settings.`,
		Example: `  # Create full config in current directory
  potholectl config init

  # Create minimal config
  potholectl config init --minimal

  # Create config at specific path
  potholectl config init --output ~/.config/potholectl/config.yaml

  # Overwrite existing config
  potholectl config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".potholectl.yaml"
			}

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			var content string
			if minimal {
				content = config.MinimalSampleConfig()
			} else {
				content = config.SampleConfig()
			}

			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Printf("Configuration file created at: %s\n", outputPath)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .potholectl.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var (
		format     string
		configPath string
	)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current effective configuration after loading from all sources.

Shows the merged configuration from all sources including defaults,
config files, and environment variable overrides.`,
		Example: `  # Show config in YAML format
  potholectl config show

  # Show config in JSON format
  potholectl config show --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			cfg, err := loader.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			switch format {
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Println(string(data))
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Print(string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")
	showCmd.Flags().StringVar(&configPath, "config", "", "path to config file")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	var configPath string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate a potholectl configuration file for syntax and semantic errors.

Checks the configuration file for valid YAML syntax, required fields,
and valid values for enums.`,
		Example: `  # Validate current config
  potholectl config validate

  # Validate specific config file
  potholectl config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			cfg, err := loader.LoadConfig(configPath)
			if err != nil {
				fmt.Println("Configuration validation failed:")
				fmt.Printf("   %v\n", err)
				return err
			}

			fmt.Println("Configuration is valid")
			fmt.Printf("   Backend: %s\n", cfg.Services.BaseURL)
			fmt.Printf("   Export directory: %s\n", cfg.Export.Dir)
			fmt.Printf("   Output format: %s\n", cfg.Output.DefaultFormat)

			return nil
		},
	}

	validateCmd.Flags().StringVar(&configPath, "config", "", "path to config file")

	return validateCmd
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths potholectl searches for configuration files.

Shows the search order and indicates which files exist.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Configuration file search paths (in priority order):")
			fmt.Println()

			paths := config.GetConfigPaths()
			for i, path := range paths {
				exists := "(not found)"
				if fileExists(path) {
					exists = "(exists)"
				}
				fmt.Printf("  %d. %s %s\n", i+1, path, exists)
			}
			fmt.Println()

			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Printf("Current config file: %s\n", currentConfig)
			} else {
				fmt.Println("No config file found, using defaults")
			}

			fmt.Println()
			fmt.Println("Environment variables with POTHOLECTL_ prefix override file settings")
		},
	}

	return pathCmd
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
