package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/roadwatch/potholectl/internal/api"
	"github.com/roadwatch/potholectl/internal/config"
	"github.com/roadwatch/potholectl/internal/emoji"
	"github.com/roadwatch/potholectl/internal/logger"
	"github.com/roadwatch/potholectl/internal/session"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "potholectl",
		Short: "Pothole reporting from the command line",
		Long: `potholectl drives a pothole reporting backend from the terminal: it sends
road photos for detection, generates complaint letters from the findings,
exports them as PDF, and emails the complaint with annotated images attached.

Images can be passed as arguments, picked interactively in the UI, or dropped
into a watched folder.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			loader := config.NewLoader()
			cfg, err := loader.LoadConfig(cfgFile)
			if err != nil {
				return err
			}

			// flags beat config file settings
			if cmd.Flag("verbose").Changed {
				cfg.Output.Verbose = verbose
			} else {
				verbose = cfg.Output.Verbose
			}
			if !cmd.Flag("output").Changed && cfg.Output.DefaultFormat != "" {
				outputFmt = cfg.Output.DefaultFormat
			}
			if noColor {
				cfg.Output.ColorMode = "never"
			}
			if cfg.Output.NoEmoji && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
				emoji.SetEmojiDisabled(true)
			}

			globalConfig = cfg
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, csv)")

	// Add subcommands
	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newUICommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("potholectl %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers

func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

// GetGlobalConfig returns the loaded configuration, falling back to defaults
// when commands run outside the root command lifecycle
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// colorEnabled resolves the effective color mode
func colorEnabled() bool {
	if noColor {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		fi, err := os.Stdout.Stat()
		return err == nil && (fi.Mode()&os.ModeCharDevice) != 0
	}
}

// newBackendSession builds the service client and session from config
func newBackendSession(log *logger.Logger) (*session.Session, error) {
	cfg := GetGlobalConfig()

	client, err := api.NewClient(&api.Config{
		BaseURL:       cfg.Services.BaseURL,
		Timeout:       cfg.Services.Timeout,
		DetectTimeout: cfg.Services.DetectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	return session.New(client, &session.Options{
		ExportDir: cfg.Export.Dir,
		Logger:    log.WithComponent("session"),
	}), nil
}
