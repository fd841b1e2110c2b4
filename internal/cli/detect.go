package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roadwatch/potholectl/internal/formatter"
	"github.com/roadwatch/potholectl/internal/logger"
	"github.com/roadwatch/potholectl/internal/session"
	"github.com/roadwatch/potholectl/internal/watcher"
)

var (
	detectTimeout    time.Duration
	detectSaveImages bool
	detectOutputFile string
)

func newDetectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <image>...",
		Short: "Detect potholes in road photos",
		Long: `Send road photos to the detection service as one batch and report the
per-image pothole counts.

Examples:
  potholectl detect road1.jpg road2.jpg
  potholectl detect --save-images --output json photos/*.jpg
  potholectl detect --output-file report.md --output markdown road.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDetect,
	}

	cmd.Flags().DurationVar(&detectTimeout, "timeout", 0, "detection timeout (defaults to config)")
	cmd.Flags().BoolVar(&detectSaveImages, "save-images", false, "save annotated result images to the export directory")
	cmd.Flags().StringVar(&detectOutputFile, "output-file", "", "save report to file instead of stdout")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string) error {
	log := logger.New("cli", isVerbose)

	sess, err := newBackendSession(log)
	if err != nil {
		return err
	}

	images, err := loadImages(args)
	if err != nil {
		return err
	}
	sess.AddFromSelection(images)

	timeout := detectTimeout
	if timeout == 0 {
		timeout = GetGlobalConfig().Services.DetectTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	results, err := sess.Submit(ctx)
	if err != nil {
		return err
	}

	if err := writeReport(results, sess.TotalCount()); err != nil {
		return err
	}

	if detectSaveImages {
		paths, err := sess.ExportAllResults()
		if err != nil {
			return fmt.Errorf("failed to save annotated images: %w", err)
		}
		for _, path := range paths {
			fmt.Printf("Saved %s\n", path)
		}
	}

	return nil
}

// loadImages reads the named files, rejecting anything without an image
// extension before any bytes go over the wire
func loadImages(paths []string) ([]session.Image, error) {
	images := make([]session.Image, 0, len(paths))

	for _, path := range paths {
		if !watcher.IsImageFile(path) {
			return nil, fmt.Errorf("not a supported image file: %s", path)
		}

		data, err := os.ReadFile(path) // #nosec G304 - user-supplied input file
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		images = append(images, session.Image{Name: filepath.Base(path), Data: data})
	}

	return images, nil
}

// writeReport formats detection results and writes them to stdout or a file
func writeReport(results []session.Result, totalCount int) error {
	f, err := formatter.New(getOutputFormat(), colorEnabled())
	if err != nil {
		return err
	}

	report := formatter.NewReport(results, totalCount)
	out, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	if detectOutputFile != "" {
		if err := os.WriteFile(detectOutputFile, out, 0o600); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
		fmt.Printf("Report saved to %s\n", detectOutputFile)
		return nil
	}

	fmt.Print(string(out))
	return nil
}
