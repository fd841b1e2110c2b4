package cli

import (
	"github.com/spf13/cobra"

	"github.com/roadwatch/potholectl/internal/logger"
	"github.com/roadwatch/potholectl/internal/ui"
)

func newUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [image]...",
		Short: "Interactive reporting workflow",
		Long: `Launch the interactive terminal UI. Images passed as arguments are staged
for detection; with the drop folder enabled in config, files copied into the
watched directory are staged automatically while the UI runs.

Examples:
  potholectl ui
  potholectl ui photos/*.jpg`,
		RunE: runUI,
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	log := logger.New("ui", isVerbose)

	sess, err := newBackendSession(log)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		images, err := loadImages(args)
		if err != nil {
			return err
		}
		sess.AddFromSelection(images)
	}

	return ui.Run(sess, GetGlobalConfig(), log)
}
