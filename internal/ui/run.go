package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roadwatch/potholectl/internal/config"
	"github.com/roadwatch/potholectl/internal/logger"
	"github.com/roadwatch/potholectl/internal/session"
	"github.com/roadwatch/potholectl/internal/watcher"
)

// Run starts the interactive UI around an already-staged session. When the
// drop folder is enabled in config, a watcher feeds images into the session
// for as long as the UI runs.
func Run(sess *session.Session, cfg *config.Config, log *logger.Logger) error {
	var drops <-chan session.Image

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Watch.Enabled {
		w, err := watcher.New(cfg.Watch.Dir, log.WithComponent("watcher"))
		if err != nil {
			return err
		}
		drops = w.Images()

		go func() {
			if err := w.Run(ctx); err != nil {
				log.Warn("drop folder watcher stopped", logger.Err(err))
			}
		}()
	}

	model := NewModel(sess, cfg, drops)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
