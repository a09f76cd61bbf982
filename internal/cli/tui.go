package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/five82/bazaar/internal/app"
	"github.com/five82/bazaar/internal/prefs"
	"github.com/five82/bazaar/internal/ui"
)

func newTUICommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, rt)
		},
	}
}

func runTUI(cmd *cobra.Command, rt *runtime) error {
	ctx := cmd.Context()
	d, err := rt.dashboard()
	if err != nil {
		return err
	}

	prefsPath := prefs.DefaultPath()
	p, err := prefs.Load(prefsPath)
	if err != nil {
		rt.logger.Warn("load preferences failed", "path", prefsPath, "error", err)
	}

	app.StartPoller(ctx, d, rt.cfg.PollInterval)
	rt.logger.Info("dashboard started", "api_base", rt.cfg.APIBase, "theme", p.Theme)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Dashboard: d,
		ThemeName: p.Theme,
		PrefsPath: prefsPath,
		Logger:    rt.logger,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
