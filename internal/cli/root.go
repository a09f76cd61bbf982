// Package cli provides the command-line interface for bazaar.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/bazaar/internal/app"
	"github.com/five82/bazaar/internal/config"
	"github.com/five82/bazaar/internal/logging"
)

// BuildInfo is stamped at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// runtime is what every subcommand shares once flags are parsed.
type runtime struct {
	configPath string
	apiBase    string
	poll       int

	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
}

// Execute runs the bazaar command tree with ctx and releases the log file
// afterwards, including when the command failed.
func Execute(ctx context.Context, info BuildInfo) error {
	root, rt := newRootCommand(info)
	return runRoot(ctx, root, rt)
}

func runRoot(ctx context.Context, root *cobra.Command, rt *runtime) error {
	err := root.ExecuteContext(ctx)
	return errors.Join(err, rt.close())
}

// NewRootCommand creates the bazaar command tree. Running it with no
// subcommand starts the TUI.
func NewRootCommand(info BuildInfo) *cobra.Command {
	root, _ := newRootCommand(info)
	return root
}

func newRootCommand(info BuildInfo) (*cobra.Command, *runtime) {
	rt := &runtime{poll: -1}

	root := &cobra.Command{
		Use:   "bazaar",
		Short: "Market analytics dashboard for the Pax Dei advisor API",
		Long: `bazaar polls the advisor API for crafting, liquidity, and logistics data
and shows it as tables and charts in the terminal. Headless commands print
the same tables or export them to a workbook.`,
		Version: info.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return rt.load(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return rt.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, rt)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&rt.apiBase, "api", "", "advisor API base URL (overrides api_base)")
	root.PersistentFlags().IntVar(&rt.poll, "poll", -1, "panel reload interval in seconds, 0 disables (overrides poll_seconds)")

	root.AddCommand(
		newTUICommand(rt),
		newReportCommand(rt),
		newExportCommand(rt),
		newFetchPricesCommand(rt),
		newLogsCommand(rt),
		newVersionCommand(info),
	)
	return root, rt
}

// load reads the config file, applies flag overrides, and opens the log.
func (rt *runtime) load(cmd *cobra.Command) error {
	cfg, err := config.Load(rt.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("api") {
		cfg.APIBase = strings.TrimSpace(rt.apiBase)
	}
	if cmd.Flags().Changed("poll") {
		cfg.PollInterval = time.Duration(rt.poll) * time.Second
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	rt.cfg = cfg
	rt.logger = logger
	rt.closer = closer
	logger.Debug("config loaded", "api_base", cfg.APIBase, "poll", cfg.PollInterval)
	return nil
}

func (rt *runtime) close() error {
	if rt.closer == nil {
		return nil
	}
	err := rt.closer.Close()
	rt.closer = nil
	return err
}

// dashboard builds a dashboard for the loaded config.
func (rt *runtime) dashboard() (*app.Dashboard, error) {
	return app.Bootstrap(rt.cfg, rt.logger)
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "bazaar %s (commit %s, built %s)\n",
				orUnknown(info.Version), orUnknown(info.Commit), orUnknown(info.Date))
			return err
		},
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
