package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/bazaar/internal/analysis"
	"github.com/five82/bazaar/internal/app"
	"github.com/five82/bazaar/internal/report"
)

func newReportCommand(rt *runtime) *cobra.Command {
	var item string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Load every panel once and print text tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, res, err := collect(cmd, rt, item)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			snap := d.Store.Snapshot()
			if err := report.WriteText(w, snap); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if res.Item == "" {
				return nil
			}
			if err := report.WriteAnalysis(w, snap, res); err != nil {
				return fmt.Errorf("write analysis: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&item, "item", "", "also analyze this item")
	return cmd
}

func newExportCommand(rt *runtime) *cobra.Command {
	var (
		out  string
		item string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Load every panel once and write an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(out) == "" {
				return errors.New("--out is required")
			}
			d, res, err := collect(cmd, rt, item)
			if err != nil {
				return err
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			w := bufio.NewWriter(file)
			if err := report.WriteWorkbook(w, d.Store.Snapshot(), res); err != nil {
				_ = file.Close()
				return err
			}
			if err := w.Flush(); err != nil {
				_ = file.Close()
				return fmt.Errorf("write %s: %w", out, err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
			rt.logger.Info("workbook exported", "path", out, "item", item)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "workbook path (.xlsx)")
	cmd.Flags().StringVar(&item, "item", "", "also analyze this item")
	return cmd
}

func newFetchPricesCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-prices",
		Short: "Ask the server to re-fetch market prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := rt.dashboard()
			if err != nil {
				return err
			}
			outcome := d.TriggerRefresh(cmd.Context())
			if !outcome.OK {
				return errors.New(outcome.Message)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			return err
		},
	}
}

// collect loads every panel and, when item is set, analyzes it.
func collect(cmd *cobra.Command, rt *runtime, item string) (*app.Dashboard, analysis.Result, error) {
	d, err := rt.dashboard()
	if err != nil {
		return nil, analysis.Result{}, err
	}
	ctx := cmd.Context()
	d.LoadPanels(ctx)
	if strings.TrimSpace(item) == "" {
		return d, analysis.Result{}, nil
	}
	d.Analysis.Analyze(ctx, item)
	return d, d.Analysis.Last(), nil
}
