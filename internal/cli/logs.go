package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/bazaar/internal/logtail"
)

func newLogsCommand(rt *runtime) *cobra.Command {
	var (
		lines int
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the bazaar log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := logtail.Tail(rt.cfg.LogFile, lines)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "No log entries in %s\n", rt.cfg.LogFile)
				return err
			}
			styles := logtail.DefaultStyles()
			if plain {
				styles = logtail.Styles{}
			}
			for _, line := range logtail.RenderAll(records, styles) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of records to show, 0 for all")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}
