package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lectern/internal/collector"
)

func newCollectCommand(ctx *commandContext) *cobra.Command {
	var outputCSV string

	cmd := &cobra.Command{
		Use:   "collect <directory>",
		Short: "Interactively gather titles, speakers, and cut points into a CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			operator, err := collector.NewReadlineOperator()
			if err != nil {
				return err
			}
			defer operator.Close()

			c, err := collector.New(cfg, operator, collector.WithLogger(logger))
			if err != nil {
				return err
			}

			summary, err := c.Run(cmd.Context(), args[0], outputCSV)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Interrupted {
				fmt.Fprintln(out, "Session closed early; everything already confirmed was kept.")
			}
			fmt.Fprintf(out, "Appended %d row(s) for %q to %s (%d file(s) seen, %d skipped)\n",
				summary.RowsAppended, summary.EventName, summary.CSVPath,
				summary.FilesSeen, summary.FilesSkipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputCSV, "output-csv", "", "Destination CSV (default: derived from the event name inside the directory)")
	return cmd
}
