package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lectern/internal/journal"
	"lectern/internal/processor"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "process <csv>",
		Short: "Cut, filter, transcode, and tag every row of a collected CSV",
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

			store, err := journal.Open(cfg.Paths.LogDir)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			proc, err := processor.New(cfg,
				processor.WithLogger(logger),
				processor.WithJournal(store),
			)
			if err != nil {
				return err
			}

			summary, err := proc.Run(cmd.Context(), args[0], outputDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderRunSummary(summary))
			fmt.Fprintf(out, "%d completed, %d failed, %d already done\n",
				summary.Completed, summary.Failed, summary.Skipped)
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d row(s) failed", summary.Failed, len(summary.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Destination directory (default: the configured output directory)")
	return cmd
}

func renderRunSummary(summary processor.Summary) string {
	rows := make([]table.Row, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		detail := outcome.OutputPath
		if outcome.Err != nil {
			detail = outcome.Err.Error()
		} else if outcome.AlreadyDone {
			detail = outcome.OutputPath + " (already done)"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%02d", outcome.Track),
			outcome.Row.Title,
			string(outcome.Status),
			detail,
		})
	}
	return renderTable(table.Row{"Track", "Title", "Status", "Detail"}, rows, 1)
}
