package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lectern/internal/deps"
	"lectern/internal/journal"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report external tool availability and journal statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([]table.Row, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, table.Row{
					status.Name,
					status.Command,
					yesNo(status.Available),
					yesNo(status.Optional),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				table.Row{"Tool", "Command", "Available", "Optional", "Detail"},
				rows,
			))

			store, err := journal.Open(cfg.Paths.LogDir)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			counts, err := store.Counts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, renderTable(
				table.Row{"Journal", "Rows"},
				[]table.Row{
					{"completed", strconv.Itoa(counts.Completed)},
					{"failed", strconv.Itoa(counts.Failed)},
				},
				2,
			))
			return nil
		},
	}
}
