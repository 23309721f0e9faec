package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lotflow/internal/daemon"
	"lotflow/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the environment and summarize the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				results := preflight.RunAll(context.Background(), services.Config, services.DB, services.Publisher)
				fmt.Fprintln(out, "Environment:")
				for _, result := range results {
					kind := "OK"
					color := ansiGreen
					if !result.Passed {
						kind = "FAIL"
						color = ansiRed
					}
					line := fmt.Sprintf("  [%-4s] %-16s %s", kind, result.Name, result.Detail)
					fmt.Fprintln(out, colorizeLine(line, color, colorize))
				}

				total, err := services.Store.CountEntries(context.Background())
				if err != nil {
					return err
				}
				records, err := services.Ledger.Count(context.Background())
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Tracked vehicles: %d\n", total)
				fmt.Fprintf(out, "Ledger records:   %d\n", records)
				fmt.Fprintf(out, "Database:         %s\n", services.DB.Path())
				return nil
			})
		},
	}
}
