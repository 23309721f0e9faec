package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"lotflow/internal/daemon"
)

func newCostsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "costs <vehicle-id>",
		Short: "Show the cost ledger for a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				entries, err := services.Costs.ByVehicle(context.Background(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(out, "No cost entries for %s.\n", args[0])
					return nil
				}

				total := decimal.Zero
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						formatTimestamp(entry.CreatedAt),
						orDash(entry.FromStatus) + " -> " + orDash(entry.ToStatus),
						entry.Actor,
						strconv.Itoa(len(entry.LineItems)),
						entry.Amount.StringFixed(2),
					})
					total = total.Add(entry.Amount)
				}
				fmt.Fprintln(out, renderTable(
					[]string{"When", "Transition", "Actor", "Items", "Amount"},
					rows,
					3, 4,
				))
				fmt.Fprintf(out, "Total: %s\n", total.StringFixed(2))
				return nil
			})
		},
	}
}
