package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lotflow/internal/daemon"
)

func newLocationsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the location catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				rows := make([][]string, 0, len(services.Registry.List()))
				for _, loc := range services.Registry.List() {
					capacity := "-"
					if loc.Capacity > 0 {
						capacity = strconv.Itoa(loc.Capacity)
					}
					rows = append(rows, []string{loc.ID, loc.Name, string(loc.Type), capacity})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name", "Type", "Capacity"},
					rows,
					3,
				))
				return nil
			})
		},
	}
}
