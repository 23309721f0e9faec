package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lotflow/internal/daemon"
	"lotflow/internal/stage"
)

func newAnalyticsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show workflow aggregates and bottlenecks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				snapshot := services.Analytics.Snapshot(context.Background())
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				fmt.Fprintf(out, "Total vehicles:   %d\n", snapshot.TotalCars)
				fmt.Fprintf(out, "Need attention:   %d\n", snapshot.CarsNeedingAttention)
				fmt.Fprintln(out)

				bottlenecked := make(map[stage.Stage]struct{}, len(snapshot.Bottlenecks))
				for _, st := range snapshot.Bottlenecks {
					bottlenecked[st] = struct{}{}
				}

				rows := make([][]string, 0, len(stage.All()))
				for _, st := range stage.All() {
					count := snapshot.StageDistribution[st]
					if count == 0 && snapshot.AvgTimeInStages[st] == 0 {
						continue
					}
					flag := ""
					if _, ok := bottlenecked[st]; ok {
						flag = colorizeLine("BOTTLENECK", ansiRed, colorize)
					}
					rows = append(rows, []string{
						st.Title(),
						strconv.Itoa(count),
						formatDuration(snapshot.AvgTimeInStages[st]),
						flag,
					})
				}
				if len(rows) == 0 {
					fmt.Fprintln(out, "No stage data yet.")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Stage", "Vehicles", "Avg Dwell", ""},
					rows,
					1, 2,
				))
				return nil
			})
		},
	}
}
