package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lotflow/internal/daemon"
	"lotflow/internal/workflow"
)

func newVehiclesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List tracked vehicles and their stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				entries, err := services.Store.ListEntries(context.Background())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No vehicles tracked yet.")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						entry.VehicleID,
						entry.Model,
						displayName(entry.CurrentLocation),
						orDash(entry.CurrentStatus),
						entry.Stage().Title(),
						string(entry.Priority),
						formatTimestamp(entry.LastUpdate),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Vehicle", "Model", "Location", "Status", "Stage", "Priority", "Updated"},
					rows,
				))
				return nil
			})
		},
	}

	cmd.AddCommand(newVehiclesSeedCommand(ctx))
	cmd.AddCommand(newVehiclesPriorityCommand(ctx))
	return cmd
}

func newVehiclesPriorityCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <vehicle-id> <low|medium|high>",
		Short: "Set the tracking priority of a vehicle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority, ok := workflow.ParsePriority(args[1])
			if !ok {
				return fmt.Errorf("unknown priority %q (valid: low, medium, high)", args[1])
			}
			return ctx.withServices(func(services *daemon.Services) error {
				if err := services.Store.SetPriority(context.Background(), args[0], priority); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Priority of %s set to %s.\n", args[0], priority)
				return nil
			})
		},
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var afterSeq int64
	var limit int

	cmd := &cobra.Command{
		Use:   "history <vehicle-id>",
		Short: "Show the movement history of a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				records, err := services.Store.History(context.Background(), args[0], afterSeq, limit)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No movement records for %s.\n", args[0])
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{
						fmt.Sprintf("%d", rec.Seq),
						formatTimestamp(rec.Timestamp),
						orDash(displayName(rec.FromLocation)),
						displayName(rec.ToLocation),
						orDash(rec.ToStatus),
						string(rec.Reason),
						rec.MovedBy,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "When", "From", "To", "Status", "Reason", "By"},
					rows,
					0,
				))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&afterSeq, "after", 0, "Only show records after this sequence number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records (0 for all)")

	return cmd
}
