package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lotflow/internal/attention"
	"lotflow/internal/collections"
	"lotflow/internal/daemon"
)

func newAttentionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "attention",
		Short: "List vehicles needing attention, most urgent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				items := services.Attention.List(context.Background())
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "No vehicles need attention.")
					return nil
				}

				colorize := shouldColorize(out)
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						priorityLabel(item.Priority, colorize),
						item.VehicleID,
						item.Model,
						displayName(item.Location),
						string(item.Type),
						strconv.Itoa(item.DaysWaiting),
						item.Description,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Priority", "Vehicle", "Model", "Location", "Issue", "Days", "Detail"},
					rows,
					5,
				))
				return nil
			})
		},
	}
}

func newReadinessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "readiness <vehicle-id>",
		Short: "Show the delivery readiness score for a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				vehicle, found, err := findVehicle(context.Background(), services, args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("vehicle %s not found in any collection", args[0])
				}

				report := attention.Readiness(vehicle, time.Now().UTC())
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Vehicle:  %s (%s)\n", vehicle.ID, vehicle.Model)
				fmt.Fprintf(out, "Score:    %d/100\n", report.Score)
				fmt.Fprintf(out, "Delivery: %s\n", string(report.Outlook))
				if len(report.Issues) == 0 {
					fmt.Fprintln(out, "No outstanding issues.")
					return nil
				}
				fmt.Fprintln(out, "Issues:")
				for _, issue := range report.Issues {
					fmt.Fprintf(out, "  -%d %s\n", issue.Points, issue.Message)
				}
				return nil
			})
		},
	}
}

func findVehicle(ctx context.Context, services *daemon.Services, vehicleID string) (collections.Vehicle, bool, error) {
	for _, key := range collections.Keys() {
		vehicles, err := services.Collections.Vehicles(ctx, key)
		if err != nil {
			return collections.Vehicle{}, false, err
		}
		for _, vehicle := range vehicles {
			if vehicle.ID == vehicleID {
				return vehicle, true, nil
			}
		}
	}
	return collections.Vehicle{}, false, nil
}

func priorityLabel(priority attention.Priority, colorize bool) string {
	label := strings.ToUpper(string(priority))
	switch priority {
	case attention.PriorityUrgent:
		return colorizeLine(label, ansiRed, colorize)
	case attention.PriorityHigh:
		return colorizeLine(label, ansiYellow, colorize)
	default:
		return label
	}
}
