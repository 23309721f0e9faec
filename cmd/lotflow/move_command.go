package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lotflow/internal/daemon"
	"lotflow/internal/movement"
	"lotflow/internal/workflow"
)

func newMoveCommand(ctx *commandContext) *cobra.Command {
	var (
		model      string
		from       string
		to         string
		fromStatus string
		toStatus   string
		reason     string
		movedBy    string
		notes      string
		parts      []string
		tools      []string
	)

	cmd := &cobra.Command{
		Use:   "move <vehicle-id>",
		Short: "Record a vehicle transition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedReason, ok := movement.ParseReason(reason)
			if !ok {
				return fmt.Errorf("unknown reason %q (known: %s)", reason, reasonList())
			}

			return ctx.withServices(func(services *daemon.Services) error {
				req := workflow.MoveRequest{
					VehicleID:    args[0],
					Model:        model,
					FromLocation: from,
					ToLocation:   to,
					FromStatus:   fromStatus,
					ToStatus:     toStatus,
					Reason:       parsedReason,
					MovedBy:      movedBy,
					Notes:        notes,
					PartsUsed:    parts,
					ToolsUsed:    tools,
				}
				if !services.Workflow.MoveCar(context.Background(), req) {
					return errors.New("move was not recorded")
				}

				entry, err := services.Store.GetEntry(context.Background(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Moved %s to %s (%s)\n", args[0], displayName(to), orDash(toStatus))
				if entry != nil {
					fmt.Fprintf(out, "Stage: %s\n", entry.Stage().Title())
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Vehicle model (required on first move)")
	cmd.Flags().StringVar(&from, "from", "", "Source location")
	cmd.Flags().StringVar(&to, "to", "", "Destination location (required)")
	cmd.Flags().StringVar(&fromStatus, "from-status", "", "Status before the move")
	cmd.Flags().StringVar(&toStatus, "to-status", "", "Status after the move")
	cmd.Flags().StringVar(&reason, "reason", string(movement.ReasonArrival), "Reason code for the move")
	cmd.Flags().StringVar(&movedBy, "by", "", "Operator recording the move (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringSliceVar(&parts, "part", nil, "Part consumed by the move (repeatable)")
	cmd.Flags().StringSliceVar(&tools, "tool", nil, "Tool used by the move (repeatable)")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func reasonList() string {
	reasons := movement.AllReasons()
	names := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		names = append(names, string(reason))
	}
	return strings.Join(names, ", ")
}
