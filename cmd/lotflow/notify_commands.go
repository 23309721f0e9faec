package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lotflow/internal/daemon"
)

func newNotificationsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show recent notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				notifications, err := services.Publisher.Recent(context.Background(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(notifications) == 0 {
					fmt.Fprintln(out, "No notifications recorded.")
					return nil
				}

				rows := make([][]string, 0, len(notifications))
				for _, n := range notifications {
					rows = append(rows, []string{
						formatTimestamp(n.CreatedAt),
						strconv.Itoa(n.Priority),
						string(n.Alert.Severity),
						n.Alert.Category,
						n.Alert.Title,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"When", "Pri", "Severity", "Category", "Title"},
					rows,
					1,
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum notifications to show")
	return cmd
}

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				if err := services.Publisher.Test(context.Background()); err != nil {
					return fmt.Errorf("test notification: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
				return nil
			})
		},
	}
}
