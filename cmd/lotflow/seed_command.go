package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lotflow/internal/collections"
	"lotflow/internal/daemon"
)

func newVehiclesSeedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample vehicles into the location collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(services *daemon.Services) error {
				now := time.Now().UTC()
				for key, vehicles := range seedFixtures(now) {
					if err := services.Collections.SaveVehicles(context.Background(), key, vehicles); err != nil {
						return fmt.Errorf("seed %s: %w", key, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d vehicles into %s\n", len(vehicles), key)
				}
				return nil
			})
		},
	}
}

// seedFixtures covers each attention source: a garage with parts and battery
// problems, showroom floors with PDI gaps, and an inventory with an overdue
// service.
func seedFixtures(now time.Time) map[string][]collections.Vehicle {
	daysAgo := func(days int) *time.Time {
		ts := now.AddDate(0, 0, -days)
		return &ts
	}
	daysAhead := func(days int) *time.Time {
		ts := now.AddDate(0, 0, days)
		return &ts
	}
	intPtr := func(v int) *int { return &v }
	boolPtr := func(v bool) *bool { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	return map[string][]collections.Vehicle{
		collections.KeyGarage: {
			{
				ID: "VIN-1001", Model: "Falcon EV", Location: "repair_garage",
				Status: "waiting_parts", EngineType: "ev", BatteryLevel: intPtr(64),
				AssignedTo: "mechanic-1", EstimatedHours: floatPtr(3.5),
				ArrivedAt: daysAgo(9), UpdatedAt: daysAgo(9),
			},
			{
				ID: "VIN-1002", Model: "Swift REV", Location: "repair_garage",
				Status: "in_repair", EngineType: "rev", BatteryLevel: intPtr(15),
				AssignedTo: "mechanic-2", EstimatedHours: floatPtr(1.0),
				ArrivedAt: daysAgo(2), UpdatedAt: daysAgo(1),
			},
		},
		collections.KeyShowroomFloor1: {
			{
				ID: "VIN-2001", Model: "Falcon EV", Location: "showroom_floor_1",
				Status: "on_display", EngineType: "ev", BatteryLevel: intPtr(82),
				PDIStatus: "incomplete", CustomsPaid: boolPtr(true),
				CustomerPriority: "high", ArrivedAt: daysAgo(5), UpdatedAt: daysAgo(4),
				DeliveryDate: daysAhead(6),
			},
		},
		collections.KeyShowroomFloor2: {
			{
				ID: "VIN-2002", Model: "Comet GT", Location: "showroom_floor_2",
				Status: "on_display", EngineType: "ice",
				PDIStatus: "completed", CustomsPaid: boolPtr(false),
				ArrivedAt: daysAgo(12), UpdatedAt: daysAgo(12),
				DeliveryDate: daysAhead(20),
			},
		},
		collections.KeyMainInventory: {
			{
				ID: "VIN-3001", Model: "Comet GT", Location: "main_inventory",
				Status: "in_stock", EngineType: "ice",
				ArrivedAt: daysAgo(60), UpdatedAt: daysAgo(40),
				NextServiceDate: daysAgo(35),
			},
			{
				ID: "VIN-3002", Model: "Swift REV", Location: "main_inventory",
				Status: "in_stock", EngineType: "rev", BatteryLevel: intPtr(71),
				ArrivedAt: daysAgo(10), UpdatedAt: daysAgo(10),
				NextServiceDate: daysAhead(30),
			},
		},
	}
}
