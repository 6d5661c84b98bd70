/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/friendsincode/orderboard/internal/board"
	"github.com/friendsincode/orderboard/internal/db"
	"github.com/friendsincode/orderboard/internal/events"
	"github.com/friendsincode/orderboard/internal/seed"
	"github.com/friendsincode/orderboard/internal/storage"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the board to the seed dataset",
	Long: `Reset Orderboard to a fresh state.

This command discards all persisted work orders and work centers and
re-seeds the board. When ORDERBOARD_SEED_FILE is set, that file supplies
the dataset; otherwise the bundled sample data is used.

WARNING: This action is irreversible! All scheduled work orders are lost.

Examples:
  # Interactive reset (will prompt for confirmation)
  orderboard reset

  # Force reset without confirmation
  orderboard reset --force
`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	if !resetForce {
		fmt.Println()
		fmt.Println("WARNING: this will DELETE ALL work orders and work centers")
		fmt.Println("and replace them with the seed dataset. This cannot be undone.")
		fmt.Println()
		fmt.Print("Type 'yes' to confirm reset: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(strings.ToLower(response)) != "yes" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	logger.Info().Msg("Starting board reset")

	database, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	centers := seed.Centers()
	orders := seed.Orders(time.Now())
	if cfg.SeedFile != "" {
		centers, orders, err = seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("load seed file: %w", err)
		}
	}

	kv := storage.NewGormKV(database)
	// Blank values read as absent, so the store falls back to the seed
	// collections and persists them on construction.
	if err := kv.Save(board.KeyWorkOrders, ""); err != nil {
		return fmt.Errorf("clear work orders: %w", err)
	}
	if err := kv.Save(board.KeyWorkCenters, ""); err != nil {
		return fmt.Errorf("clear work centers: %w", err)
	}

	bus := events.NewBus()
	store := board.New(kv, centers, orders, bus, logger)
	bus.Publish(events.EventBoardReset, events.Payload{
		"work_centers": len(store.ListWorkCenters()),
		"work_orders":  len(store.ListWorkOrders()),
	})

	logger.Info().
		Int("work_centers", len(store.ListWorkCenters())).
		Int("work_orders", len(store.ListWorkOrders())).
		Msg("Board reset complete")
	return nil
}
