package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tariffscout/internal/config"
	"tariffscout/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status]",
	Short: "Run database schema migrations",
	Args:  cobra.ExactArgs(1),
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := cmd.Context()
	switch args[0] {
	case "up":
		return migrate.Up(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	case "down":
		return migrate.Down(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	case "status":
		return migrate.Status(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	default:
		return fmt.Errorf("unknown migrate action %q (use up, down, or status)", args[0])
	}
}
