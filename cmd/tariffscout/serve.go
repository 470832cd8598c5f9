package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"tariffscout/internal/api"
	"tariffscout/internal/config"
	"tariffscout/internal/cron"
	"tariffscout/internal/migrate"
	"tariffscout/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Starts the HTTP server exposing the comparison API, Prometheus
metrics, and health endpoints. Configuration comes from config.yml or
TARIFFSCOUT_* environment variables.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()

	if cfg.AutoMigrate {
		if err := migrate.Up(ctx, cfg.Storage.Driver, cfg.Storage.DSN); err != nil {
			log.Printf("auto-migration failed: %v", err)
		}
	}

	st, err := storage.Open(ctx, storage.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
	if err != nil {
		log.Printf("storage.Open failed (driver=%s): %v; falling back to in-memory", cfg.Storage.Driver, err)
		st = storage.NewMemory()
	}
	defer st.Close()

	if catalogPath == "" {
		catalogPath = cfg.Catalog.Path
	}
	catalog := openCatalog()

	// Scalar rate overrides are pinned on the store so catalog reloads
	// keep honoring them.
	if cfg.Catalog.BaseRate > 0 || cfg.Catalog.VATRate > 0 {
		catalog.SetRateOverrides(cfg.Catalog.BaseRate, cfg.Catalog.VATRate)
	}

	worker := cron.NewWorker(st, catalog, cfg.Cron.RetentionDays)
	go func() {
		if err := worker.Run(ctx, cfg.Cron.IntervalSeconds); err != nil && err != context.Canceled {
			log.Printf("cron worker stopped: %v", err)
		}
	}()

	mux := api.NewMux(catalog, st)

	addr := net.JoinHostPort(cfg.Listen.BindIP, cfg.Listen.Port)
	log.Printf("tariffscout listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
