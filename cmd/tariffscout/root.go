package main

import (
	"github.com/spf13/cobra"

	"tariffscout/internal/tariff"
)

var catalogPath string

var rootCmd = &cobra.Command{
	Use:   "tariffscout",
	Short: "Compare Israeli electricity plans against real usage data",
	Long: `TariffScout reads 15-minute smart-meter CSV exports, evaluates every
known electricity plan against the actual usage, and ranks the plans by
projected annual savings. Households without a smart meter can get a
rough estimate from a single monthly bill figure instead.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "plan catalog JSON file (default is the built-in catalog)")
}

// openCatalog returns the catalog store, honoring the --catalog flag.
func openCatalog() *tariff.Store {
	return tariff.NewStore(catalogPath)
}
