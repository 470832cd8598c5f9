package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tariffscout/internal/calc"
	"tariffscout/internal/format"
	"tariffscout/internal/usage"
)

var analyzeTop int

var analyzeCmd = &cobra.Command{
	Use:   "analyze [csv-file]",
	Short: "Rank plans against a smart-meter CSV export",
	Long: `Parses a 15-minute interval CSV export from the utility's site,
evaluates every plan in the catalog against the actual usage, and prints
the plans ranked by projected annual savings.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "Show only the top N plans (0 = all)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading usage file: %w", err)
	}

	data, err := usage.ParseUsageCSV(string(raw))
	if err != nil {
		return fmt.Errorf("parsing usage file: %w", err)
	}
	if err := usage.ValidateUsageData(data); err != nil {
		return fmt.Errorf("validating usage data: %w", err)
	}

	cat := openCatalog().Catalog()
	results := calc.CalculateAllPlans(data, cat)
	annual := calc.ExtrapolateToAnnual(results, data.StartDate, data.EndDate)

	days := calc.DaysObserved(data.StartDate, data.EndDate)

	if data.CustomerName != "" {
		fmt.Printf("Customer: %s\n", data.CustomerName)
	}
	fmt.Printf("Period:   %s to %s (%d days, %d records)\n",
		data.StartDate.Format("02/01/2006"), data.EndDate.Format("02/01/2006"), days, len(data.Records))
	fmt.Printf("Usage:    %s\n", format.Kwh(data.TotalKwh))
	if days < 365 {
		fmt.Printf("Costs extrapolated to a full year from %d observed days.\n", days)
	}
	fmt.Println()

	fmt.Printf("%-4s %-28s %-30s %12s %12s %8s\n", "#", "Provider", "Plan", "Annual cost", "Savings", "%")
	fmt.Println("--------------------------------------------------------------------------------------------------")

	shown := annual
	if analyzeTop > 0 && analyzeTop < len(shown) {
		shown = shown[:analyzeTop]
	}
	for i, r := range shown {
		capped := ""
		if r.SavingsCapped {
			capped = "*"
		}
		fmt.Printf("%-4d %-28s %-30s %12s %11s%s %8s\n",
			i+1, r.Plan.Provider, r.Plan.PlanName,
			format.NIS(r.DiscountedCost), format.NIS(r.Savings), capped,
			format.Percent(r.SavingsPercent))
	}
	if anyCapped(shown) {
		fmt.Println("\n* savings limited by the plan's monthly cap")
	}
	return nil
}

func anyCapped(results []calc.PlanResult) bool {
	for _, r := range results {
		if r.SavingsCapped {
			return true
		}
	}
	return false
}
