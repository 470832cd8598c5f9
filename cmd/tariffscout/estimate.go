package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tariffscout/internal/calc"
	"tariffscout/internal/format"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [monthly-bill]",
	Short: "Estimate savings from a monthly bill figure",
	Long: `For households without a smart meter: projects yearly savings for
every plan from a single VAT-inclusive monthly bill amount, and reports
whether installing a smart meter would pay for itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	bill, err := strconv.ParseFloat(args[0], 64)
	if err != nil || bill <= 0 {
		return fmt.Errorf("monthly bill must be a positive number, got %q", args[0])
	}

	cat := openCatalog().Catalog()
	est := calc.EstimateFromMonthlyBill(cat, bill)

	fmt.Printf("Monthly bill: %s  (yearly %s, ~%s)\n\n",
		format.NIS(est.MonthlyBill), format.NIS(est.YearlyCost), format.Kwh(est.YearlyKwh))

	fmt.Println("Plans available without a smart meter:")
	for i, f := range est.FixedPlans {
		line := fmt.Sprintf("  %2d. %s / %s: save %s/yr", i+1, f.Plan.Provider, f.Plan.PlanName, format.NIS(f.Savings))
		if f.MinSavings != nil && f.MaxSavings != nil {
			line = fmt.Sprintf("  %2d. %s / %s: save %s-%s/yr", i+1, f.Plan.Provider, f.Plan.PlanName,
				format.NIS(*f.MinSavings), format.NIS(*f.MaxSavings))
		}
		if f.SavingsCapped {
			line += " (capped)"
		}
		fmt.Println(line)
	}

	fmt.Println("\nPlans requiring a smart meter (assuming 35% of usage in discount hours):")
	for i, t := range est.TouPlans {
		fmt.Printf("  %2d. %s / %s: save ~%s/yr\n", i+1, t.Plan.Provider, t.Plan.PlanName, format.NIS(t.Savings))
	}

	if est.AdditionalSavingsWithSmartMeter > 0 {
		fmt.Printf("\nA smart meter could save an extra %s/yr", format.NIS(est.AdditionalSavingsWithSmartMeter))
		if est.MonthsToPayoff > 0 {
			fmt.Printf(" and would pay for itself in about %d months", est.MonthsToPayoff)
		}
		fmt.Println(".")
	}
	return nil
}
