package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"tariffscout/internal/format"
	"tariffscout/internal/tariff"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List the plans in the catalog",
	RunE:  runPlans,
}

func init() {
	rootCmd.AddCommand(plansCmd)
}

func runPlans(cmd *cobra.Command, args []string) error {
	cat := openCatalog().Catalog()
	fmt.Printf("Catalog updated %s, base rate %.4f NIS/kWh, VAT %.0f%%\n\n",
		cat.LastUpdated, cat.BaseRate, cat.VATRate*100)

	for _, p := range cat.Plans {
		meter := ""
		if p.RequiresSmartMeter {
			meter = " [smart meter]"
		}
		fmt.Printf("%-24s %s / %s%s\n", p.ID, p.Provider, p.PlanName, meter)
		switch p.Shape() {
		case tariff.PlanBillTiered:
			for _, t := range p.BillBasedTiers {
				if math.IsInf(t.MaxBill, 1) {
					fmt.Printf("    above that: %s off\n", format.Percent(t.Discount*100))
				} else {
					fmt.Printf("    up to %s/month: %s off\n", format.NIS(t.MaxBill), format.Percent(t.Discount*100))
				}
			}
		default:
			for _, w := range p.DiscountWindows {
				if w.StartHour == 0 && w.EndHour == 24 {
					fmt.Printf("    all hours: %s off\n", format.Percent(w.Discount*100))
				} else {
					fmt.Printf("    %02d:00-%02d:00 on days %v: %s off\n", w.StartHour, w.EndHour, w.Days, format.Percent(w.Discount*100))
				}
			}
		}
		if p.MaxMonthlySavings > 0 {
			fmt.Printf("    monthly savings cap: %s\n", format.NIS(p.MaxMonthlySavings))
		}
	}
	return nil
}
