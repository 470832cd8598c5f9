package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tariffscout/internal/calc"
	"tariffscout/internal/format"
	"tariffscout/internal/invoice"
)

var invoiceEstimate bool

var invoiceCmd = &cobra.Command{
	Use:   "invoice [pdf-file]",
	Short: "Extract the total from an electricity bill PDF",
	Long: `Reads an electricity invoice PDF, extracts the total amount and kWh
where present, and optionally feeds the monthly total straight into the
savings estimator.`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoice,
}

func init() {
	invoiceCmd.Flags().BoolVar(&invoiceEstimate, "estimate", false, "Run the savings estimator on the extracted total")
	rootCmd.AddCommand(invoiceCmd)
}

func runInvoice(cmd *cobra.Command, args []string) error {
	inv, err := invoice.ParseInvoicePDF(args[0])
	if err != nil {
		return fmt.Errorf("parsing invoice: %w", err)
	}

	if inv.InvoiceNumber != "" {
		fmt.Printf("Invoice:  %s\n", inv.InvoiceNumber)
	}
	fmt.Printf("Total:    %s\n", format.NIS(inv.TotalAmount))
	if inv.TotalKwh > 0 {
		fmt.Printf("Usage:    %s\n", format.Kwh(inv.TotalKwh))
	}

	if !invoiceEstimate {
		return nil
	}

	cat := openCatalog().Catalog()
	est := calc.EstimateFromMonthlyBill(cat, inv.TotalAmount)
	fmt.Println()
	if len(est.FixedPlans) > 0 {
		best := est.FixedPlans[0]
		fmt.Printf("Best without a smart meter: %s / %s, save %s/yr\n",
			best.Plan.Provider, best.Plan.PlanName, format.NIS(best.Savings))
	}
	if len(est.TouPlans) > 0 {
		best := est.TouPlans[0]
		fmt.Printf("Best with a smart meter:    %s / %s, save ~%s/yr\n",
			best.Plan.Provider, best.Plan.PlanName, format.NIS(best.Savings))
	}
	return nil
}
