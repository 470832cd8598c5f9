package calc

import (
	"math"
	"sort"

	"tariffscout/internal/tariff"
	"tariffscout/internal/usage"
)

// ResultBreakdown echoes the aggregation buckets with VAT-inclusive costs.
type ResultBreakdown struct {
	DiscountedUsageKwh float64 `json:"discountedUsageKwh"`
	DiscountedCost     float64 `json:"discountedCost"`
	DiscountedSavings  float64 `json:"discountedSavings"`
	RegularUsageKwh    float64 `json:"regularUsageKwh"`
	RegularCost        float64 `json:"regularCost"`
}

// PlanResult is the evaluation of one plan over one data set. Results are
// recomputed from scratch on every run and never partially updated.
type PlanResult struct {
	Plan          *tariff.Plan `json:"plan"`
	TotalUsageKwh float64      `json:"totalUsageKwh"`
	// BaselineCost is the VAT-inclusive cost at the standard rate with no
	// discount; identical across plans for a given data set.
	BaselineCost    float64         `json:"baselineCost"`
	DiscountedCost  float64         `json:"discountedCost"`
	Savings         float64         `json:"savings"`
	SavingsPercent  float64         `json:"savingsPercent"`
	SavingsCapped   bool            `json:"savingsCapped"`
	UncappedSavings float64         `json:"uncappedSavings,omitempty"`
	Breakdown       ResultBreakdown `json:"breakdown"`
}

// MonthsSpanned returns the calendar-month difference between the data
// bounds, floored at one. Used only to scale monthly savings caps.
func MonthsSpanned(start, end usage.Date) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 1 {
		return 1
	}
	return months
}

// DaysObserved returns the ceiling day count between the data bounds.
func DaysObserved(start, end usage.Date) int {
	return int(math.Ceil(end.Sub(start.Time).Hours() / 24))
}

// PlanResultFor evaluates a single plan.
func PlanResultFor(p *tariff.Plan, data *usage.ParsedUsageData, cat *tariff.Catalog, numMonths int) PlanResult {
	b := UsageBreakdown(data.Records, p, cat.BaseRate)
	vat := cat.VATMultiplier()

	baselineCost := data.TotalKwh * cat.BaseRate * vat
	savings := b.DiscountedSavings * vat // VAT applies to savings symmetrically

	var (
		savingsCapped   bool
		uncappedSavings float64
	)
	// Monthly caps are advertised VAT-inclusive, so the cap compares against
	// the VAT-inclusive savings.
	if p.MaxMonthlySavings > 0 {
		maxTotalSavings := p.MaxMonthlySavings * float64(numMonths)
		if savings > maxTotalSavings {
			uncappedSavings = savings
			savings = maxTotalSavings
			savingsCapped = true
		}
	}

	discountedCost := baselineCost - savings
	savingsPercent := 0.0
	if baselineCost > 0 {
		savingsPercent = savings / baselineCost * 100
	}

	return PlanResult{
		Plan:            p,
		TotalUsageKwh:   data.TotalKwh,
		BaselineCost:    baselineCost,
		DiscountedCost:  discountedCost,
		Savings:         savings,
		SavingsPercent:  savingsPercent,
		SavingsCapped:   savingsCapped,
		UncappedSavings: uncappedSavings,
		Breakdown: ResultBreakdown{
			DiscountedUsageKwh: b.DiscountedKwh,
			DiscountedCost:     (b.DiscountedKwh*cat.BaseRate - b.DiscountedSavings) * vat,
			DiscountedSavings:  b.DiscountedSavings * vat,
			RegularUsageKwh:    b.RegularKwh,
			RegularCost:        b.RegularKwh * cat.BaseRate * vat,
		},
	}
}

// CalculateAllPlans evaluates every catalog plan over the data set and
// returns the results sorted by savings, highest first. The sort is stable
// so equal savings keep catalog order, making reruns deterministic.
func CalculateAllPlans(data *usage.ParsedUsageData, cat *tariff.Catalog) []PlanResult {
	numMonths := MonthsSpanned(data.StartDate, data.EndDate)

	results := make([]PlanResult, 0, len(cat.Plans))
	for i := range cat.Plans {
		results = append(results, PlanResultFor(&cat.Plans[i], data, cat, numMonths))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Savings > results[j].Savings
	})
	return results
}

// ExtrapolateToAnnual scales a partial-year observation to a full-year
// estimate. Data covering 365 days or more is returned unchanged. Percent,
// the capped flag, and the uncapped value are intentionally left as
// computed pre-extrapolation.
func ExtrapolateToAnnual(results []PlanResult, start, end usage.Date) []PlanResult {
	days := DaysObserved(start, end)
	if days >= 365 || days <= 0 {
		return results
	}
	multiplier := 365 / float64(days)

	out := make([]PlanResult, len(results))
	for i, r := range results {
		scaled := r
		scaled.TotalUsageKwh = r.TotalUsageKwh * multiplier
		scaled.BaselineCost = r.BaselineCost * multiplier
		scaled.DiscountedCost = r.DiscountedCost * multiplier
		scaled.Savings = r.Savings * multiplier
		scaled.Breakdown = ResultBreakdown{
			DiscountedUsageKwh: r.Breakdown.DiscountedUsageKwh * multiplier,
			DiscountedCost:     r.Breakdown.DiscountedCost * multiplier,
			DiscountedSavings:  r.Breakdown.DiscountedSavings * multiplier,
			RegularUsageKwh:    r.Breakdown.RegularUsageKwh * multiplier,
			RegularCost:        r.Breakdown.RegularCost * multiplier,
		}
		out[i] = scaled
	}
	return out
}
