package calc

import (
	"fmt"
	"sort"

	"tariffscout/internal/tariff"
	"tariffscout/internal/usage"
)

// Breakdown splits a record set's usage into discounted and regular buckets
// for one plan, all pre-VAT. DiscountedKwh + RegularKwh always equals the
// record sum.
type Breakdown struct {
	DiscountedKwh     float64
	DiscountedSavings float64
	RegularKwh        float64
	TotalKwh          float64
}

// UsageBreakdown aggregates the full record sequence under one plan,
// dispatching on the plan's shape.
func UsageBreakdown(records []usage.UsageRecord, p *tariff.Plan, baseRate float64) Breakdown {
	if p.Shape() == tariff.PlanBillTiered {
		return billTieredBreakdown(records, p, baseRate)
	}
	return windowBreakdown(records, p, baseRate)
}

// windowBreakdown evaluates each record against the plan's windows. A
// discount of exactly zero buckets the usage as regular even when a window
// matched; this mirrors how suppliers advertise "no discount" hours.
func windowBreakdown(records []usage.UsageRecord, p *tariff.Plan, baseRate float64) Breakdown {
	var b Breakdown
	for _, rec := range records {
		discount := tariff.DiscountForRecord(rec, p)
		cost := rec.KwhUsage * baseRate

		if discount > 0 {
			b.DiscountedKwh += rec.KwhUsage
			b.DiscountedSavings += cost * discount
		} else {
			b.RegularKwh += rec.KwhUsage
		}
	}
	b.TotalKwh = b.DiscountedKwh + b.RegularKwh
	return b
}

// billTieredBreakdown groups records by calendar month, prices each month
// at the base rate, and applies the single tier matching that month's bill
// to the whole month. Every month lands in the discounted bucket - a
// tiered plan discounts 100% of usage, just at a bill-dependent rate - so
// RegularKwh stays zero. A plan tagged tiered with no tiers degrades to a
// zero discount with the totals intact.
func billTieredBreakdown(records []usage.UsageRecord, p *tariff.Plan, baseRate float64) Breakdown {
	monthKwh := make(map[string]float64)
	for _, rec := range records {
		key := fmt.Sprintf("%04d-%02d", rec.Date.Year(), int(rec.Date.Month()))
		monthKwh[key] += rec.KwhUsage
	}

	// Fixed iteration order keeps float accumulation deterministic run to run.
	months := make([]string, 0, len(monthKwh))
	for k := range monthKwh {
		months = append(months, k)
	}
	sort.Strings(months)

	var b Breakdown
	for _, m := range months {
		kwh := monthKwh[m]
		bill := kwh * baseRate
		discount := tariff.DiscountForBill(bill, p.BillBasedTiers)

		b.DiscountedKwh += kwh
		b.DiscountedSavings += bill * discount
		b.TotalKwh += kwh
	}
	return b
}
