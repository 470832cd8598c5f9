package tariff

import (
	"strconv"
	"strings"

	"tariffscout/internal/usage"
)

// DiscountForRecord returns the discount fraction in effect for a single
// reading under the given plan. Windows are checked in declared order and
// the first window covering the record's weekday decides: if its hour range
// also matches, its discount applies; if not, the plan's default discount
// applies. Later windows are consulted only on a day mismatch, so window
// order matters.
func DiscountForRecord(rec usage.UsageRecord, p *Plan) float64 {
	hour := recordHour(rec.Time)
	weekday := int(rec.Date.Weekday()) // 0=Sunday, matching catalog indices

	for _, w := range p.DiscountWindows {
		if !w.AppliesOn(weekday) {
			continue
		}
		if w.ContainsHour(hour) {
			return w.Discount
		}
		return p.DefaultDiscount
	}
	return p.DefaultDiscount
}

// DiscountForBill returns the discount for a monthly bill amount under an
// ascending tier list: the first tier whose MaxBill covers the bill wins.
// An empty tier list fails closed to zero discount so one malformed catalog
// entry cannot abort a portfolio run.
func DiscountForBill(bill float64, tiers []BillTier) float64 {
	for _, t := range tiers {
		if bill <= t.MaxBill {
			return t.Discount
		}
	}
	if len(tiers) > 0 {
		return tiers[len(tiers)-1].Discount
	}
	return 0
}

// recordHour extracts the integer hour from an "HH:MM" time string.
func recordHour(t string) int {
	h, _, ok := strings.Cut(t, ":")
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(h)
	if err != nil {
		return 0
	}
	return v
}
