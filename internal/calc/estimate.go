package calc

import (
	"math"
	"sort"

	"tariffscout/internal/tariff"
)

const (
	// AssumedDiscountHoursPercent is the share of an average household's
	// usage assumed to fall inside discount hours when no interval data is
	// available.
	AssumedDiscountHoursPercent = 0.35
	// SmartMeterCost is the one-time meter installation cost in NIS.
	SmartMeterCost = 265
)

// FixedPlanEstimate projects one non-smart-meter plan from a monthly bill.
type FixedPlanEstimate struct {
	Plan          *tariff.Plan `json:"plan"`
	Discount      float64      `json:"discount"`
	Savings       float64      `json:"savings"` // yearly, NIS
	SavingsCapped bool         `json:"savingsCapped"`
	IsTiered      bool         `json:"isTiered"`
	MinSavings    *float64     `json:"minSavings,omitempty"`
	MaxSavings    *float64     `json:"maxSavings,omitempty"`
	NewYearlyCost float64      `json:"newYearlyCost"`
}

// TouPlanEstimate projects a time-of-use plan under the assumed
// discount-hours share.
type TouPlanEstimate struct {
	Plan          *tariff.Plan `json:"plan"`
	MaxDiscount   float64      `json:"maxDiscount"`
	Savings       float64      `json:"savings"`
	NewYearlyCost float64      `json:"newYearlyCost"`
}

// BillEstimate is the answer for a household without interval data: what
// each plan would save on a given monthly bill, plus whether installing a
// smart meter would pay for itself.
type BillEstimate struct {
	MonthlyBill float64             `json:"monthlyBill"`
	YearlyCost  float64             `json:"yearlyCost"`
	YearlyKwh   float64             `json:"yearlyKwh"`
	FixedPlans  []FixedPlanEstimate `json:"fixedPlans"`
	TouPlans    []TouPlanEstimate   `json:"touPlans"`

	AdditionalSavingsWithSmartMeter float64 `json:"additionalSavingsWithSmartMeter"`
	// MonthsToPayoff is zero when a smart meter never pays for itself.
	MonthsToPayoff int `json:"monthsToPayoff,omitempty"`
}

// EstimateFromMonthlyBill projects yearly savings for every plan from a
// single VAT-inclusive monthly bill figure.
func EstimateFromMonthlyBill(cat *tariff.Catalog, monthlyBill float64) BillEstimate {
	vat := cat.VATMultiplier()
	yearlyCost := monthlyBill * 12
	yearlyKwh := (yearlyCost / vat) / cat.BaseRate

	var fixed []FixedPlanEstimate
	for i := range cat.Plans {
		p := &cat.Plans[i]
		if p.RequiresSmartMeter || (len(p.DiscountWindows) == 0 && len(p.BillBasedTiers) == 0) {
			continue
		}

		var (
			discount float64
			isTiered bool
		)
		if len(p.BillBasedTiers) > 0 {
			discount = tariff.DiscountForBill(monthlyBill, p.BillBasedTiers)
			isTiered = true
		} else {
			discount = p.DiscountWindows[0].Discount
			if discount == 0 {
				discount = p.DefaultDiscount
			}
		}
		savings := yearlyCost * discount

		var minSavings, maxSavings *float64
		if p.DiscountRange != nil {
			lo := yearlyCost * p.DiscountRange.Min
			hi := yearlyCost * p.DiscountRange.Max
			minSavings, maxSavings = &lo, &hi
		}

		savingsCapped := false
		if p.MaxMonthlySavings > 0 {
			maxYearly := p.MaxMonthlySavings * 12
			if savings > maxYearly {
				savings = maxYearly
				savingsCapped = true
			}
			if minSavings != nil && *minSavings > maxYearly {
				*minSavings = maxYearly
			}
			if maxSavings != nil && *maxSavings > maxYearly {
				*maxSavings = maxYearly
			}
		}

		fixed = append(fixed, FixedPlanEstimate{
			Plan:          p,
			Discount:      discount,
			Savings:       savings,
			SavingsCapped: savingsCapped,
			IsTiered:      isTiered,
			MinSavings:    minSavings,
			MaxSavings:    maxSavings,
			NewYearlyCost: yearlyCost - savings,
		})
	}
	sort.SliceStable(fixed, func(i, j int) bool { return fixed[i].Savings > fixed[j].Savings })

	var tou []TouPlanEstimate
	for i := range cat.Plans {
		p := &cat.Plans[i]
		if !p.RequiresSmartMeter {
			continue
		}
		maxDiscount := 0.0
		for _, w := range p.DiscountWindows {
			maxDiscount = math.Max(maxDiscount, w.Discount)
		}
		discountedUsage := yearlyKwh * AssumedDiscountHoursPercent
		savings := discountedUsage * cat.BaseRate * maxDiscount * vat
		tou = append(tou, TouPlanEstimate{
			Plan:          p,
			MaxDiscount:   maxDiscount,
			Savings:       savings,
			NewYearlyCost: yearlyCost - savings,
		})
	}
	sort.SliceStable(tou, func(i, j int) bool { return tou[i].Savings > tou[j].Savings })

	est := BillEstimate{
		MonthlyBill: monthlyBill,
		YearlyCost:  yearlyCost,
		YearlyKwh:   yearlyKwh,
		FixedPlans:  fixed,
		TouPlans:    tou,
	}

	if len(tou) > 0 {
		bestFixed := 0.0
		if len(fixed) > 0 {
			bestFixed = fixed[0].Savings
		}
		additional := tou[0].Savings - bestFixed
		est.AdditionalSavingsWithSmartMeter = additional
		if additional > 0 {
			est.MonthsToPayoff = int(math.Ceil(SmartMeterCost / (additional / 12)))
		}
	}
	return est
}
