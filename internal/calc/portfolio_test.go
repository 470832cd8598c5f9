package calc

import (
	"math"
	"reflect"
	"testing"
	"time"

	"tariffscout/internal/tariff"
	"tariffscout/internal/usage"
)

func testCatalog(plans ...tariff.Plan) *tariff.Catalog {
	return &tariff.Catalog{
		BaseRate: tariff.DefaultBaseRate,
		VATRate:  tariff.DefaultVATRate,
		Plans:    plans,
	}
}

func dataFromRecords(recs []usage.UsageRecord) *usage.ParsedUsageData {
	minDate, maxDate := recs[0].Date, recs[0].Date
	var total float64
	for _, r := range recs {
		total += r.KwhUsage
		if r.Date.Before(minDate.Time) {
			minDate = r.Date
		}
		if r.Date.After(maxDate.Time) {
			maxDate = r.Date
		}
	}
	return &usage.ParsedUsageData{
		Records:   recs,
		StartDate: minDate,
		EndDate:   maxDate,
		TotalKwh:  total,
	}
}

func TestPlanResultForBaselineAndSavings(t *testing.T) {
	recs := makeRecords(96*30, 0.5, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	data := dataFromRecords(recs)
	cat := testCatalog()
	vat := cat.VATMultiplier()

	flat := &tariff.Plan{
		ID: "flat-7",
		DiscountWindows: []tariff.DiscountWindow{
			{Days: []int{0, 1, 2, 3, 4, 5, 6}, StartHour: 0, EndHour: 24, Discount: 0.07},
		},
	}
	r := PlanResultFor(flat, data, cat, 1)

	wantBaseline := data.TotalKwh * cat.BaseRate * vat
	if diff := math.Abs(r.BaselineCost - wantBaseline); diff > 1e-9 {
		t.Errorf("baseline %v, want %v", r.BaselineCost, wantBaseline)
	}
	wantSavings := wantBaseline * 0.07
	if diff := math.Abs(r.Savings - wantSavings); diff > 1e-6 {
		t.Errorf("savings %v, want %v", r.Savings, wantSavings)
	}
	if diff := math.Abs(r.DiscountedCost - (r.BaselineCost - r.Savings)); diff > 1e-9 {
		t.Errorf("discounted cost must be baseline minus savings, off by %v", diff)
	}
	if diff := math.Abs(r.SavingsPercent - 7.0); diff > 1e-6 {
		t.Errorf("savings percent %v, want 7.0", r.SavingsPercent)
	}
}

func TestPlanResultForMonthlyCap(t *testing.T) {
	recs := makeRecords(96*60, 1, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	data := dataFromRecords(recs)
	cat := testCatalog()

	capped := &tariff.Plan{
		ID:                "capped",
		MaxMonthlySavings: 50,
		DiscountWindows: []tariff.DiscountWindow{
			{Days: []int{0, 1, 2, 3, 4, 5, 6}, StartHour: 0, EndHour: 24, Discount: 0.2},
		},
	}

	numMonths := MonthsSpanned(data.StartDate, data.EndDate)
	r := PlanResultFor(capped, data, cat, numMonths)

	if !r.SavingsCapped {
		t.Fatal("expected the cap to trigger")
	}
	wantCap := 50 * float64(numMonths)
	if diff := math.Abs(r.Savings - wantCap); diff > 1e-9 {
		t.Errorf("capped savings %v, want %v", r.Savings, wantCap)
	}
	if r.UncappedSavings <= r.Savings {
		t.Errorf("uncapped savings %v should exceed capped %v", r.UncappedSavings, r.Savings)
	}

	// Capped savings can never exceed uncapped savings for the same data.
	uncappedPlan := *capped
	uncappedPlan.MaxMonthlySavings = 0
	free := PlanResultFor(&uncappedPlan, data, cat, numMonths)
	if r.Savings > free.Savings {
		t.Errorf("cap increased savings: %v > %v", r.Savings, free.Savings)
	}
}

func TestCalculateAllPlansRankingAndDeterminism(t *testing.T) {
	recs := makeRecords(96*30, 0.5, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	data := dataFromRecords(recs)

	cat := testCatalog(
		tariff.Plan{ID: "small", DiscountWindows: []tariff.DiscountWindow{
			{Days: []int{0, 1, 2, 3, 4, 5, 6}, StartHour: 0, EndHour: 24, Discount: 0.05},
		}},
		tariff.Plan{ID: "big", DiscountWindows: []tariff.DiscountWindow{
			{Days: []int{0, 1, 2, 3, 4, 5, 6}, StartHour: 0, EndHour: 24, Discount: 0.10},
		}},
		tariff.Plan{ID: "none"},
	)

	results := CalculateAllPlans(data, cat)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Plan.ID != "big" || results[1].Plan.ID != "small" || results[2].Plan.ID != "none" {
		t.Errorf("unexpected ranking: %s, %s, %s",
			results[0].Plan.ID, results[1].Plan.ID, results[2].Plan.ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Savings > results[i-1].Savings {
			t.Errorf("results not sorted by savings at index %d", i)
		}
	}

	// Same input, same output, bit for bit.
	again := CalculateAllPlans(data, cat)
	if !reflect.DeepEqual(results, again) {
		t.Error("repeated runs over identical input differ")
	}
}

func TestExtrapolateToAnnual(t *testing.T) {
	recs := makeRecords(96*73, 0.5, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	data := dataFromRecords(recs)

	cat := testCatalog(tariff.Plan{ID: "flat", DiscountWindows: []tariff.DiscountWindow{
		{Days: []int{0, 1, 2, 3, 4, 5, 6}, StartHour: 0, EndHour: 24, Discount: 0.07},
	}})

	results := CalculateAllPlans(data, cat)
	annual := ExtrapolateToAnnual(results, data.StartDate, data.EndDate)

	days := DaysObserved(data.StartDate, data.EndDate)
	if days >= 365 {
		t.Fatalf("test data should span under a year, got %d days", days)
	}
	mult := 365 / float64(days)

	r, a := results[0], annual[0]
	if diff := math.Abs(a.Savings - r.Savings*mult); diff > 1e-9 {
		t.Errorf("savings not scaled by %v: %v vs %v", mult, a.Savings, r.Savings)
	}
	if diff := math.Abs(a.TotalUsageKwh - r.TotalUsageKwh*mult); diff > 1e-9 {
		t.Errorf("usage not scaled: %v vs %v", a.TotalUsageKwh, r.TotalUsageKwh)
	}
	// Ratios are scale-invariant and must not be rescaled.
	if a.SavingsPercent != r.SavingsPercent {
		t.Errorf("savings percent changed: %v -> %v", r.SavingsPercent, a.SavingsPercent)
	}
	if a.SavingsCapped != r.SavingsCapped || a.UncappedSavings != r.UncappedSavings {
		t.Error("cap fields must pass through unscaled")
	}
}

func TestExtrapolateToAnnualFullYearUnchanged(t *testing.T) {
	start := usage.NewDate(2025, 1, 1)
	end := usage.NewDate(2026, 1, 10)
	results := []PlanResult{{Savings: 123.45, TotalUsageKwh: 1000}}

	out := ExtrapolateToAnnual(results, start, end)
	if !reflect.DeepEqual(out, results) {
		t.Error("data covering a full year must pass through unchanged")
	}
}

func TestMonthsSpanned(t *testing.T) {
	cases := []struct {
		start, end usage.Date
		want       int
	}{
		{usage.NewDate(2025, 6, 1), usage.NewDate(2025, 6, 20), 1},
		{usage.NewDate(2025, 1, 15), usage.NewDate(2025, 3, 2), 2},
		{usage.NewDate(2024, 11, 1), usage.NewDate(2025, 2, 1), 3},
	}
	for _, c := range cases {
		if got := MonthsSpanned(c.start, c.end); got != c.want {
			t.Errorf("MonthsSpanned(%v, %v) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}
