package tariff

import (
	"math"
	"testing"

	"tariffscout/internal/usage"
)

// 01/06/2025 is a Sunday (weekday 0), 06/06/2025 a Friday, 07/06/2025 a
// Saturday.
func rec(day int, clock string) usage.UsageRecord {
	return usage.UsageRecord{Date: usage.NewDate(2025, 6, day), Time: clock, KwhUsage: 1}
}

func TestDiscountForRecordOvernightWindow(t *testing.T) {
	p := &Plan{
		DiscountWindows: []DiscountWindow{
			{Days: []int{0, 1, 2, 3, 4, 5, 6}, StartHour: 23, EndHour: 7, Discount: 0.2},
		},
	}

	cases := []struct {
		clock string
		want  float64
	}{
		{"23:00", 0.2},
		{"23:45", 0.2},
		{"00:00", 0.2},
		{"06:45", 0.2},
		{"07:00", 0}, // end hour is exclusive
		{"12:00", 0},
		{"22:59", 0},
	}
	for _, c := range cases {
		if got := DiscountForRecord(rec(1, c.clock), p); got != c.want {
			t.Errorf("discount at %s: got %v, want %v", c.clock, got, c.want)
		}
	}
}

func TestDiscountForRecordDayMatchCommits(t *testing.T) {
	// The first window covering the record's weekday decides the outcome:
	// an hour miss falls to the default, not to later windows.
	p := &Plan{
		DefaultDiscount: 0.05,
		DiscountWindows: []DiscountWindow{
			{Days: []int{0}, StartHour: 10, EndHour: 14, Discount: 0.3},
			{Days: []int{0, 1, 2, 3, 4, 5, 6}, StartHour: 0, EndHour: 24, Discount: 0.1},
		},
	}

	// Sunday 16:00: first window matches the day but not the hour.
	if got := DiscountForRecord(rec(1, "16:00"), p); got != 0.05 {
		t.Errorf("expected default 0.05 on day match with hour miss, got %v", got)
	}
	// Sunday 12:00: first window matches fully.
	if got := DiscountForRecord(rec(1, "12:00"), p); got != 0.3 {
		t.Errorf("expected 0.3, got %v", got)
	}
	// Friday: first window skipped on day, second applies.
	if got := DiscountForRecord(rec(6, "16:00"), p); got != 0.1 {
		t.Errorf("expected 0.1 on later window, got %v", got)
	}
}

func TestDiscountForRecordNoWindowMatches(t *testing.T) {
	p := &Plan{
		DefaultDiscount: 0.07,
		DiscountWindows: []DiscountWindow{
			{Days: []int{0, 1, 2, 3, 4}, StartHour: 8, EndHour: 17, Discount: 0.15},
		},
	}
	// Saturday is covered by no window.
	if got := DiscountForRecord(rec(7, "12:00"), p); got != 0.07 {
		t.Errorf("expected default 0.07, got %v", got)
	}
}

func TestDiscountForBill(t *testing.T) {
	tiers := []BillTier{
		{MaxBill: 149, Discount: 0.05},
		{MaxBill: 199, Discount: 0.06},
		{MaxBill: 299, Discount: 0.07},
		{MaxBill: math.Inf(1), Discount: 0.08},
	}

	cases := []struct {
		bill float64
		want float64
	}{
		{100, 0.05},
		{149, 0.05}, // boundary is inclusive
		{149.01, 0.06},
		{199, 0.06},
		{250, 0.07},
		{10000, 0.08},
	}
	for _, c := range cases {
		if got := DiscountForBill(c.bill, tiers); got != c.want {
			t.Errorf("bill %v: got %v, want %v", c.bill, got, c.want)
		}
	}

	if got := DiscountForBill(100, nil); got != 0 {
		t.Errorf("empty tiers must fail closed to 0, got %v", got)
	}
}

func TestPlanShape(t *testing.T) {
	flat := &Plan{DiscountWindows: []DiscountWindow{
		{Days: []int{0, 1, 2, 3, 4, 5, 6}, StartHour: 0, EndHour: 24, Discount: 0.06},
	}}
	if flat.Shape() != PlanFlat {
		t.Errorf("expected flat, got %v", flat.Shape())
	}

	tou := &Plan{DiscountWindows: []DiscountWindow{
		{Days: []int{0, 1, 2, 3, 4}, StartHour: 23, EndHour: 7, Discount: 0.2},
	}}
	if tou.Shape() != PlanTimeOfUse {
		t.Errorf("expected tou, got %v", tou.Shape())
	}

	tiered := &Plan{BillBasedTiers: []BillTier{{MaxBill: 149, Discount: 0.05}}}
	if tiered.Shape() != PlanBillTiered {
		t.Errorf("expected tiered, got %v", tiered.Shape())
	}

	// An explicit tag wins over derivation.
	tagged := &Plan{Type: PlanFlat, DiscountWindows: []DiscountWindow{
		{Days: []int{0}, StartHour: 8, EndHour: 17, Discount: 0.1},
	}}
	if tagged.Shape() != PlanFlat {
		t.Errorf("expected explicit flat tag to win, got %v", tagged.Shape())
	}
}
