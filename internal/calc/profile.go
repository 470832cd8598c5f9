package calc

import (
	"fmt"

	"tariffscout/internal/tariff"
	"tariffscout/internal/usage"
)

// HourlyUsagePoint is one 15-minute clock slot averaged across all observed
// days, with the discount a representative weekday would see under a plan.
type HourlyUsagePoint struct {
	Time     string  `json:"time"` // "00:00", "00:15", ...
	Hour     int     `json:"hour"`
	Minute   int     `json:"minute"`
	AvgKwh   float64 `json:"avgKwh"`
	Discount float64 `json:"discount"`
}

// HourlyUsageProfile bins the data set by clock time-of-day into 96 slots
// (24 hours x 4). Missing slots average to zero. When plan is non-nil each
// slot carries the discount that applies on a Sunday-Thursday weekday at
// that hour; unlike the per-record evaluator this scans every window, since
// the profile is a visualization of the plan's shape rather than a billing
// decision.
func HourlyUsageProfile(data *usage.ParsedUsageData, plan *tariff.Plan) []HourlyUsagePoint {
	type slot struct {
		total float64
		count int
	}
	slots := make(map[string]slot)
	for _, rec := range data.Records {
		s := slots[rec.Time]
		s.total += rec.KwhUsage
		s.count++
		slots[rec.Time] = s
	}

	points := make([]HourlyUsagePoint, 0, 96)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 15 {
			label := fmt.Sprintf("%02d:%02d", hour, minute)

			avg := 0.0
			if s, ok := slots[label]; ok && s.count > 0 {
				avg = s.total / float64(s.count)
			}

			discount := 0.0
			if plan != nil {
				discount = weekdayDiscountAt(plan, hour)
			}

			points = append(points, HourlyUsagePoint{
				Time:     label,
				Hour:     hour,
				Minute:   minute,
				AvgKwh:   avg,
				Discount: discount,
			})
		}
	}
	return points
}

func weekdayDiscountAt(plan *tariff.Plan, hour int) float64 {
	discount := 0.0
	for _, w := range plan.DiscountWindows {
		appliesToWeekday := false
		for _, d := range w.Days {
			if d >= 0 && d <= 4 {
				appliesToWeekday = true
				break
			}
		}
		if !appliesToWeekday {
			continue
		}
		if w.ContainsHour(hour) {
			discount = w.Discount
			break
		}
	}
	if discount == 0 {
		discount = plan.DefaultDiscount
	}
	return discount
}
