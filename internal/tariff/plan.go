package tariff

import (
	"encoding/json"
	"math"
)

// PlanType tags the calculation shape of a plan. Exactly one shape applies
// per plan; the aggregator dispatches on it rather than sniffing optional
// fields.
type PlanType string

const (
	// PlanFlat is a single constant discount regardless of timing.
	PlanFlat PlanType = "flat"
	// PlanTimeOfUse discounts only inside time/day windows.
	PlanTimeOfUse PlanType = "tou"
	// PlanBillTiered discounts by monthly bill size, not timing.
	PlanBillTiered PlanType = "tiered"
)

// DiscountWindow scopes a discount to a set of weekdays and an hour range.
// Weekday indices follow the Israeli week: 0=Sunday .. 6=Saturday.
// StartHour/EndHour are 0-24; StartHour > EndHour wraps past midnight, and
// 0..24 means always.
type DiscountWindow struct {
	Days      []int   `json:"days"`
	StartHour int     `json:"startHour"`
	EndHour   int     `json:"endHour"`
	Discount  float64 `json:"discount"`
}

// AppliesOn reports whether the window covers the given weekday.
func (w DiscountWindow) AppliesOn(weekday int) bool {
	for _, d := range w.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// ContainsHour reports whether the window covers the given hour (0-23).
func (w DiscountWindow) ContainsHour(hour int) bool {
	switch {
	case w.StartHour == 0 && w.EndHour == 24:
		return true
	case w.StartHour > w.EndHour: // overnight, e.g. 23-7 covers 23,0..6
		return hour >= w.StartHour || hour < w.EndHour
	default:
		return hour >= w.StartHour && hour < w.EndHour
	}
}

// BillTier maps a monthly bill ceiling to a discount. Tiers are ordered by
// ascending MaxBill; a non-positive MaxBill in catalog JSON means "and
// above" and is normalized to +Inf at load time.
type BillTier struct {
	MaxBill  float64 `json:"maxBill"`
	Discount float64 `json:"discount"`
}

// billTierJSON is the wire form: an open top tier carries a null maxBill,
// since JSON has no Infinity.
type billTierJSON struct {
	MaxBill  *float64 `json:"maxBill"`
	Discount float64  `json:"discount"`
}

func (t BillTier) MarshalJSON() ([]byte, error) {
	j := billTierJSON{Discount: t.Discount}
	if !math.IsInf(t.MaxBill, 1) {
		j.MaxBill = &t.MaxBill
	}
	return json.Marshal(j)
}

func (t *BillTier) UnmarshalJSON(b []byte) error {
	var j billTierJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	t.Discount = j.Discount
	if j.MaxBill == nil || *j.MaxBill <= 0 {
		t.MaxBill = math.Inf(1)
	} else {
		t.MaxBill = *j.MaxBill
	}
	return nil
}

// Membership describes a subscription precondition. Informational only; it
// never affects the calculation.
type Membership struct {
	Type               string `json:"type"` // tv, internet, mobile, gas, app, other
	DescriptionHebrew  string `json:"descriptionHebrew"`
	DescriptionEnglish string `json:"descriptionEnglish"`
}

// DiscountRange is a display-only min/max band for plans whose discount
// varies by membership status. Ranking always uses the representative
// discount encoded in the windows/tiers.
type DiscountRange struct {
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	MinLabelHebrew  string  `json:"minLabelHebrew"`
	MinLabelEnglish string  `json:"minLabelEnglish"`
	MaxLabelHebrew  string  `json:"maxLabelHebrew"`
	MaxLabelEnglish string  `json:"maxLabelEnglish"`
}

// Plan is one catalog entry. Plans are static configuration: loaded once,
// shared read-only, never mutated.
type Plan struct {
	ID             string `json:"id"`
	Provider       string `json:"provider"`
	ProviderHebrew string `json:"providerHebrew"`
	PlanName       string `json:"planName"`
	PlanNameHebrew string `json:"planNameHebrew"`

	// Type may be set explicitly in catalog JSON; when empty it is derived
	// from field presence via Shape.
	Type PlanType `json:"type,omitempty"`

	RequiresSmartMeter bool `json:"requiresSmartMeter"`

	DiscountWindows []DiscountWindow `json:"discountWindows"`
	DefaultDiscount float64          `json:"defaultDiscount"`

	// MaxMonthlySavings caps savings in NIS per month; zero means no cap.
	MaxMonthlySavings float64 `json:"maxMonthlySavings,omitempty"`

	BillBasedTiers []BillTier `json:"billBasedTiers,omitempty"`

	RequiresMembership *Membership    `json:"requiresMembership,omitempty"`
	DiscountRange      *DiscountRange `json:"discountRange,omitempty"`

	Conditions       []string `json:"conditions,omitempty"`
	ConditionsHebrew []string `json:"conditionsHebrew,omitempty"`
	SourceURL        string   `json:"sourceUrl"`
	LastUpdated      string   `json:"lastUpdated"`
}

// Shape returns the calculation shape, honoring an explicit tag first.
func (p *Plan) Shape() PlanType {
	if p.Type != "" {
		return p.Type
	}
	if len(p.BillBasedTiers) > 0 {
		return PlanBillTiered
	}
	if len(p.DiscountWindows) == 1 {
		w := p.DiscountWindows[0]
		if w.StartHour == 0 && w.EndHour == 24 && len(w.Days) == 7 {
			return PlanFlat
		}
	}
	return PlanTimeOfUse
}
