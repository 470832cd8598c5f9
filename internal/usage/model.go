package usage

import (
	"encoding/json"
	"time"
)

// Date is a calendar date with no meaningful time-of-day component. It
// marshals to an ISO-8601 string so that storage layers can round-trip
// parsed data without depending on Go's time encoding.
type Date struct {
	time.Time
}

// NewDate returns a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Tolerate plain dates written by other tooling.
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return err
		}
	}
	d.Time = t.UTC()
	return nil
}

// UsageRecord is a single smart-meter reading at 15-minute granularity.
type UsageRecord struct {
	Date     Date    `json:"date"`
	Time     string  `json:"time"` // "HH:MM"
	KwhUsage float64 `json:"kwhUsage"`
}

// ParsedUsageData is the validated time series produced by the parser.
// It is never mutated after creation; derived views (extrapolated results,
// hourly profiles) are computed into new values.
type ParsedUsageData struct {
	CustomerName   string `json:"customerName"`
	Address        string `json:"address"`
	MeterCode      string `json:"meterCode"`
	MeterNumber    string `json:"meterNumber"`
	ContractNumber string `json:"contractNumber"`

	// Records are in file order; chronological order is not guaranteed.
	Records []UsageRecord `json:"records"`

	StartDate Date    `json:"startDate"`
	EndDate   Date    `json:"endDate"`
	TotalKwh  float64 `json:"totalKwh"`
}
