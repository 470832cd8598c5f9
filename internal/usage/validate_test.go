package usage

import (
	"testing"
	"time"
)

func makeData(records int, start, end Date) *ParsedUsageData {
	recs := make([]UsageRecord, records)
	for i := range recs {
		recs[i] = UsageRecord{Date: start, Time: "00:00", KwhUsage: 0.5}
	}
	return &ParsedUsageData{
		Records:   recs,
		StartDate: start,
		EndDate:   end,
		TotalKwh:  float64(records) * 0.5,
	}
}

func TestValidateUsageDataTooFewRecords(t *testing.T) {
	data := makeData(99, NewDate(2025, 1, 1), NewDate(2025, 3, 1))
	err := ValidateUsageData(data)
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Kind != ValidationInsufficientRecords {
		t.Errorf("expected kind %q, got %q", ValidationInsufficientRecords, verr.Kind)
	}
	if verr.MessageHebrew == "" {
		t.Error("expected a Hebrew message")
	}
}

func TestValidateUsageDataTooShortRange(t *testing.T) {
	// Plenty of records but only 3 days of coverage.
	data := makeData(200, NewDate(2025, 6, 1), NewDate(2025, 6, 4))
	err := ValidateUsageData(data)
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Kind != ValidationInsufficientDateRange {
		t.Errorf("expected kind %q, got %q", ValidationInsufficientDateRange, verr.Kind)
	}
}

func TestValidateUsageDataRecordCheckRunsFirst(t *testing.T) {
	// Both checks would fail; the record-count error must win.
	data := makeData(10, NewDate(2025, 6, 1), NewDate(2025, 6, 2))
	err := ValidateUsageData(data)
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Kind != ValidationInsufficientRecords {
		t.Errorf("expected kind %q, got %q", ValidationInsufficientRecords, verr.Kind)
	}
}

func TestValidateUsageDataOK(t *testing.T) {
	data := makeData(100, NewDate(2025, 6, 1), NewDate(2025, 6, 8))
	if err := ValidateUsageData(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.June, 15)
	raw, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Date
	if err := back.UnmarshalJSON(raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip changed the date: %v -> %v", d, back)
	}

	// Plain dates from other tooling are tolerated.
	var plain Date
	if err := plain.UnmarshalJSON([]byte(`"2025-06-15"`)); err != nil {
		t.Fatalf("plain date unmarshal failed: %v", err)
	}
	if !plain.Equal(d.Time) {
		t.Errorf("expected %v, got %v", d, plain)
	}
}
