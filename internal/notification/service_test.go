package notification

import (
	"context"
	"strings"
	"testing"

	"tariffscout/internal/calc"
	"tariffscout/internal/storage"
	"tariffscout/internal/tariff"
)

func TestBuildSavingsReport(t *testing.T) {
	results := []calc.PlanResult{
		{
			Plan:           &tariff.Plan{Provider: "Electra Power", PlanName: "Night <Owl>"},
			BaselineCost:   4800,
			DiscountedCost: 4400,
			Savings:        400,
			SavingsPercent: 8.3,
			TotalUsageKwh:  7500,
		},
		{
			Plan:           &tariff.Plan{Provider: "Cellcom Energy", PlanName: "Flat"},
			BaselineCost:   4800,
			DiscountedCost: 4550,
			Savings:        250,
			SavingsPercent: 5.2,
			SavingsCapped:  true,
			TotalUsageKwh:  7500,
		},
	}

	html := BuildSavingsReport("Dana & Co", results)

	if !strings.Contains(html, "Electra Power") {
		t.Error("missing provider name")
	}
	if !strings.Contains(html, "Night &lt;Owl&gt;") {
		t.Error("plan name not HTML-escaped")
	}
	if !strings.Contains(html, "Dana &amp; Co") {
		t.Error("customer name not HTML-escaped")
	}
	if !strings.Contains(html, "(capped)") {
		t.Error("capped marker missing")
	}
	if !strings.Contains(html, "kWh") {
		t.Error("baseline usage line missing")
	}
}

func TestSendEmailRequiresConfig(t *testing.T) {
	svc := NewService(storage.NewMemory())
	err := svc.SendEmail(context.Background(), "a@example.com", "subj", "body")
	if err == nil {
		t.Fatal("expected an error with no email config")
	}
}

func TestSendEmailRejectsDisabledConfig(t *testing.T) {
	st := storage.NewMemory()
	_ = st.SaveEmailConfig(context.Background(), storage.EmailConfig{ID: "default", Provider: "sendgrid", Enabled: false})

	svc := NewService(st)
	if err := svc.SendEmail(context.Background(), "a@example.com", "subj", "body"); err == nil {
		t.Fatal("expected an error with a disabled config")
	}
}

func TestSendEmailUnknownProvider(t *testing.T) {
	st := storage.NewMemory()
	_ = st.SaveEmailConfig(context.Background(), storage.EmailConfig{ID: "default", Provider: "carrier-pigeon", Enabled: true})

	svc := NewService(st)
	err := svc.SendEmail(context.Background(), "a@example.com", "subj", "body")
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}
