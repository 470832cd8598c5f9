package tariff

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()
	if len(cat.Plans) == 0 {
		t.Fatal("default catalog has no plans")
	}
	if cat.BaseRate != DefaultBaseRate {
		t.Errorf("unexpected base rate: %v", cat.BaseRate)
	}
	if cat.VATMultiplier() != 1+DefaultVATRate {
		t.Errorf("unexpected VAT multiplier: %v", cat.VATMultiplier())
	}

	seen := make(map[string]bool)
	for _, p := range cat.Plans {
		if p.ID == "" {
			t.Errorf("plan %q/%q has empty id", p.Provider, p.PlanName)
		}
		if seen[p.ID] {
			t.Errorf("duplicate plan id %q", p.ID)
		}
		seen[p.ID] = true

		for _, w := range p.DiscountWindows {
			if w.Discount < 0 || w.Discount >= 1 {
				t.Errorf("plan %s window discount out of range: %v", p.ID, w.Discount)
			}
		}
		for _, tier := range p.BillBasedTiers {
			if tier.Discount < 0 || tier.Discount >= 1 {
				t.Errorf("plan %s tier discount out of range: %v", p.ID, tier.Discount)
			}
		}
	}

	if len(cat.SmartMeterPlans()) == 0 {
		t.Error("expected smart-meter plans in the default catalog")
	}
	if cat.PlanByID("iec-baseline") == nil {
		t.Error("expected the iec-baseline plan to exist")
	}
	if cat.PlanByID("no-such-plan") != nil {
		t.Error("expected nil for an unknown plan id")
	}
}

func TestDefaultCatalogTieredTopIsOpen(t *testing.T) {
	cat := Default()
	found := false
	for _, p := range cat.Plans {
		if len(p.BillBasedTiers) == 0 {
			continue
		}
		found = true
		last := p.BillBasedTiers[len(p.BillBasedTiers)-1]
		if !math.IsInf(last.MaxBill, 1) {
			t.Errorf("plan %s top tier should be open, got %v", p.ID, last.MaxBill)
		}
		for i := 1; i < len(p.BillBasedTiers); i++ {
			if p.BillBasedTiers[i].MaxBill <= p.BillBasedTiers[i-1].MaxBill {
				t.Errorf("plan %s tiers not ascending", p.ID)
			}
		}
	}
	if !found {
		t.Error("expected at least one bill-tiered plan")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{
		"lastUpdated": "2026-02-01",
		"plans": [
			{
				"id": "test-tiered",
				"provider": "Test",
				"planName": "Tiered",
				"billBasedTiers": [
					{"maxBill": 150, "discount": 0.05},
					{"maxBill": null, "discount": 0.07}
				]
			}
		]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.BaseRate != DefaultBaseRate || cat.VATRate != DefaultVATRate {
		t.Errorf("missing rates should default, got %v / %v", cat.BaseRate, cat.VATRate)
	}
	tiers := cat.Plans[0].BillBasedTiers
	if !math.IsInf(tiers[1].MaxBill, 1) {
		t.Errorf("null maxBill should normalize to +Inf, got %v", tiers[1].MaxBill)
	}
}

func TestLoadFileRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(`{"plans": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected an error for a catalog with no plans")
	}
}

func TestBillTierJSONRoundTrip(t *testing.T) {
	tiers := []BillTier{
		{MaxBill: 149, Discount: 0.05},
		{MaxBill: math.Inf(1), Discount: 0.08},
	}
	raw, err := json.Marshal(tiers)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back []BillTier
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back[0].MaxBill != 149 {
		t.Errorf("finite ceiling changed: %v", back[0].MaxBill)
	}
	if !math.IsInf(back[1].MaxBill, 1) {
		t.Errorf("open tier lost: %v", back[1].MaxBill)
	}
}

func TestStoreFallsBackToDefault(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	if len(s.Catalog().Plans) == 0 {
		t.Fatal("store should fall back to the built-in catalog")
	}
}

func TestStoreRateOverridesSurviveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{
		"baseRate": 0.60,
		"vatRate": 0.17,
		"plans": [{"id": "p", "provider": "P", "planName": "Flat", "defaultDiscount": 0.05}]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	if s.Catalog().BaseRate != 0.60 {
		t.Fatalf("file rate not loaded: %v", s.Catalog().BaseRate)
	}

	s.SetRateOverrides(0.70, 0)
	if got := s.Catalog(); got.BaseRate != 0.70 || got.VATRate != 0.17 {
		t.Fatalf("override not applied: base %v vat %v", got.BaseRate, got.VATRate)
	}

	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := s.Catalog(); got.BaseRate != 0.70 {
		t.Errorf("reload reverted the pinned base rate: %v", got.BaseRate)
	}
	if got := s.Catalog(); got.VATRate != 0.17 {
		t.Errorf("unoverridden VAT should track the file: %v", got.VATRate)
	}
}
