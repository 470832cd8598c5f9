package tariff

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync"
)

// Israeli electricity base rate in NIS per kWh (54.51 agorot, Jan 2026)
// and the VAT fraction applied to all residential bills.
const (
	DefaultBaseRate = 0.5451
	DefaultVATRate  = 0.18
)

// Catalog is the full rule set the calculator runs against: the ordered
// plan list plus the two scalar rate constants. It is injected into the
// calculator explicitly so tests can run against synthetic catalogs.
type Catalog struct {
	BaseRate    float64 `json:"baseRate"`
	VATRate     float64 `json:"vatRate"`
	LastUpdated string  `json:"lastUpdated"`
	Plans       []Plan  `json:"plans"`
}

// VATMultiplier returns 1+VAT for cost calculations.
func (c *Catalog) VATMultiplier() float64 { return 1 + c.VATRate }

// PlanByID returns the plan with the given id, or nil.
func (c *Catalog) PlanByID(id string) *Plan {
	for i := range c.Plans {
		if c.Plans[i].ID == id {
			return &c.Plans[i]
		}
	}
	return nil
}

// SmartMeterPlans returns the plans requiring interval data.
func (c *Catalog) SmartMeterPlans() []Plan {
	var out []Plan
	for _, p := range c.Plans {
		if p.RequiresSmartMeter {
			out = append(out, p)
		}
	}
	return out
}

// normalize fills rate defaults and opens unbounded top tiers. JSON cannot
// express Infinity, so catalog files use maxBill <= 0 for "and above".
func (c *Catalog) normalize() {
	if c.BaseRate == 0 {
		c.BaseRate = DefaultBaseRate
	}
	if c.VATRate == 0 {
		c.VATRate = DefaultVATRate
	}
	for i := range c.Plans {
		for j := range c.Plans[i].BillBasedTiers {
			if c.Plans[i].BillBasedTiers[j].MaxBill <= 0 {
				c.Plans[i].BillBasedTiers[j].MaxBill = math.Inf(1)
			}
		}
	}
}

// LoadFile reads a catalog override from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Plans) == 0 {
		return nil, fmt.Errorf("catalog %s contains no plans", path)
	}
	c.normalize()
	return &c, nil
}

// Store holds the process-wide catalog. The catalog itself is immutable;
// Reload swaps in a freshly loaded copy so concurrent readers are safe.
// Rate overrides live on the Store, not the catalog, so they survive
// every reload.
type Store struct {
	mu   sync.RWMutex
	cat  *Catalog
	path string

	baseRate float64
	vatRate  float64
}

// NewStore returns a Store backed by the JSON file at path, or the
// compiled-in default catalog when path is empty or unreadable.
func NewStore(path string) *Store {
	s := &Store{path: path, cat: Default()}
	if path != "" {
		if err := s.Reload(); err != nil {
			// Compiled-in defaults remain active.
			fmt.Fprintf(os.Stderr, "tariff: %v; using built-in catalog\n", err)
		}
	}
	return s
}

// SetRateOverrides pins the base rate and VAT rate regardless of what the
// catalog source says. A non-positive value leaves the source rate alone.
func (s *Store) SetRateOverrides(baseRate, vatRate float64) {
	s.mu.Lock()
	s.baseRate = baseRate
	s.vatRate = vatRate
	s.cat = s.overridden(s.cat)
	s.mu.Unlock()
}

// overridden returns cat with the pinned rates applied, copying it when a
// rate actually changes. Callers hold s.mu.
func (s *Store) overridden(cat *Catalog) *Catalog {
	if s.baseRate <= 0 && s.vatRate <= 0 {
		return cat
	}
	c := *cat
	if s.baseRate > 0 {
		c.BaseRate = s.baseRate
	}
	if s.vatRate > 0 {
		c.VATRate = s.vatRate
	}
	return &c
}

// Catalog returns the current catalog snapshot.
func (s *Store) Catalog() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Reload re-reads the catalog file, keeping the previous catalog on error.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	c, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cat = s.overridden(c)
	s.mu.Unlock()
	return nil
}
