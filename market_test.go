package investo

import (
	"testing"
)

func newTestMarket(t *testing.T) *Market {
	t.Helper()
	m := NewMarket()
	if _, err := m.Declare("ACME", "EUR"); err != nil {
		t.Fatalf("Declare(ACME) error: %v", err)
	}
	if _, err := m.Declare("EURUSD=X", "USD"); err != nil {
		t.Fatalf("Declare(EURUSD=X) error: %v", err)
	}
	m.Append("ACME", D("2024-02-01"), 50)
	m.Append("ACME", D("2024-02-05"), 52)
	m.Append("EURUSD=X", D("2024-02-01"), 1.25)
	return m
}

func TestPriceAsOf(t *testing.T) {
	m := newTestMarket(t)

	// Exact day.
	price, on, ok := m.PriceAsOf("ACME", D("2024-02-01"))
	if !ok || price != 50 || on != D("2024-02-01") {
		t.Errorf("PriceAsOf(2024-02-01) = %v@%s (%v), want 50@2024-02-01", price, on, ok)
	}

	// Weekend gap: the Friday close carries forward.
	price, on, ok = m.PriceAsOf("ACME", D("2024-02-03"))
	if !ok || price != 50 || on != D("2024-02-01") {
		t.Errorf("PriceAsOf(2024-02-03) = %v@%s (%v), want 50 carried from 2024-02-01", price, on, ok)
	}
}

func TestPriceAsOfNeverLooksAhead(t *testing.T) {
	m := newTestMarket(t)
	// The only prices are on/after 2024-02-01; the day before must be a
	// gap even though 2024-02-01 is the nearest observation.
	if price, on, ok := m.PriceAsOf("ACME", D("2024-01-31")); ok {
		t.Errorf("PriceAsOf(2024-01-31) = %v@%s, want unavailable", price, on)
	}
}

func TestPriceAsOfUnknownTicker(t *testing.T) {
	m := newTestMarket(t)
	if _, _, ok := m.PriceAsOf("NOPE", D("2024-02-05")); ok {
		t.Error("PriceAsOf(NOPE) ok, want unavailable")
	}
}

func TestRateAsOf(t *testing.T) {
	m := newTestMarket(t)

	t.Run("identity", func(t *testing.T) {
		rate, _, ok := m.RateAsOf("EUR", "EUR", D("2024-02-01"))
		if !ok || rate != 1 {
			t.Errorf("RateAsOf(EUR,EUR) = %v (%v), want 1", rate, ok)
		}
	})

	t.Run("direct", func(t *testing.T) {
		rate, _, ok := m.RateAsOf("EUR", "USD", D("2024-02-02"))
		if !ok || rate != 1.25 {
			t.Errorf("RateAsOf(EUR,USD) = %v (%v), want 1.25", rate, ok)
		}
	})

	t.Run("reciprocal", func(t *testing.T) {
		rate, _, ok := m.RateAsOf("USD", "EUR", D("2024-02-02"))
		if !ok || rate != 0.8 {
			t.Errorf("RateAsOf(USD,EUR) = %v (%v), want 0.8 from the inverse pair", rate, ok)
		}
	})

	t.Run("gap", func(t *testing.T) {
		if rate, _, ok := m.RateAsOf("USD", "EUR", D("2024-01-15")); ok {
			t.Errorf("RateAsOf before any rate = %v, want unavailable", rate)
		}
	})

	t.Run("malformed code", func(t *testing.T) {
		if rate, _, ok := m.RateAsOf("EU", "USD", D("2024-02-02")); ok {
			t.Errorf("RateAsOf(EU, USD) = %v, want unavailable", rate)
		}
	})
}

func TestDeclareConflictingCurrency(t *testing.T) {
	m := newTestMarket(t)
	if _, err := m.Declare("ACME", "USD"); err == nil {
		t.Error("Declare(ACME, USD) = nil error, want currency conflict")
	}
	if _, err := m.Declare("ACME", "EUR"); err != nil {
		t.Errorf("re-Declare(ACME, EUR) error: %v", err)
	}
}
