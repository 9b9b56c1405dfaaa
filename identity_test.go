package investo

import "testing"

func TestValidateISIN(t *testing.T) {
	if err := ValidateISIN(acmeISIN); err != nil {
		t.Errorf("ValidateISIN(%s) = %v, want nil", acmeISIN, err)
	}
	if err := ValidateISIN("US0378331006"); err == nil {
		t.Error("ValidateISIN with a wrong check digit = nil, want error")
	}
	if err := ValidateISIN("US037833"); err == nil {
		t.Error("ValidateISIN with 8 characters = nil, want error")
	}
	if err := ValidateISIN("us0378331005"); err == nil {
		t.Error("ValidateISIN lowercase = nil, want error")
	}
}

func TestPair(t *testing.T) {
	p, err := NewPair("EUR", "USD")
	if err != nil {
		t.Fatalf("NewPair(EUR, USD) error: %v", err)
	}
	if p.Base() != "EUR" || p.Quote() != "USD" {
		t.Errorf("Pair = %s/%s, want EUR/USD", p.Base(), p.Quote())
	}
	if got := p.Inverse(); got != Pair("USDEUR") {
		t.Errorf("Inverse() = %s, want USDEUR", got)
	}
	if got := fxTicker(p); got != "EURUSD=X" {
		t.Errorf("fxTicker() = %s, want EURUSD=X", got)
	}
	if _, err := NewPair("eur", "USD"); err == nil {
		t.Error("NewPair(eur, USD) = nil error, want invalid base")
	}
	if _, err := NewPair("EUR", "US"); err == nil {
		t.Error("NewPair(EUR, US) = nil error, want invalid quote")
	}
}
