package investo

import (
	"bytes"
	"strings"
	"testing"
)

func TestTickersRoundtrip(t *testing.T) {
	table := testTickers()

	var buf bytes.Buffer
	if err := EncodeTickers(&buf, table); err != nil {
		t.Fatalf("EncodeTickers() error: %v", err)
	}
	got, err := DecodeTickers(&buf)
	if err != nil {
		t.Fatalf("DecodeTickers() error: %v", err)
	}
	if got.Len() != table.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), table.Len())
	}
	for _, want := range table.Mappings() {
		m, ok := got.Resolve(want.ISIN)
		if !ok || m != want {
			t.Errorf("Resolve(%s) = %+v (%v), want %+v", want.ISIN, m, ok, want)
		}
	}
}

func TestDecodeTickersRejectsBadISIN(t *testing.T) {
	in := "Name,ISIN,Ticker,Currency\nAcme Corp,US0378331006,ACME,EUR\n"
	if _, err := DecodeTickers(strings.NewReader(in)); err == nil {
		t.Error("DecodeTickers(bad check digit) = nil error, want one")
	}
}

func TestTickersAddReplaces(t *testing.T) {
	table := testTickers()
	if err := table.Add(Mapping{ISIN: acmeISIN, Name: "Acme Corp", Ticker: "ACME.AS", Currency: "EUR"}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d after replacing, want still 2", table.Len())
	}
	m, _ := table.Resolve(acmeISIN)
	if m.Ticker != "ACME.AS" {
		t.Errorf("Resolve().Ticker = %q, want the replacement ACME.AS", m.Ticker)
	}
}

func TestTickersMerge(t *testing.T) {
	ledger := NewLedger("EUR", nil, []TradeEvent{
		trade("2024-01-01", acmeISIN, "Acme Corp", 10, "o1", 2),
		trade("2024-01-02", zetaISIN, "Zeta Inc", 4, "o2", 3),
	})

	table := NewTickerTable()
	table.Add(Mapping{ISIN: acmeISIN, Name: "Acme Corp", Ticker: "ACME", Currency: "EUR"})

	if added := table.Merge(ledger); added != 1 {
		t.Errorf("Merge() = %d, want 1 new instrument", added)
	}
	// The new entry is a skeleton to fill in by hand.
	m, ok := table.Resolve(zetaISIN)
	if !ok || m.Ticker != "" || m.Name != "Zeta Inc" {
		t.Errorf("Resolve(zeta) = %+v (%v), want an empty-ticker skeleton", m, ok)
	}
	// Existing entries survive untouched.
	if m, _ := table.Resolve(acmeISIN); m.Ticker != "ACME" {
		t.Errorf("Resolve(acme).Ticker = %q, want ACME", m.Ticker)
	}
	// Merging again adds nothing.
	if added := table.Merge(ledger); added != 0 {
		t.Errorf("second Merge() = %d, want 0", added)
	}
}

func TestTickersMissing(t *testing.T) {
	ledger := NewLedger("EUR", nil, []TradeEvent{
		trade("2024-01-01", acmeISIN, "Acme Corp", 10, "o1", 2),
		trade("2024-01-02", zetaISIN, "Zeta Inc", 4, "o2", 3),
	})

	table := NewTickerTable()
	table.Add(Mapping{ISIN: acmeISIN, Name: "Acme Corp", Ticker: "ACME", Currency: "EUR"})
	table.Add(Mapping{ISIN: zetaISIN, Name: "Zeta Inc"}) // no ticker yet

	missing := table.Missing(ledger)
	if len(missing) != 1 {
		t.Fatalf("Missing() = %v, want the empty-ticker instrument only", missing)
	}
	if missing[0].ISIN != zetaISIN {
		t.Errorf("Missing()[0].ISIN = %s, want %s", missing[0].ISIN, zetaISIN)
	}
}
