package investo

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

// stubQuoter records the requested symbols and serves canned histories.
type stubQuoter struct {
	mu       sync.Mutex
	requests map[string]date.Date // symbol to requested from date
	currency map[string]string
	prices   map[string]float64
	fail     map[string]bool
}

func newStubQuoter() *stubQuoter {
	return &stubQuoter{
		requests: make(map[string]date.Date),
		currency: make(map[string]string),
		prices:   make(map[string]float64),
		fail:     make(map[string]bool),
	}
}

func (q *stubQuoter) FetchHistory(symbol string, from, to date.Date) (*date.History[float64], string, error) {
	q.mu.Lock()
	q.requests[symbol] = from
	q.mu.Unlock()
	if q.fail[symbol] {
		return nil, "", fmt.Errorf("no quote for %q", symbol)
	}
	h := &date.History[float64]{}
	h.Append(from, q.prices[symbol])
	return h, q.currency[symbol], nil
}

func (q *stubQuoter) symbols() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []string
	for s := range q.requests {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func newUpdateLedger() *Ledger {
	return NewLedger("EUR",
		[]CashEvent{deposit("2024-01-01", 1000, 2)},
		[]TradeEvent{
			trade("2024-02-01", acmeISIN, "Acme Corp", 10, "o1", 3),
			trade("2024-02-05", zetaISIN, "Zeta Inc", 4, "o2", 4),
		})
}

func TestUpdateMarket(t *testing.T) {
	ledger := newUpdateLedger()
	m := NewMarket()

	q := newStubQuoter()
	q.currency["ACME"] = "EUR"
	q.prices["ACME"] = 50
	q.currency["ZETA"] = "USD"
	q.prices["ZETA"] = 100
	q.currency["EURUSD=X"] = "USD"
	q.prices["EURUSD=X"] = 1.25

	if err := UpdateMarket(m, ledger, testTickers(), q, "EUR", false); err != nil {
		t.Fatalf("UpdateMarket() error: %v", err)
	}

	// Both instruments plus the conversion pair for the USD one.
	want := []string{"ACME", "EURUSD=X", "ZETA"}
	if got := q.symbols(); len(got) != len(want) || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("fetched %v, want %v", got, want)
	}

	// Instruments are requested from their first trade, the rate pair from
	// the first event of all.
	if from := q.requests["ACME"]; from != D("2024-02-01") {
		t.Errorf("ACME requested from %s, want its first trade 2024-02-01", from)
	}
	if from := q.requests["EURUSD=X"]; from != D("2024-01-01") {
		t.Errorf("EURUSD=X requested from %s, want the oldest event 2024-01-01", from)
	}

	// Fetched data landed in the market with the source currency.
	if cur := m.Get("ZETA").Currency(); cur != "USD" {
		t.Errorf("ZETA currency = %q, want USD", cur)
	}
	if price, _, ok := m.PriceAsOf("ACME", date.Today()); !ok || price != 50 {
		t.Errorf("PriceAsOf(ACME) = %v (%v), want the fetched 50", price, ok)
	}
}

func TestUpdateMarketIncremental(t *testing.T) {
	ledger := newUpdateLedger()
	m := NewMarket()

	// ACME already holds a price for today: nothing left to request for it.
	if _, err := m.Declare("ACME", "EUR"); err != nil {
		t.Fatal(err)
	}
	m.Append("ACME", date.Today(), 50)

	q := newStubQuoter()
	q.currency["ZETA"] = "USD"
	q.prices["ZETA"] = 100
	q.currency["EURUSD=X"] = "USD"
	q.prices["EURUSD=X"] = 1.25

	if err := UpdateMarket(m, ledger, testTickers(), q, "EUR", false); err != nil {
		t.Fatalf("UpdateMarket() error: %v", err)
	}
	if _, ok := q.requests["ACME"]; ok {
		t.Error("ACME fetched although it is already up to date")
	}
	if _, ok := q.requests["ZETA"]; !ok {
		t.Error("ZETA not fetched")
	}
}

func TestUpdateMarketInceptionRefetches(t *testing.T) {
	ledger := newUpdateLedger()
	m := NewMarket()
	if _, err := m.Declare("ACME", "EUR"); err != nil {
		t.Fatal(err)
	}
	m.Append("ACME", date.Today(), 50)

	q := newStubQuoter()
	q.currency["ACME"] = "EUR"
	q.prices["ACME"] = 48
	q.currency["ZETA"] = "USD"
	q.currency["EURUSD=X"] = "USD"

	if err := UpdateMarket(m, ledger, testTickers(), q, "EUR", true); err != nil {
		t.Fatalf("UpdateMarket() error: %v", err)
	}
	if from := q.requests["ACME"]; from != D("2024-02-01") {
		t.Errorf("ACME refetched from %s, want its inception 2024-02-01", from)
	}
}

func TestUpdateMarketPartialFailure(t *testing.T) {
	ledger := newUpdateLedger()
	m := NewMarket()

	q := newStubQuoter()
	q.currency["ACME"] = "EUR"
	q.prices["ACME"] = 50
	q.fail["ZETA"] = true
	q.currency["EURUSD=X"] = "USD"
	q.prices["EURUSD=X"] = 1.25

	err := UpdateMarket(m, ledger, testTickers(), q, "EUR", false)
	if err == nil {
		t.Fatal("UpdateMarket() = nil error, want the ZETA failure reported")
	}
	if !m.Has("ACME") || !m.Has("EURUSD=X") {
		t.Errorf("successful symbols not merged despite one failure: %v", m.Tickers())
	}
	if m.Has("ZETA") {
		t.Error("failed symbol declared in the market")
	}
}
