package investo

import (
	"testing"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

func TestBuildHistoryDaily(t *testing.T) {
	a := newTestAccounting(t)
	r := date.Range{From: D("2024-02-01"), To: D("2024-02-05")}

	h, err := BuildHistory(a, r, date.Daily)
	if err != nil {
		t.Fatalf("BuildHistory() error: %v", err)
	}
	if len(h.Points) != 5 {
		t.Fatalf("len(Points) = %d, want 5", len(h.Points))
	}
	// Strictly increasing, no duplicates.
	for i := 1; i < len(h.Points); i++ {
		if !h.Points[i-1].On.Before(h.Points[i].On) {
			t.Fatalf("points not strictly increasing at %d: %s then %s",
				i, h.Points[i-1].On, h.Points[i].On)
		}
	}
	if h.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", h.Currency)
	}

	// All five days valued: prices carry forward over the weekend.
	for _, p := range h.Points {
		if !p.Value.IsAvailable() {
			t.Errorf("point %s unavailable: %s", p.On, p.Value.Reason())
		}
	}
}

func TestBuildHistoryInvalidRange(t *testing.T) {
	a := newTestAccounting(t)
	if _, err := BuildHistory(a, date.Range{From: D("2024-02-05"), To: D("2024-02-01")}, date.Daily); err == nil {
		t.Error("BuildHistory(reversed range) = nil error, want invalid range")
	}
}

func TestBuildHistoryMarksGaps(t *testing.T) {
	// ZETA is held from 2024-01-20 but only priced from 2024-02-01: the
	// early points are explicit gaps, never zeros.
	a := newTestAccounting(t)
	a.Ledger = NewLedger("EUR",
		[]CashEvent{depositBal("2024-01-01", 1000, 1000, 2)},
		[]TradeEvent{trade("2024-01-20", zetaISIN, "Zeta Inc", 4, "o1", 3)})

	h, err := BuildHistory(a, date.Range{From: D("2024-01-30"), To: D("2024-02-02")}, date.Daily)
	if err != nil {
		t.Fatalf("BuildHistory() error: %v", err)
	}

	if h.Points[0].Value.IsAvailable() {
		t.Error("2024-01-30 available, want a gap before the first ZETA price")
	}
	if !h.Points[2].Value.IsAvailable() {
		t.Errorf("2024-02-01 unavailable: %s", h.Points[2].Value.Reason())
	}
}

func TestReturnsSkipGaps(t *testing.T) {
	h := &History{Currency: "EUR", Points: []Point{
		{On: D("2024-02-01"), Value: Available(EUR(1000))},
		{On: D("2024-02-02"), Value: Available(EUR(1100))},
		{On: D("2024-02-03"), Value: Unavailable("no price for ZETA")},
		{On: D("2024-02-04"), Value: Available(EUR(1210))},
		{On: D("2024-02-05"), Value: Available(EUR(1089))},
	}}

	returns := h.Returns()
	if len(returns) != 2 {
		t.Fatalf("Returns() = %v, want 2 entries (gap neighbors excluded)", returns)
	}
	if returns[0].On != D("2024-02-02") || !returns[0].Change.Equal(Percent(10)) {
		t.Errorf("Returns()[0] = %s %s, want +10.00%% on 2024-02-02", returns[0].On, returns[0].Change)
	}
	// 2024-02-04 follows a gap: no return. 2024-02-05 over 02-04 is -10%.
	if returns[1].On != D("2024-02-05") || !returns[1].Change.Equal(Percent(-10)) {
		t.Errorf("Returns()[1] = %s %s, want -10.00%% on 2024-02-05", returns[1].On, returns[1].Change)
	}
}

func TestReturnOnDeposits(t *testing.T) {
	h := &History{Currency: "EUR", Points: []Point{
		{On: D("2024-02-01"), Deposits: EUR(0), Value: Available(EUR(0))},
		{On: D("2024-02-02"), Deposits: EUR(1000), Value: Available(EUR(1100))},
		{On: D("2024-02-03"), Deposits: EUR(1000), Value: Unavailable("gap")},
	}}
	returns := h.ReturnOnDeposits()
	if len(returns) != 1 {
		t.Fatalf("ReturnOnDeposits() = %v, want a single entry", returns)
	}
	if !returns[0].Change.Equal(Percent(10)) {
		t.Errorf("ReturnOnDeposits()[0] = %s, want +10.00%%", returns[0].Change)
	}
}

func TestBuildHistoryMonthlyEnds(t *testing.T) {
	a := newTestAccounting(t)
	r := date.Range{From: D("2024-02-01"), To: D("2024-04-15")}
	h, err := BuildHistory(a, r, date.Monthly)
	if err != nil {
		t.Fatalf("BuildHistory() error: %v", err)
	}
	want := []string{"2024-02-29", "2024-03-31", "2024-04-15"}
	if len(h.Points) != len(want) {
		t.Fatalf("len(Points) = %d, want %d", len(h.Points), len(want))
	}
	for i, p := range h.Points {
		if p.On.String() != want[i] {
			t.Errorf("Points[%d].On = %s, want %s", i, p.On, want[i])
		}
	}
}
