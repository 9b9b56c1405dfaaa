package investo

import (
	"iter"
	"sort"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

// balanceTolerance is how far the recorded running balance may drift from
// the replayed delta sum before a ConsistencyWarning is raised.
const balanceTolerance = 0.01

// Snapshot is the state of the portfolio at a single point in time: cash,
// holdings and cumulative external deposits, replayed from the ledger
// events dated at or before 'on'.
//
// A Snapshot is a pure function of (ledger, on). It is computed fresh per
// query and holds no link to market data: valuation is a downstream step.
type Snapshot struct {
	ledger *Ledger
	on     date.Date
}

// NewSnapshot computes the portfolio state on a given date.
func NewSnapshot(l *Ledger, on date.Date) *Snapshot {
	return &Snapshot{ledger: l, on: on}
}

// On returns the date of the snapshot.
func (s *Snapshot) On() date.Date { return s.on }

// cashEvents iterates the cash events dated at or before the snapshot date,
// in ledger order.
func (s *Snapshot) cashEvents() iter.Seq[CashEvent] {
	return func(yield func(CashEvent) bool) {
		for _, e := range s.ledger.cash {
			if e.When().After(s.on) {
				break
			}
			if !yield(e) {
				return
			}
		}
	}
}

// trades iterates the trade events dated at or before the snapshot date.
func (s *Snapshot) trades() iter.Seq[TradeEvent] {
	return func(yield func(TradeEvent) bool) {
		for _, e := range s.ledger.trades {
			if e.When().After(s.on) {
				break
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Cash returns the cash balance on the snapshot date.
//
// The latest eligible recorded running balance wins; eligible means the
// balance is in the account currency and the line is not an internal sweep.
// When no balance was ever recorded the sum of cash deltas serves instead.
func (s *Snapshot) Cash() Money {
	recorded, ok := s.recordedBalance()
	if ok {
		return recorded
	}
	return s.deltaSum()
}

// recordedBalance returns the latest eligible running balance at or before
// the snapshot date. Later in ledger order wins among same-date entries.
func (s *Snapshot) recordedBalance() (Money, bool) {
	var last Money
	var found bool
	for e := range s.cashEvents() {
		balance, ok := e.Balance()
		if !ok {
			continue
		}
		if balance.Currency() != s.ledger.currency {
			// Balance of a foreign-currency sub-account, never authoritative.
			continue
		}
		if e.Kind() == KindSweep {
			continue
		}
		last, found = balance, true
	}
	return last, found
}

// deltaSum replays the running sum of all cash mutations in the account
// currency up to the snapshot date.
func (s *Snapshot) deltaSum() Money {
	total := M(0, s.ledger.currency)
	for e := range s.cashEvents() {
		if e.Amount().Currency() != s.ledger.currency {
			continue
		}
		total = total.Add(e.Amount())
	}
	return total
}

// Warnings cross-checks the recorded running balance against the replayed
// delta sum. Both ways of computing cash must agree when both are
// available; a disagreement beyond the tolerance is reported, and the
// recorded balance stays authoritative.
func (s *Snapshot) Warnings() []ConsistencyWarning {
	recorded, ok := s.recordedBalance()
	if !ok {
		return nil
	}
	computed := s.deltaSum()
	if recorded.Sub(computed).Abs().GreaterThan(M(balanceTolerance, s.ledger.currency)) {
		return []ConsistencyWarning{{On: s.on, Recorded: recorded, Computed: computed}}
	}
	return nil
}

// Position returns the net quantity of an instrument on the snapshot date.
// An instrument never traded yields zero, same as one fully sold out.
func (s *Snapshot) Position(isin string) Quantity {
	var q Quantity
	for e := range s.trades() {
		if e.ISIN() == isin {
			q = q.Add(e.Quantity())
		}
	}
	return q
}

// Holdings returns an iterator over every instrument traded at or before
// the snapshot date with its net quantity, sorted by ISIN. Instruments that
// net to zero are retained with quantity 0: "sold out" is not "never held".
func (s *Snapshot) Holdings() iter.Seq2[Instrument, Quantity] {
	positions := make(map[string]Quantity)
	names := make(map[string]string)
	for e := range s.trades() {
		positions[e.ISIN()] = positions[e.ISIN()].Add(e.Quantity())
		names[e.ISIN()] = e.Name()
	}
	isins := make([]string, 0, len(positions))
	for isin := range positions {
		isins = append(isins, isin)
	}
	sort.Strings(isins)
	return func(yield func(Instrument, Quantity) bool) {
		for _, isin := range isins {
			if !yield(Instrument{ISIN: isin, Name: names[isin]}, positions[isin]) {
				return
			}
		}
	}
}

// Deposits returns the cumulative net external flow up to the snapshot
// date: deposits plus withdrawals, by their signed amounts. Dividends,
// interest, fees and trade settlements never count.
func (s *Snapshot) Deposits() Money {
	total := M(0, s.ledger.currency)
	for e := range s.cashEvents() {
		if !e.Kind().IsExternal() {
			continue
		}
		if e.Amount().Currency() != s.ledger.currency {
			continue
		}
		total = total.Add(e.Amount())
	}
	return total
}
