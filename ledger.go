package investo

import (
	"iter"
	"sort"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

// Instrument is one distinct traded product found in the ledger.
type Instrument struct {
	ISIN string
	Name string
}

// Ledger holds the two event streams replayed from an account export.
//
// A Ledger is built once and never mutated: events are value types, the
// streams are always in chronological order, and same-date events keep the
// order they were given in. Snapshots are pure functions of a Ledger and a
// date.
type Ledger struct {
	currency string
	cash     []CashEvent
	trades   []TradeEvent
}

// NewLedger builds a ledger from event streams, in the reporting currency
// of the account.
//
// Both streams are stable-sorted by date: events sharing a date keep their
// given order, so "latest in input order" stays meaningful for running
// balances recorded several times a day.
func NewLedger(currency string, cash []CashEvent, trades []TradeEvent) *Ledger {
	l := &Ledger{
		currency: currency,
		cash:     append([]CashEvent(nil), cash...),
		trades:   append([]TradeEvent(nil), trades...),
	}
	sort.SliceStable(l.cash, func(i, j int) bool {
		return l.cash[i].When().Before(l.cash[j].When())
	})
	sort.SliceStable(l.trades, func(i, j int) bool {
		return l.trades[i].When().Before(l.trades[j].When())
	})
	return l
}

// Currency returns the reporting currency of the account.
func (l *Ledger) Currency() string { return l.currency }

// NumCash returns the number of cash events.
func (l *Ledger) NumCash() int { return len(l.cash) }

// NumTrades returns the number of trade events.
func (l *Ledger) NumTrades() int { return len(l.trades) }

// CashEvents returns an iterator over all cash events in chronological order.
func (l *Ledger) CashEvents() iter.Seq[CashEvent] {
	return func(yield func(CashEvent) bool) {
		for _, e := range l.cash {
			if !yield(e) {
				return
			}
		}
	}
}

// Trades returns an iterator over all trade events in chronological order.
func (l *Ledger) Trades() iter.Seq[TradeEvent] {
	return func(yield func(TradeEvent) bool) {
		for _, e := range l.trades {
			if !yield(e) {
				return
			}
		}
	}
}

// TradesOf returns an iterator over the trade events of one instrument, in
// chronological order.
func (l *Ledger) TradesOf(isin string) iter.Seq[TradeEvent] {
	return func(yield func(TradeEvent) bool) {
		for _, e := range l.trades {
			if e.ISIN() != isin {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Instruments returns an iterator over the distinct instruments ever traded,
// sorted by ISIN. The name is the most recent one the broker printed.
func (l *Ledger) Instruments() iter.Seq[Instrument] {
	names := make(map[string]string)
	for _, e := range l.trades {
		names[e.ISIN()] = e.Name()
	}
	isins := make([]string, 0, len(names))
	for isin := range names {
		isins = append(isins, isin)
	}
	sort.Strings(isins)
	return func(yield func(Instrument) bool) {
		for _, isin := range isins {
			if !yield(Instrument{ISIN: isin, Name: names[isin]}) {
				return
			}
		}
	}
}

// InceptionOf returns the date of the first trade of an instrument.
func (l *Ledger) InceptionOf(isin string) (date.Date, bool) {
	for _, e := range l.trades {
		if e.ISIN() == isin {
			return e.When(), true
		}
	}
	return date.Date{}, false
}

// OldestDate returns the date of the earliest event in the ledger.
func (l *Ledger) OldestDate() date.Date {
	var on date.Date
	if len(l.cash) > 0 {
		on = l.cash[0].When()
	}
	if len(l.trades) > 0 && (on.IsZero() || l.trades[0].When().Before(on)) {
		on = l.trades[0].When()
	}
	return on
}

// NewestDate returns the date of the latest event in the ledger.
func (l *Ledger) NewestDate() date.Date {
	var on date.Date
	if len(l.cash) > 0 {
		on = l.cash[len(l.cash)-1].When()
	}
	if len(l.trades) > 0 && l.trades[len(l.trades)-1].When().After(on) {
		on = l.trades[len(l.trades)-1].When()
	}
	return on
}
