package investo

import (
	"fmt"
	"math"
	"sort"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

// PriceSeries holds the date-indexed closing prices of one quoted symbol,
// and the currency those prices are quoted in. The series is sparse: only
// trading days have entries.
type PriceSeries struct {
	ticker   string
	currency string
	prices   date.History[float64]
}

func (s *PriceSeries) Ticker() string   { return s.ticker }
func (s *PriceSeries) Currency() string { return s.currency }

// Prices returns the underlying history, for merging fetched data in.
func (s *PriceSeries) Prices() *date.History[float64] { return &s.prices }

// Market holds the price and exchange-rate series for a set of tickers.
//
// It is populated once (from the on-disk store, then from fetched updates)
// before valuation begins, and is read-only afterwards, so concurrent as-of
// queries need no locking.
type Market struct {
	series []*PriceSeries
	index  map[string]*PriceSeries
}

// NewMarket returns a new empty market data collection.
func NewMarket() *Market {
	return &Market{index: make(map[string]*PriceSeries)}
}

func (m *Market) Has(ticker string) bool {
	_, ok := m.index[ticker]
	return ok
}

func (m *Market) Get(ticker string) *PriceSeries { return m.index[ticker] }

// Declare registers a ticker and its quote currency, returning its series.
// Declaring an existing ticker returns the existing series; a conflicting
// currency is an error.
func (m *Market) Declare(ticker, currency string) (*PriceSeries, error) {
	if s, ok := m.index[ticker]; ok {
		if s.currency != currency {
			return nil, fmt.Errorf("ticker %q already declared in %s, not %s", ticker, s.currency, currency)
		}
		return s, nil
	}
	s := &PriceSeries{ticker: ticker, currency: currency}
	m.series = append(m.series, s)
	m.index[ticker] = s
	return s, nil
}

// Append records one closing price. The ticker must have been declared.
func (m *Market) Append(ticker string, on date.Date, price float64) error {
	s, ok := m.index[ticker]
	if !ok {
		return fmt.Errorf("unknown ticker %q", ticker)
	}
	s.prices.Append(on, price)
	return nil
}

// Tickers returns all declared tickers in alphabetical order.
func (m *Market) Tickers() []string {
	tickers := make([]string, 0, len(m.series))
	for _, s := range m.series {
		tickers = append(tickers, s.ticker)
	}
	sort.Strings(tickers)
	return tickers
}

// PriceAsOf returns the most recent closing price of a ticker at or before
// 'day', along with the date that price was observed.
//
// Prices dated after 'day' are invisible to this query even when they are
// the nearest ones: historical snapshots must never see the future. When no
// price exists at or before 'day' it returns ok=false; callers must treat
// that as a gap, never as zero.
func (m *Market) PriceAsOf(ticker string, day date.Date) (price float64, on date.Date, ok bool) {
	s, exists := m.index[ticker]
	if !exists {
		return 0, date.Date{}, false
	}
	on, price, ok = s.prices.AsOf(day)
	return price, on, ok
}

// fxTicker is the quote symbol of a currency pair at the market data
// source, e.g. "EURUSD=X" for the price of one euro in dollars.
func fxTicker(p Pair) string { return p.String() + "=X" }

// RateAsOf returns the exchange rate converting one unit of 'base' into
// 'quote' as of 'day', with the same no-look-ahead policy as PriceAsOf.
// When only the inverse pair is quoted its reciprocal serves, rounded to 5
// decimal places. A malformed currency code is a gap, not a panic.
func (m *Market) RateAsOf(base, quote string, day date.Date) (rate float64, on date.Date, ok bool) {
	if base == quote {
		return 1, day, true
	}
	pair, err := NewPair(base, quote)
	if err != nil {
		return 0, date.Date{}, false
	}
	if rate, on, ok = m.PriceAsOf(fxTicker(pair), day); ok {
		return rate, on, true
	}
	if rate, on, ok = m.PriceAsOf(fxTicker(pair.Inverse()), day); ok && rate != 0 {
		return math.Round(1e5/rate) / 1e5, on, true
	}
	return 0, date.Date{}, false
}
