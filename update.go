package investo

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

// This file builds fetch requests from the ledger and merges the fetched
// price history into the market store.

// Quoter is the external price source: symbol history over a date range
// plus the currency it is quoted in. *Yahoo implements it; tests stub it.
type Quoter interface {
	FetchHistory(symbol string, from, to date.Date) (*date.History[float64], string, error)
}

// fetchRequest is one symbol to refresh and the range it is missing.
type fetchRequest struct {
	ticker   string
	currency string // declared currency, "" when unknown yet
	from, to date.Date
}

// maxConcurrentFetches bounds the parallel calls to the price source.
const maxConcurrentFetches = 4

// fetchRanges builds the per-ticker ranges to request: from the
// instrument's first trade (or the day after its last stored price) up to
// today. With inception set, full ranges are re-requested.
func fetchRanges(m *Market, l *Ledger, t *TickerTable, reporting string, inception bool) []fetchRequest {
	today := date.Today()
	var requests []fetchRequest

	rangeFor := func(ticker string, origin date.Date) (fetchRequest, bool) {
		from := origin
		var currency string
		if s := m.Get(ticker); s != nil {
			currency = s.Currency()
			if last, _ := s.Prices().Latest(); !inception && !last.IsZero() {
				from = last.Add(1)
			}
		}
		if from.IsZero() || from.After(today) {
			return fetchRequest{}, false
		}
		return fetchRequest{ticker: ticker, currency: currency, from: from, to: today}, true
	}

	foreign := make(map[string]bool)
	for ins := range l.Instruments() {
		mapping, ok := t.Resolve(ins.ISIN)
		if !ok || mapping.Ticker == "" {
			// Surfaced by the eager mapping check, nothing to fetch here.
			continue
		}
		if mapping.Currency != "" && mapping.Currency != reporting {
			foreign[mapping.Currency] = true
		}
		origin, _ := l.InceptionOf(ins.ISIN)
		if req, ok := rangeFor(mapping.Ticker, origin); ok {
			req.currency = mapping.Currency
			requests = append(requests, req)
		}
	}

	// Conversions need the rate series from the first event on.
	for currency := range foreign {
		pair, err := NewPair(reporting, currency)
		if err != nil {
			log.Printf("warning: no rate series for %s/%s: %v", reporting, currency, err)
			continue
		}
		if req, ok := rangeFor(fxTicker(pair), l.OldestDate()); ok {
			requests = append(requests, req)
		}
	}
	return requests
}

// UpdateMarket fetches the missing price and exchange-rate history for
// every mapped instrument and merges it into the market.
//
// Fetches run concurrently, bounded; the market is only written from this
// single merge point, before any valuation reads it. A symbol that fails
// to fetch is logged and reported in the joined error, the others are
// still merged: a fetch failure is a data gap, not an abort.
func UpdateMarket(m *Market, l *Ledger, t *TickerTable, q Quoter, reporting string, inception bool) error {
	requests := fetchRanges(m, l, t, reporting, inception)

	type fetched struct {
		req      fetchRequest
		prices   *date.History[float64]
		currency string
		err      error
	}
	results := make([]fetched, len(requests))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentFetches)
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req fetchRequest) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			prices, currency, err := q.FetchHistory(req.ticker, req.from, req.to)
			results[i] = fetched{req: req, prices: prices, currency: currency, err: err}
		}(i, req)
	}
	wg.Wait()

	var errs error
	for _, r := range results {
		if r.err != nil {
			log.Printf("warning: could not update %q: %v", r.req.ticker, r.err)
			errs = errors.Join(errs, fmt.Errorf("update %q: %w", r.req.ticker, r.err))
			continue
		}
		if r.req.currency != "" && r.currency != r.req.currency {
			log.Printf("warning: %q is quoted in %s at the source, mapped as %s", r.req.ticker, r.currency, r.req.currency)
		}
		series, err := m.Declare(r.req.ticker, r.currency)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		series.Prices().Merge(r.prices)
		log.Printf("updated %q: %d prices", r.req.ticker, r.prices.Len())
	}
	return errs
}
