package investo

import (
	"errors"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/kobedemuelenaere/InvestoApp/date"
	"github.com/shopspring/decimal"
)

// Accounting combines the transactional record with market data. It serves
// as the central point for querying portfolio state and valuing it: the
// Ledger tells what is held, the TickerTable tells where it is quoted, the
// Market tells what it is worth.
//
// The market data is preloaded once; Accounting never fetches anything, so
// valuations over a whole date range reuse the same read-only data.
type Accounting struct {
	Ledger            *Ledger
	Market            *Market
	Tickers           *TickerTable
	ReportingCurrency string
}

// ValidateCurrency checks that a string is a known ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid currency format: must be 3 uppercase letters, got %q", code)
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// NewAccounting creates an accounting system over a ledger, a preloaded
// market and an instrument mapping.
func NewAccounting(ledger *Ledger, market *Market, tickers *TickerTable, reportingCurrency string) (*Accounting, error) {
	if err := ValidateCurrency(reportingCurrency); err != nil {
		return nil, fmt.Errorf("invalid reporting currency: %w", err)
	}
	return &Accounting{
		Ledger:            ledger,
		Market:            market,
		Tickers:           tickers,
		ReportingCurrency: reportingCurrency,
	}, nil
}

// CheckMappings eagerly validates that every instrument ever traded has a
// usable ticker mapping, joining one error per uncovered instrument.
// Valuation still proceeds without it: affected holdings are reported as
// unvaluable instead.
func (a *Accounting) CheckMappings() error {
	var errs error
	for _, e := range a.Tickers.Missing(a.Ledger) {
		errs = errors.Join(errs, e)
	}
	return errs
}

// Convert expresses an amount in the reporting currency using the exchange
// rate as of 'on'. An amount already in the reporting currency is returned
// unchanged without any rate lookup. A missing rate is an explicit
// *PriceGapError: the amount is never passed through mislabeled as
// converted.
func (a *Accounting) Convert(m Money, on date.Date) (Money, error) {
	if m.Currency() == a.ReportingCurrency {
		return m, nil
	}
	pair, err := NewPair(m.Currency(), a.ReportingCurrency)
	if err != nil {
		return Money{}, fmt.Errorf("cannot convert %s to %s: %w", m.Currency(), a.ReportingCurrency, err)
	}
	rate, _, ok := a.Market.RateAsOf(pair.Base(), pair.Quote(), on)
	if !ok {
		return Money{}, &PriceGapError{Ticker: fxTicker(pair), On: on}
	}
	return M(m.value.Mul(decimal.NewFromFloat(rate)), a.ReportingCurrency), nil
}

// HoldingValue is the valuation of a single holding on a given date.
type HoldingValue struct {
	Instrument Instrument
	Ticker     string // empty when the instrument has no mapping
	Quantity   Quantity
	Price      Estimate  // unit price in the reporting currency
	PricedOn   date.Date // the date the price was observed, at or before the valuation date
	Value      Estimate
}

// Valuation is the portfolio state on one date together with the market
// value of every holding and their total, all in the reporting currency.
type Valuation struct {
	On       date.Date
	Currency string
	Cash     Money
	Deposits Money
	Holdings []HoldingValue
	Total    Estimate // cash plus holdings; unavailable when any held instrument cannot be valued
	Warnings []ConsistencyWarning
}

// Valuation computes the portfolio state on 'on' and values it against the
// market.
//
// Every holding with a non-zero quantity needs a mapping, a price at or
// before 'on' and, for foreign-currency instruments, an exchange rate. Any
// gap turns that holding's value, and the total, into an explicit
// unavailable estimate: a missing number is never zero and never NaN.
// Sold-out holdings stay listed with a zero value, no market data needed.
func (a *Accounting) Valuation(on date.Date) *Valuation {
	snapshot := NewSnapshot(a.Ledger, on)

	v := &Valuation{
		On:       on,
		Currency: a.ReportingCurrency,
		Cash:     snapshot.Cash(),
		Deposits: snapshot.Deposits(),
		Warnings: snapshot.Warnings(),
	}

	total := Available(v.Cash)
	for instrument, quantity := range snapshot.Holdings() {
		hv := HoldingValue{Instrument: instrument, Quantity: quantity}
		mapping, mapped := a.Tickers.Resolve(instrument.ISIN)
		if mapped {
			hv.Ticker = mapping.Ticker
		}

		switch {
		case quantity.IsZero():
			// Sold out: listed, worth zero, never a market data gap.
			hv.Value = Available(M(0, a.ReportingCurrency))
		case !mapped || mapping.Ticker == "":
			e := &MappingError{ISIN: instrument.ISIN, Name: instrument.Name}
			hv.Value = Unavailable(e.Error())
		default:
			hv.Price, hv.PricedOn, hv.Value = a.value(mapping, quantity, on)
		}

		total = total.Add(hv.Value)
		v.Holdings = append(v.Holdings, hv)
	}
	v.Total = total
	return v
}

// value prices one mapped, non-zero holding: price as of the date, convert
// to the reporting currency, multiply by the quantity.
func (a *Accounting) value(mapping Mapping, quantity Quantity, on date.Date) (unit Estimate, pricedOn date.Date, value Estimate) {
	price, pricedOn, ok := a.Market.PriceAsOf(mapping.Ticker, on)
	if !ok {
		e := &PriceGapError{Ticker: mapping.Ticker, On: on}
		return Unavailable(e.Error()), date.Date{}, Unavailable(e.Error())
	}

	currency := mapping.Currency
	if currency == "" {
		currency = a.ReportingCurrency
	}
	converted, err := a.Convert(M(price, currency), on)
	if err != nil {
		return Unavailable(err.Error()), pricedOn, Unavailable(err.Error())
	}
	return Available(converted), pricedOn, Available(converted.Mul(quantity))
}
