package investo

import "github.com/kobedemuelenaere/InvestoApp/date"

// EUR is a helper for tests to create euro money from a const.
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for tests to create dollar money from a const.
func USD(v float64) Money { return M(v, "USD") }

// D is a helper for tests to build a date from its standard string form.
func D(s string) date.Date { return date.MustParse(s) }

// Test instruments with valid check digits.
const (
	acmeISIN = "US0378331005" // mapped to ACME in tests
	zetaISIN = "US38259P5089" // mapped to ZETA, quoted in USD
)

// deposit builds an external deposit cash event without a recorded balance.
func deposit(on string, amount float64, row int) CashEvent {
	return NewCashEvent(D(on), EUR(amount), Money{}, false, "flatex Deposit", "", row)
}

// depositBal builds an external deposit carrying a recorded running balance.
func depositBal(on string, amount, balance float64, row int) CashEvent {
	return NewCashEvent(D(on), EUR(amount), EUR(balance), true, "flatex Deposit", "", row)
}

// trade builds a trade event and its quantity from a signed share count.
func trade(on, isin, name string, qty int, orderID string, row int) TradeEvent {
	description := "Koop"
	if qty < 0 {
		description = "Verkoop"
	}
	return NewTradeEvent(D(on), isin, name, Q(qty), orderID, description, row)
}

// testTickers builds the mapping table used across valuation tests.
func testTickers() *TickerTable {
	t := NewTickerTable()
	t.Add(Mapping{ISIN: acmeISIN, Name: "Acme Corp", Ticker: "ACME", Currency: "EUR"})
	t.Add(Mapping{ISIN: zetaISIN, Name: "Zeta Inc", Ticker: "ZETA", Currency: "USD"})
	return t
}
