package investo

import (
	"regexp"
	"sort"
	"strings"
)

// An order at the broker spreads over several ledger lines sharing one
// order id: the trade leg, the settlement, the fees and tax, and for
// foreign-currency instruments the currency debit or credit in the account
// currency. This file folds those lines back into one Order each.

// Side of an order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Order summarizes all the ledger lines of a single broker order.
type Order struct {
	ID     string
	Trade  TradeEvent // the first fill of the order
	Ticker string     // empty when the instrument has no mapping
	Side   Side
	Shares Quantity // absolute share count, all fills added up
	// UnitPrice is the execution price in the trade currency, as printed in
	// the trade description. Unavailable when the broker did not print one.
	UnitPrice Estimate
	Amount    Money // settlement amount in the account currency, absolute
	Fees      Money // broker transaction fees, absolute
	Tax       Money // transaction tax, absolute
	Total     Money // amount plus costs for a buy, minus costs for a sell
}

// unitPriceRE captures the "@ 1.234,56" execution price fragment of a
// trade description.
var unitPriceRE = regexp.MustCompile(`@\s*([\d.]+,\d+|\d+)`)

// Orders folds the ledger back into one summary per broker order, sorted
// chronologically. An order may execute in several fills, each printed as
// its own trade line: fills sharing an order id fold into the one summary,
// their share counts added up. The ticker table resolves display tickers;
// instruments without a mapping keep an empty ticker, which is not an
// error here.
func Orders(l *Ledger, tickers *TickerTable) []Order {
	// The trade leg names the order; index the cash legs by order id.
	legs := make(map[string][]CashEvent)
	for e := range l.CashEvents() {
		if e.OrderID() == "" {
			continue
		}
		legs[e.OrderID()] = append(legs[e.OrderID()], e)
	}

	// Fold the fills: the first fill names the order, quantities add up.
	type fill struct {
		first  TradeEvent
		shares Quantity
	}
	fills := make(map[string]*fill)
	var ids []string
	for e := range l.Trades() {
		if e.OrderID() == "" {
			continue
		}
		f, ok := fills[e.OrderID()]
		if !ok {
			f = &fill{first: e}
			fills[e.OrderID()] = f
			ids = append(ids, e.OrderID())
		}
		f.shares = f.shares.Add(e.Quantity())
	}

	orders := make([]Order, 0, len(ids))
	for _, id := range ids {
		f := fills[id]
		orders = append(orders, newOrder(l.Currency(), f.first, f.shares, legs[id], tickers))
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Trade.When().Before(orders[j].Trade.When())
	})
	return orders
}

func newOrder(currency string, trade TradeEvent, shares Quantity, legs []CashEvent, tickers *TickerTable) Order {
	o := Order{
		ID:     trade.OrderID(),
		Trade:  trade,
		Side:   Buy,
		Shares: shares,
	}
	if shares.IsNegative() {
		o.Side = Sell
		o.Shares = shares.Neg()
	}

	tradeCurrency := currency
	if mapping, ok := tickers.Resolve(trade.ISIN()); ok {
		o.Ticker = mapping.Ticker
		if mapping.Currency != "" {
			tradeCurrency = mapping.Currency
		}
	}

	o.UnitPrice = Unavailable("no execution price in " + trade.Description())
	if match := unitPriceRE.FindStringSubmatch(trade.Description()); match != nil {
		if price, err := parseDecimalComma(match[1]); err == nil {
			o.UnitPrice = Available(M(price, tradeCurrency))
		}
	}

	o.Amount = M(0, currency)
	o.Fees = M(0, currency)
	o.Tax = M(0, currency)
	var settled, fxSettled Money
	for _, leg := range legs {
		if leg.Amount().Currency() != currency {
			continue // the foreign leg of the order, its counterpart is the fx leg
		}
		switch {
		case strings.Contains(leg.Description(), "Transactiekosten"):
			o.Fees = o.Fees.Add(leg.Amount().Abs())
		case strings.Contains(leg.Description(), "Transactiebelasting"):
			o.Tax = o.Tax.Add(leg.Amount().Abs())
		case leg.Kind() == KindFx:
			fxSettled = fxSettled.Add(leg.Amount().Abs())
		case leg.Kind() == KindSettlement:
			settled = settled.Add(leg.Amount().Abs())
		}
	}
	// A foreign-currency order settles through the currency conversion leg;
	// a domestic one through the trade settlement itself.
	o.Amount = o.Amount.Add(settled)
	if !fxSettled.IsZero() {
		o.Amount = M(0, currency).Add(fxSettled)
	}

	costs := o.Fees.Add(o.Tax)
	if o.Side == Buy {
		o.Total = o.Amount.Add(costs)
	} else {
		o.Total = o.Amount.Sub(costs)
	}
	return o
}
