// Package renderer turns the computed reports into markdown documents.
//
// Every renderer builds a plain markdown string; the CLI decides whether to
// print it raw or through a terminal formatter. Unavailable amounts render
// as "n/a", never as a number.
package renderer

import (
	"fmt"

	"github.com/kobedemuelenaere/InvestoApp"
)

// cell renders an estimate as a table cell, keeping gaps visible but short.
func cell(e investo.Estimate) string {
	v, ok := e.Value()
	if !ok {
		return "n/a"
	}
	return v.String()
}

// money renders an amount as a plain decimal with its currency code.
func money(m investo.Money) string {
	return fmt.Sprintf("%.2f %s", m.AsFloat(), m.Currency())
}
