package renderer

import (
	"bytes"
	"fmt"

	"github.com/kobedemuelenaere/InvestoApp"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders one valuation: the cash, deposits and total on
// that date, and the detail of every holding.
func SummaryMarkdown(v *investo.Valuation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio on %s", v.On))
	doc.PlainText(fmt.Sprintf("Total Value: %s", cell(v.Total)))
	doc.PlainText(fmt.Sprintf("Cash: %s", money(v.Cash)))
	doc.PlainText(fmt.Sprintf("Deposited: %s", money(v.Deposits)))
	if total, ok := v.Total.Value(); ok && !v.Deposits.IsZero() {
		gain := total.Sub(v.Deposits)
		perf := investo.NewPerformance(v.Deposits, total)
		doc.PlainText(fmt.Sprintf("Gain on Deposits: %s (%s)", money(gain), perf.Percent().SignedString()))
	}

	if len(v.Holdings) > 0 {
		doc.H2("Holdings")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{"Ticker", "Name", "Shares", "Price", "Priced On", "Value"},
		}
		for _, h := range v.Holdings {
			ticker := h.Ticker
			if ticker == "" {
				ticker = h.Instrument.ISIN
			}
			pricedOn := ""
			if h.Price.IsAvailable() {
				pricedOn = h.PricedOn.String()
			}
			table.Rows = append(table.Rows, []string{
				ticker,
				h.Instrument.Name,
				h.Quantity.String(),
				cell(h.Price),
				pricedOn,
				cell(h.Value),
			})
		}
		doc.Table(table)
	}

	if reason := v.Total.Reason(); reason != "" {
		doc.H2("Gaps")
		doc.PlainText(reason)
	}
	if len(v.Warnings) > 0 {
		doc.H2("Warnings")
		var items []string
		for _, w := range v.Warnings {
			items = append(items, w.String())
		}
		doc.BulletList(items...)
	}

	return doc.String()
}
