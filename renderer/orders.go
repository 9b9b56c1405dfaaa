package renderer

import (
	"bytes"
	"fmt"

	"github.com/kobedemuelenaere/InvestoApp"
	md "github.com/nao1215/markdown"
)

// OrdersMarkdown renders the broker order summaries, one row per order.
func OrdersMarkdown(orders []investo.Order) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Orders (%d)", len(orders)))
	if len(orders) == 0 {
		doc.PlainText("No orders in the ledger.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Ticker", "Type", "Shares", "Price", "Amount", "Costs", "Total"},
	}
	for _, o := range orders {
		ticker := o.Ticker
		if ticker == "" {
			ticker = o.Trade.ISIN()
		}
		table.Rows = append(table.Rows, []string{
			o.Trade.When().String(),
			ticker,
			string(o.Side),
			o.Shares.String(),
			cell(o.UnitPrice),
			money(o.Amount),
			money(o.Fees.Add(o.Tax)),
			money(o.Total),
		})
	}
	doc.Table(table)

	return doc.String()
}
