package renderer

import (
	"bytes"
	"fmt"

	"github.com/kobedemuelenaere/InvestoApp"
	md "github.com/nao1215/markdown"
)

// TickersMarkdown renders the instrument mapping table. Rows without a
// ticker are the ones still to fill in.
func TickersMarkdown(t *investo.TickerTable) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Instrument Mappings (%d)", t.Len()))

	table := md.TableSet{
		Header: []string{"ISIN", "Name", "Ticker", "Currency"},
	}
	for _, m := range t.Mappings() {
		ticker := m.Ticker
		if ticker == "" {
			ticker = "(missing)"
		}
		table.Rows = append(table.Rows, []string{m.ISIN, m.Name, ticker, m.Currency})
	}
	doc.Table(table)

	return doc.String()
}

// ImportMarkdown renders the outcome of an account import: the row counts
// and every rejected row with its reason.
func ImportMarkdown(r *investo.ImportReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Import Report")
	doc.BulletList(
		fmt.Sprintf("rows read: %d", r.Rows),
		fmt.Sprintf("accepted: %d", r.Accepted),
		fmt.Sprintf("dropped as noise: %d", r.Dropped),
		fmt.Sprintf("rejected: %d", len(r.Rejects)),
	)
	if len(r.Rejects) > 0 {
		doc.H2("Rejected Rows")
		var items []string
		for _, e := range r.Rejects {
			items = append(items, e.Error())
		}
		doc.BulletList(items...)
	}

	return doc.String()
}
