package renderer

import (
	"bytes"
	"fmt"

	"github.com/kobedemuelenaere/InvestoApp"
	"github.com/kobedemuelenaere/InvestoApp/date"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the aggregated series, one row per grid date with
// the point-over-point return and the return on deposits. Dates on either
// side of a data gap have no point-over-point return.
func HistoryMarkdown(h *investo.History) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio History (%s)", h.Currency))

	byDate := func(returns []investo.PointReturn) map[date.Date]investo.Percent {
		out := make(map[date.Date]investo.Percent, len(returns))
		for _, r := range returns {
			out[r.On] = r.Change
		}
		return out
	}
	changes := byDate(h.Returns())
	onDeposits := byDate(h.ReturnOnDeposits())

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Deposited", "Cash", "Value", "Return", "On Deposits"},
	}
	for _, p := range h.Points {
		change := "n/a"
		if c, ok := changes[p.On]; ok {
			change = c.SignedString()
		}
		deposits := "n/a"
		if d, ok := onDeposits[p.On]; ok {
			deposits = d.SignedString()
		}
		table.Rows = append(table.Rows, []string{
			p.On.String(),
			money(p.Deposits),
			money(p.Cash),
			cell(p.Value),
			change,
			deposits,
		})
	}
	doc.Table(table)

	return doc.String()
}
