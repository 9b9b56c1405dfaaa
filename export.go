package investo

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSV exports of the aggregated series and the order summaries, for
// spreadsheets and external charting. Unavailable values export as empty
// cells: a gap must stay visibly a gap, never a 0.00.

// csvMoney renders a monetary amount as a plain decimal cell.
func csvMoney(m Money) string { return fmt.Sprintf("%.2f", m.AsFloat()) }

// csvEstimate renders an estimate, or an empty cell when unavailable.
func csvEstimate(e Estimate) string {
	v, ok := e.Value()
	if !ok {
		return ""
	}
	return csvMoney(v)
}

// EncodeHistoryCSV writes the aggregated series with one row per date and
// holding, plus a CASH and a PORTFOLIO row per date.
func EncodeHistoryCSV(w io.Writer, h *History) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Date", "Ticker", "Name", "Shares",
		"Value_Per_Share_" + h.Currency,
		"Total_Value_" + h.Currency,
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range h.Points {
		on := p.On.String()
		for _, hv := range p.Holdings {
			name := hv.Ticker
			if name == "" {
				name = hv.Instrument.ISIN
			}
			if err := cw.Write([]string{
				on, name, hv.Instrument.Name, hv.Quantity.String(),
				csvEstimate(hv.Price), csvEstimate(hv.Value),
			}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{on, "CASH", "Cash", "", "", csvMoney(p.Cash)}); err != nil {
			return err
		}
		if err := cw.Write([]string{on, "PORTFOLIO", "Total Portfolio", "", "", csvEstimate(p.Value)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeOrdersCSV writes one row per broker order.
func EncodeOrdersCSV(w io.Writer, orders []Order) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Order_ID", "Date", "Ticker", "Product", "Type", "Shares",
		"Price_Per_Share", "Amount", "Fees", "Tax", "Total",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, o := range orders {
		if err := cw.Write([]string{
			o.ID,
			o.Trade.When().String(),
			o.Ticker,
			o.Trade.Name(),
			string(o.Side),
			o.Shares.String(),
			csvEstimate(o.UnitPrice),
			csvMoney(o.Amount),
			csvMoney(o.Fees),
			csvMoney(o.Tax),
			csvMoney(o.Total),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
