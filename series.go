package investo

import (
	"fmt"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

// Point is one entry of an aggregated portfolio series: the valuation of
// the portfolio on one grid date.
type Point struct {
	On       date.Date
	Cash     Money
	Deposits Money
	Value    Estimate // unavailable on dates with a market data gap
	Holdings []HoldingValue
}

// PointReturn is a percentage return attached to a date.
type PointReturn struct {
	On     date.Date
	Change Percent
}

// History is the aggregated portfolio series over a date range: one point
// per grid date, strictly increasing, no duplicates.
type History struct {
	Currency string
	Points   []Point
}

// BuildHistory values the portfolio on every grid date of the range: each
// day for the Daily period, each period end otherwise, the last point
// clamped to the range end.
//
// One preloaded Accounting serves the whole range; nothing is fetched per
// date. A valuation gap on one date marks that point unavailable and the
// series carries on: a gap is data, not a failure.
func BuildHistory(a *Accounting, r date.Range, p date.Period) (*History, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid range %s to %s", r.From, r.To)
	}
	h := &History{Currency: a.ReportingCurrency}
	for on := range r.Ends(p) {
		v := a.Valuation(on)
		h.Points = append(h.Points, Point{
			On:       on,
			Cash:     v.Cash,
			Deposits: v.Deposits,
			Value:    v.Total,
			Holdings: v.Holdings,
		})
	}
	return h, nil
}

// Returns computes the point-over-point percentage returns of the total
// value.
//
// A return exists only between consecutive points whose values are both
// available; points on either side of a gap are excluded, never
// interpolated and never zero-filled.
func (h *History) Returns() []PointReturn {
	var out []PointReturn
	var prev Money
	hasPrev := false
	for _, p := range h.Points {
		value, ok := p.Value.Value()
		if !ok {
			hasPrev = false
			continue
		}
		if hasPrev && !prev.IsZero() {
			out = append(out, PointReturn{On: p.On, Change: NewPerformance(prev, value).Percent()})
		}
		prev, hasPrev = value, true
	}
	return out
}

// ReturnOnDeposits computes, per available point, the portfolio gain
// relative to the external money put in: (value - deposits) / deposits.
// Points with no deposits yet, or no available value, are skipped.
func (h *History) ReturnOnDeposits() []PointReturn {
	var out []PointReturn
	for _, p := range h.Points {
		value, ok := p.Value.Value()
		if !ok || p.Deposits.IsZero() {
			continue
		}
		out = append(out, PointReturn{On: p.On, Change: NewPerformance(p.Deposits, value).Percent()})
	}
	return out
}
