package date

import (
	"fmt"
	"iter"
	"time"
)

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range spanning the well known period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains returns true if the date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// IsValid returns true when the range boundaries are set and ordered.
func (r Range) IsValid() bool { return !r.From.IsZero() && !r.To.IsZero() && !r.To.Before(r.From) }

// Days returns an iterator over every date in the range, in ascending order.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for on := r.From; !on.After(r.To); on = on.Add(1) {
			if !yield(on) {
				return
			}
		}
	}
}

// Ends returns an iterator over the end date of each period within the
// range, ascending, the last point clamped to the range end. For Daily it
// yields every date. Dates are strictly increasing, so a consumer appending
// them builds a series with no duplicates.
func (r Range) Ends(p Period) iter.Seq[Date] {
	if p == Daily {
		return r.Days()
	}
	return func(yield func(Date) bool) {
		for on := r.From; !on.After(r.To); on = on.EndOf(p).Add(1) {
			end := on.EndOf(p)
			if end.After(r.To) {
				end = r.To
			}
			if !yield(end) {
				return
			}
		}
	}
}

// Period returns the period of this range if it is a standard one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From == r.To:
		return Daily, true
	case r.From.Weekday() == time.Monday && r.From.EndOf(Weekly) == r.To:
		return Weekly, true
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == r.To:
		return Quarterly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Name names the period of the range, or "special" when it is not a
// standard one.
func (r Range) Name() string {
	p, ok := r.Period()
	if ok {
		return p.String()
	}
	return "special"
}

// Identifier computes a unique identifier for the Range.
// If the range is a standard period, use a short insightful name.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}

	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		_, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", r.From.Year(), week)
	case Monthly:
		return r.From.Formatted("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Formatted("2006")
	default:
		panic("unknown period")
	}
}
