package investo

// Performance holds the starting value and the calculated change between two
// points of a series.
type Performance struct {
	Start, End Money
}

func NewPerformance(start, end Money) Performance {
	return Performance{Start: start, End: end}
}

func (p Performance) Change() Money {
	return p.End.Sub(p.Start)
}

func (p Performance) Percent() Percent {
	if p.Start.IsZero() {
		return 0
	}
	return Percent(100 * p.Change().AsFloat() / p.Start.AsFloat())
}
