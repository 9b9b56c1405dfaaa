package investo

// Estimate is a monetary amount that may be unavailable when the market data
// needed to compute it is missing. It replaces NaN or zero sentinels: an
// unavailable amount cannot leak into arithmetic as a number.
type Estimate struct {
	value  Money
	reason string
	ok     bool
}

// Available returns an Estimate holding a known amount.
func Available(m Money) Estimate { return Estimate{value: m, ok: true} }

// Unavailable returns an Estimate with no amount and the reason why.
func Unavailable(reason string) Estimate { return Estimate{reason: reason} }

// Value returns the amount and true, or a zero Money and false when the
// estimate is unavailable.
func (e Estimate) Value() (Money, bool) { return e.value, e.ok }

// IsAvailable reports whether the estimate holds an amount.
func (e Estimate) IsAvailable() bool { return e.ok }

// Reason returns why the estimate is unavailable, or "" when it is available.
func (e Estimate) Reason() string { return e.reason }

// Add sums two estimates. Unavailability propagates: the sum of anything
// with an unavailable estimate is unavailable, and reasons accumulate.
func (e Estimate) Add(n Estimate) Estimate {
	if e.ok && n.ok {
		return Available(e.value.Add(n.value))
	}
	reason := e.reason
	switch {
	case reason == "":
		reason = n.reason
	case n.reason != "":
		reason = reason + "; " + n.reason
	}
	return Unavailable(reason)
}

// String renders the amount, or "n/a (reason)" when unavailable.
func (e Estimate) String() string {
	if e.ok {
		return e.value.String()
	}
	if e.reason == "" {
		return "n/a"
	}
	return "n/a (" + e.reason + ")"
}
