package investo

import (
	"fmt"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

// ParseError reports a single rejected row of the account export. Rows are
// rejected individually, parsing always continues with the next one.
type ParseError struct {
	Row    int    // 1-based row number in the source file, header included
	Reason string // what made the row unusable
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d rejected: %s", e.Row, e.Reason)
}

// MappingError reports a traded instrument with no entry in the ticker
// table. The holding stays in the books but cannot be valued.
type MappingError struct {
	ISIN string
	Name string // product name from the ledger, for the message only
}

func (e *MappingError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("no ticker mapping for %s", e.ISIN)
	}
	return fmt.Sprintf("no ticker mapping for %s (%s)", e.ISIN, e.Name)
}

// PriceGapError reports an as-of lookup that found no price or exchange rate
// at or before the requested date.
type PriceGapError struct {
	Ticker string
	On     date.Date
}

func (e *PriceGapError) Error() string {
	return fmt.Sprintf("no price for %s at or before %s", e.Ticker, e.On)
}

// ConsistencyWarning reports a recorded running balance that disagrees with
// the sum of cash deltas on the same date. Non fatal: the recorded balance
// is authoritative, the disagreement is kept for diagnosis.
type ConsistencyWarning struct {
	On       date.Date
	Recorded Money // the balance the source wrote down
	Computed Money // the balance replayed from the deltas
}

func (w ConsistencyWarning) String() string {
	return fmt.Sprintf("on %s recorded balance %s differs from delta sum %s",
		w.On, w.Recorded, w.Computed)
}
