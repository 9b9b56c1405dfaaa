package investo

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Mapping links one traded instrument to the symbol quoting it and the
// currency it trades in.
type Mapping struct {
	ISIN     string
	Name     string // product name, informational
	Ticker   string // quote symbol at the market data source
	Currency string // trading currency of the instrument
}

// TickerTable is the instrument mapping: every ISIN appearing in the trade
// stream must have an entry before valuation. Coverage is validated eagerly
// with Missing, not discovered at valuation time.
type TickerTable struct {
	mappings []Mapping
	index    map[string]int // by ISIN
}

// NewTickerTable returns an empty table.
func NewTickerTable() *TickerTable {
	return &TickerTable{index: make(map[string]int)}
}

// Len returns the number of mappings.
func (t *TickerTable) Len() int { return len(t.mappings) }

// Resolve returns the mapping of an instrument.
func (t *TickerTable) Resolve(isin string) (Mapping, bool) {
	i, ok := t.index[isin]
	if !ok {
		return Mapping{}, false
	}
	return t.mappings[i], true
}

// Add inserts a mapping, replacing an existing entry for the same ISIN.
func (t *TickerTable) Add(m Mapping) error {
	if err := ValidateISIN(m.ISIN); err != nil {
		return fmt.Errorf("invalid mapping for %q: %w", m.ISIN, err)
	}
	if i, ok := t.index[m.ISIN]; ok {
		t.mappings[i] = m
		return nil
	}
	t.index[m.ISIN] = len(t.mappings)
	t.mappings = append(t.mappings, m)
	return nil
}

// Mappings returns all mappings sorted by ISIN.
func (t *TickerTable) Mappings() []Mapping {
	out := append([]Mapping(nil), t.mappings...)
	sort.Slice(out, func(i, j int) bool { return out[i].ISIN < out[j].ISIN })
	return out
}

// Merge adds every instrument of the ledger that has no entry yet, with an
// empty ticker to be filled in by hand. Existing entries win. It returns
// the number of instruments added.
func (t *TickerTable) Merge(l *Ledger) int {
	added := 0
	for ins := range l.Instruments() {
		if _, ok := t.index[ins.ISIN]; ok {
			continue
		}
		t.index[ins.ISIN] = len(t.mappings)
		t.mappings = append(t.mappings, Mapping{ISIN: ins.ISIN, Name: ins.Name})
		added++
	}
	return added
}

// Missing reports every instrument traded in the ledger with no usable
// mapping. A usable mapping has a non-empty ticker.
func (t *TickerTable) Missing(l *Ledger) []*MappingError {
	var errs []*MappingError
	for ins := range l.Instruments() {
		m, ok := t.Resolve(ins.ISIN)
		if !ok || m.Ticker == "" {
			errs = append(errs, &MappingError{ISIN: ins.ISIN, Name: ins.Name})
		}
	}
	return errs
}

// DecodeTickers reads a mapping table from its CSV form:
// Name,ISIN,Ticker,Currency with a header line.
func DecodeTickers(r io.Reader) (*TickerTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unreadable ticker table: %w", err)
	}
	t := NewTickerTable()
	for i, record := range records {
		if i == 0 {
			continue // header
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("ticker table row %d: want 4 columns, got %d", i+1, len(record))
		}
		m := Mapping{
			Name:     strings.TrimSpace(record[0]),
			ISIN:     strings.TrimSpace(record[1]),
			Ticker:   strings.TrimSpace(record[2]),
			Currency: strings.TrimSpace(record[3]),
		}
		if err := t.Add(m); err != nil {
			return nil, fmt.Errorf("ticker table row %d: %w", i+1, err)
		}
	}
	return t, nil
}

// EncodeTickers writes the table in its CSV form, sorted by ISIN for a
// stable, diffable output.
func EncodeTickers(w io.Writer, t *TickerTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "ISIN", "Ticker", "Currency"}); err != nil {
		return err
	}
	for _, m := range t.Mappings() {
		if err := cw.Write([]string{m.Name, m.ISIN, m.Ticker, m.Currency}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
