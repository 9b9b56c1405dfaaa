package investo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

// The market data lives in a folder of human-readable, git-friendly JSONL
// files: a definitions file declaring each ticker and its currency, and one
// file per year holding the daily closes of all tickers for that year.
//
// Decode reads the definitions first, then every per-year file line by
// line. Encode walks all series day by day, writes one line per day into
// its year file, and removes year files that no longer have data.

const attrOn = "on"
const marketDefinitionsFile = "definitions.jsonl"
const marketDataFilesGlob = "[0-9][0-9][0-9][0-9].jsonl"

// jdefinition is one line of the definitions file.
type jdefinition struct {
	Ticker   string `json:"ticker"`
	Currency string `json:"currency"`
}

// decodeDefinitions parses the definitions file. filename is for error
// messages only.
func (m *Market) decodeDefinitions(filename string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jd jdefinition
		if err := json.Unmarshal(line, &jd); err != nil {
			return fmt.Errorf("format error in %q on line %q: %w", filename, string(line), err)
		}
		if m.Has(jd.Ticker) {
			log.Printf("format error in %q: ticker %q is already defined", filename, jd.Ticker)
			continue
		}
		if _, err := m.Declare(jd.Ticker, jd.Currency); err != nil {
			return fmt.Errorf("format error in %q: %w", filename, err)
		}
	}
	return scanner.Err()
}

// fileLine structures a line from a collection of files as the persistence
// layer represents them.
type fileLine struct {
	filename string
	i        int
	txt      string
}

// loadLines reads all lines from a set of files into one structured list.
func loadLines(filenames ...string) (list []fileLine, err error) {
	for _, filename := range filenames {
		r, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot open %q for reading: %w", filename, err)
		}
		i := 0
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			i++
			list = append(list, fileLine{filename, i, scanner.Text()})
		}
		err = scanner.Err()
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", filename, err)
		}
	}
	return list, nil
}

// decodeDailyPrices decodes a single line of a per-year price file.
func decodeDailyPrices(m *Market, l fileLine) error {
	if strings.TrimSpace(l.txt) == "" {
		return nil
	}

	jobj := make(map[string]any)
	if err := json.Unmarshal([]byte(l.txt), &jobj); err != nil {
		return fmt.Errorf("parse error %s:%v: not a correct json: %w", l.filename, l.i, err)
	}

	jvalue, ok := jobj[attrOn]
	if !ok {
		return fmt.Errorf("parse error %s:%v: missing the property %q with a date", l.filename, l.i, attrOn)
	}
	jstring, ok := jvalue.(string)
	if !ok {
		return fmt.Errorf("parse error %s:%v: property %q must be of type 'string'", l.filename, l.i, attrOn)
	}
	on, err := date.Parse(jstring)
	if err != nil {
		return fmt.Errorf("parse error %s:%v: property %q must be a valid date: %w", l.filename, l.i, attrOn, err)
	}

	// All other attributes are (ticker, price) pairs.
	for ticker, price := range jobj {
		if ticker == attrOn {
			continue
		}
		p, ok := price.(float64)
		if !ok {
			return fmt.Errorf("parse error %s:%v: property %q must be of type 'number'", l.filename, l.i, ticker)
		}
		if !m.Has(ticker) {
			return fmt.Errorf("parse error %s:%v: property %q must be a declared ticker", l.filename, l.i, ticker)
		}
		m.Append(ticker, on, p)
	}
	return nil
}

// DecodeMarket reads a market data folder into a Market. A missing folder
// or definitions file yields an empty market, not an error.
func DecodeMarket(folder string) (*Market, error) {
	m := NewMarket()

	definitions := filepath.Join(folder, marketDefinitionsFile)
	f, err := os.Open(definitions)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("load error: cannot open market definitions %q: %w", definitions, err)
	}
	defer f.Close()

	if err := m.decodeDefinitions(definitions, f); err != nil {
		return nil, fmt.Errorf("load error: cannot read market definitions: %w", err)
	}

	filenames, err := filepath.Glob(filepath.Join(folder, marketDataFilesGlob))
	if err != nil {
		return nil, fmt.Errorf("load error: cannot scan folder %q for market data files: %w", folder, err)
	}
	lines, err := loadLines(filenames...)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if err := decodeDailyPrices(m, line); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// encodeDefinitions writes the definitions of all tickers, sorted for a
// stable output.
func encodeDefinitions(w io.Writer, m *Market) error {
	for _, ticker := range m.Tickers() {
		jd := jdefinition{Ticker: ticker, Currency: m.Get(ticker).Currency()}
		data, err := json.Marshal(jd)
		if err != nil {
			return fmt.Errorf("persist error: cannot marshal definition of %q: %w", ticker, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("persist error: cannot write to file: %w", err)
		}
	}
	return nil
}

// encodeDailyPrices writes one day of prices as a single JSON line, tickers
// in alphabetical order.
func encodeDailyPrices(w io.Writer, day date.Date, tickers []string, values []float64) error {
	var jw jsonObjectWriter
	jw.Append(attrOn, day.String())
	for i, ticker := range tickers {
		// json has no NaN, and a NaN close is no observation anyway.
		if math.IsNaN(values[i]) {
			continue
		}
		jw.Append(ticker, values[i])
	}
	b, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// EncodeMarket persists the market data into a folder, rewriting the
// definitions file and the per-year price files, and removing year files
// that no longer hold any data.
func EncodeMarket(folder string, m *Market) error {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return fmt.Errorf("persist error: cannot create folder %q: %w", folder, err)
	}

	definitions := filepath.Join(folder, marketDefinitionsFile)
	f, err := os.Create(definitions)
	if err != nil {
		return fmt.Errorf("persist error: cannot create file %q: %w", definitions, err)
	}
	defer f.Close()
	if err := encodeDefinitions(f, m); err != nil {
		return err
	}

	// Collect the union of all observed days, in order.
	tickers := m.Tickers()
	dayset := make(map[date.Date]bool)
	for _, ticker := range tickers {
		for on := range m.Get(ticker).Prices().Values() {
			dayset[on] = true
		}
	}
	days := make([]date.Date, 0, len(dayset))
	for on := range dayset {
		days = append(days, on)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	// Write each day into its year file.
	files := make(map[string]*os.File)
	defer func() {
		for _, yf := range files {
			yf.Close()
		}
	}()
	written := make(map[string]bool)
	for _, day := range days {
		filename := filepath.Join(folder, fmt.Sprintf("%d.jsonl", day.Year()))
		yf, ok := files[filename]
		if !ok {
			yf, err = os.Create(filename)
			if err != nil {
				return fmt.Errorf("persist error: cannot create file %q: %w", filename, err)
			}
			files[filename] = yf
			written[filename] = true
		}

		var dayTickers []string
		var dayPrices []float64
		for _, ticker := range tickers {
			if val, ok := m.Get(ticker).Prices().Get(day); ok {
				dayTickers = append(dayTickers, ticker)
				dayPrices = append(dayPrices, val)
			}
		}
		if err := encodeDailyPrices(yf, day, dayTickers, dayPrices); err != nil {
			return fmt.Errorf("persist error: cannot write %q: %w", filename, err)
		}
	}

	// Remove year files that no longer hold data.
	existing, err := filepath.Glob(filepath.Join(folder, marketDataFilesGlob))
	if err != nil {
		return fmt.Errorf("persist error: cannot scan folder %q: %w", folder, err)
	}
	for _, filename := range existing {
		if !written[filename] {
			log.Printf("remove-market-data-file name=%q", filename)
			if err := os.Remove(filename); err != nil {
				return fmt.Errorf("persist error: cannot remove stale file %q: %w", filename, err)
			}
		}
	}
	return nil
}
