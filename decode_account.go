package investo

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/kobedemuelenaere/InvestoApp/date"
	"github.com/shopspring/decimal"
)

// This file decodes the broker account export (DEGIRO "Account.csv") into a
// Ledger. The export is a CSV with locale numbers (decimal comma, optional
// dot thousands separator), dd-mm-yyyy dates, and rows ordered newest first.

// accountDateFormat is the date format of the export, day first.
const accountDateFormat = "02-01-2006"

// Column positions in the export. The broker ships a broken header line, so
// columns are read by position; trailing extra columns are tolerated.
const (
	colDate        = 0  // Datum
	colTime        = 1  // Tijd
	colValueDate   = 2  // Valutadatum
	colProduct     = 3  // Product
	colISIN        = 4  // ISIN
	colDescription = 5  // Omschrijving
	colFx          = 6  // FX
	colAmountCur   = 7  // Mutatie (currency of the movement)
	colAmount      = 8  // movement amount
	colBalanceCur  = 9  // Saldo (currency of the running balance)
	colBalance     = 10 // running balance amount
	colOrderID     = 11 // Order Id
	accountColumns = 12
)

// tradeRE recognizes the trade leg of an order and captures the share count.
var tradeRE = regexp.MustCompile(`(?:Koop|Verkoop) (\d+)`)

// ImportReport accounts for every row of an account export: how many were
// read, kept, dropped as noise, and rejected with a reason.
type ImportReport struct {
	Rows     int // data rows read, header excluded
	Accepted int
	Dropped  int // zero-value noise rows, not errors
	Rejects  []*ParseError
}

func (r *ImportReport) reject(row int, format string, args ...any) {
	r.Rejects = append(r.Rejects, &ParseError{Row: row, Reason: fmt.Sprintf(format, args...)})
}

// parseDecimalComma converts a locale-formatted number ("1.055,91",
// "-318,60") into an exact decimal. The dot thousands separators are
// stripped and the decimal comma becomes a decimal point before conversion;
// converting without that step would silently turn every number into a
// parse failure.
func parseDecimalComma(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a number %q", s)
	}
	return d, nil
}

// DecodeAccount parses a broker account export into a Ledger in the given
// reporting currency, together with a row-by-row import report.
//
// Rows are rejected individually: a malformed date or a non-numeric field
// drops that row with a reason and parsing continues. The only terminal
// failure is an export yielding zero valid rows.
func DecodeAccount(r io.Reader, currency string) (*Ledger, *ImportReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // broker exports vary in trailing columns

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("unreadable account export: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("account export has no data rows")
	}
	// The first line is the (often mangled) header, skipped by position.
	records = records[1:]

	report := &ImportReport{Rows: len(records)}

	var cash []CashEvent
	var trades []TradeEvent

	// The export lists rows newest first. Walk it backward so events are
	// appended oldest first: the stable sort in NewLedger then keeps "later
	// in ledger order" meaning "more recent row", which is what makes the
	// latest recorded running balance of a day win.
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		row := i + 2 // 1-based position in the file, header included

		if len(record) < accountColumns {
			report.reject(row, "want at least %d columns, got %d", accountColumns, len(record))
			continue
		}

		on, err := time.Parse(accountDateFormat, strings.TrimSpace(record[colDate]))
		if err != nil {
			report.reject(row, "invalid date %q", record[colDate])
			continue
		}
		day := date.New(on.Date())
		description := strings.TrimSpace(record[colDescription])

		var amount decimal.Decimal
		if s := strings.TrimSpace(record[colAmount]); s != "" {
			amount, err = parseDecimalComma(s)
			if err != nil {
				report.reject(row, "invalid amount: %v", err)
				continue
			}
		}

		// The broker logs a zero interest line every day, pure noise.
		if description == "Flatex Interest Income" && amount.IsZero() {
			report.Dropped++
			continue
		}

		var balance decimal.Decimal
		hasBalance := false
		if s := strings.TrimSpace(record[colBalance]); s != "" {
			balance, err = parseDecimalComma(s)
			if err != nil {
				report.reject(row, "invalid balance: %v", err)
				continue
			}
			hasBalance = true
		}

		amountCur := strings.TrimSpace(record[colAmountCur])
		if amountCur == "" {
			amountCur = currency
		}
		balanceCur := strings.TrimSpace(record[colBalanceCur])
		if balanceCur == "" {
			balanceCur = currency
		}

		orderID := strings.TrimSpace(record[colOrderID])

		report.Accepted++
		cash = append(cash, NewCashEvent(day, M(amount, amountCur), M(balance, balanceCur), hasBalance, description, orderID, row))

		// The trade leg of an order also moves a position.
		isin := strings.TrimSpace(record[colISIN])
		if isin == "" {
			continue
		}
		match := tradeRE.FindStringSubmatch(description)
		if match == nil {
			continue
		}
		qty, err := decimal.NewFromString(match[1])
		if err != nil {
			report.reject(row, "invalid share count %q", match[1])
			continue
		}
		if strings.Contains(description, "Verkoop") {
			qty = qty.Neg()
		}
		trades = append(trades, NewTradeEvent(day, isin,
			strings.TrimSpace(record[colProduct]), Q(qty),
			orderID, description, row))
	}

	if report.Accepted == 0 {
		return nil, report, fmt.Errorf("account export has no valid rows (%d rejected)", len(report.Rejects))
	}
	return NewLedger(currency, cash, trades), report, nil
}
