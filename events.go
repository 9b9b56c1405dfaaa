package investo

import (
	"regexp"
	"strings"

	"github.com/kobedemuelenaere/InvestoApp/date"
)

// CashKind classifies a cash movement from its description. Only the
// external-flow kinds (deposit, withdrawal) count toward cumulative
// deposits; sweeps are internal and never carry an authoritative balance.
type CashKind int

const (
	KindOther CashKind = iota
	KindDeposit
	KindWithdrawal
	KindSweep // internal transfer between the cash account and its money market fund
	KindDividend
	KindInterest
	KindFee
	KindSettlement // cash leg of a buy or sell
	KindFx         // currency debit/credit of a foreign-currency order
)

func (k CashKind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindSweep:
		return "sweep"
	case KindDividend:
		return "dividend"
	case KindInterest:
		return "interest"
	case KindFee:
		return "fee"
	case KindSettlement:
		return "settlement"
	case KindFx:
		return "fx"
	default:
		return "other"
	}
}

// IsExternal reports whether the movement is money entering or leaving the
// account from outside, the only kinds counted as deposits.
func (k CashKind) IsExternal() bool { return k == KindDeposit || k == KindWithdrawal }

var (
	sweepRE      = regexp.MustCompile(`(?i)Overboeking|Degiro Cash Sweep Transfer`)
	settlementRE = regexp.MustCompile(`\b(?:Koop|Verkoop)\b`)
	fxRE         = regexp.MustCompile(`(?i)Valuta (?:Debitering|Creditering)`)
	feeRE        = regexp.MustCompile(`(?i)transactiekosten|transactiebelasting|kosten|\bfee\b`)
)

// classify derives the kind of a cash movement from its free-text
// description. The patterns are the broker's own wording.
func classify(description string) CashKind {
	lower := strings.ToLower(description)
	switch {
	case sweepRE.MatchString(description):
		return KindSweep
	case strings.Contains(lower, "deposit"):
		return KindDeposit
	case strings.Contains(lower, "withdrawal") || strings.Contains(lower, "terugstorting"):
		return KindWithdrawal
	case fxRE.MatchString(description):
		return KindFx
	case settlementRE.MatchString(description):
		return KindSettlement
	case feeRE.MatchString(description):
		return KindFee
	case strings.Contains(lower, "dividend"):
		return KindDividend
	case strings.Contains(lower, "interest") || strings.Contains(lower, "rente"):
		return KindInterest
	default:
		return KindOther
	}
}

// CashEvent is one ledger line affecting cash. Immutable once parsed.
type CashEvent struct {
	on          date.Date
	amount      Money
	balance     Money // running balance as recorded by the source
	hasBalance  bool
	kind        CashKind
	description string
	orderID     string // set on the cash legs of an order: settlement, fees, tax, fx
	row         int    // source row, for diagnostics
}

// NewCashEvent builds a cash event, classifying it from its description.
// hasBalance distinguishes a recorded zero balance from an absent one.
func NewCashEvent(on date.Date, amount, balance Money, hasBalance bool, description, orderID string, row int) CashEvent {
	return CashEvent{
		on:          on,
		amount:      amount,
		balance:     balance,
		hasBalance:  hasBalance,
		kind:        classify(description),
		description: description,
		orderID:     orderID,
		row:         row,
	}
}

func (e CashEvent) When() date.Date     { return e.on }
func (e CashEvent) Amount() Money       { return e.amount }
func (e CashEvent) Kind() CashKind      { return e.kind }
func (e CashEvent) Description() string { return e.description }
func (e CashEvent) OrderID() string     { return e.orderID }
func (e CashEvent) Row() int            { return e.row }

// Balance returns the running balance the source recorded on this line, and
// whether one was recorded at all.
func (e CashEvent) Balance() (Money, bool) { return e.balance, e.hasBalance }

// TradeEvent is one position change. Immutable once parsed.
type TradeEvent struct {
	on          date.Date
	isin        string
	name        string // product name as the broker prints it
	quantity    Quantity
	orderID     string
	description string
	row         int
}

func NewTradeEvent(on date.Date, isin, name string, quantity Quantity, orderID, description string, row int) TradeEvent {
	return TradeEvent{
		on:          on,
		isin:        isin,
		name:        name,
		quantity:    quantity,
		orderID:     orderID,
		description: description,
		row:         row,
	}
}

func (e TradeEvent) When() date.Date     { return e.on }
func (e TradeEvent) ISIN() string        { return e.isin }
func (e TradeEvent) Name() string        { return e.name }
func (e TradeEvent) Quantity() Quantity  { return e.quantity }
func (e TradeEvent) OrderID() string     { return e.orderID }
func (e TradeEvent) Description() string { return e.description }
func (e TradeEvent) Row() int            { return e.row }
