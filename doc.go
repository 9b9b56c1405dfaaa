// Package investo reconstructs the historical state of a personal
// investment portfolio from an append-only brokerage account export and an
// externally fetched price history.
//
// The account export is replayed into an immutable Ledger of cash and
// trade events. A Snapshot derives the portfolio state (cash, holdings,
// cumulative deposits) on any date as a pure function of the ledger; the
// Accounting layer values a snapshot against as-of price and exchange-rate
// lookups that never look ahead of the queried date; BuildHistory drives
// the valuation across a date grid into a series ready for reports and
// exports.
//
// Market data gaps are first-class: a value that cannot be computed is an
// unavailable Estimate carrying its reason, never a zero or a NaN.
package investo
