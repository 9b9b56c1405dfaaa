// Package cmd implements the CLI application reconstructing a portfolio
// history from a broker account export.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/kobedemuelenaere/InvestoApp"
)

// Register the subcommands.
// A main package calls Register() and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&ordersCmd{}, "reports")
	c.Register(&checkCmd{}, "reports")

	c.Register(&tickersCmd{}, "data")
	c.Register(&updateCmd{}, "data")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "documentation")
}

// As a CLI application it is very short lived, so globals are fine.

var accountFile = flag.String("account", envOr(EnvAccountFile, "Account.csv"), "Path to the broker account export")
var tickersFile = flag.String("tickers", envOr(EnvTickersFile, "tickers.csv"), "Path to the instrument mapping table")
var marketDir = flag.String("market-dir", envOr(EnvMarketDir, "market-data"), "Path to the market data folder")
var currency = flag.String("currency", envOr(EnvCurrency, "EUR"), "Reporting currency of the account")
var Verbose = flag.Bool("v", false, "Print verbose log messages")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DecodeLedgerFile reads the account export into a ledger. Rejected rows
// are logged row by row; only a file with no usable row is an error.
func DecodeLedgerFile() (*investo.Ledger, *investo.ImportReport, error) {
	f, err := os.Open(*accountFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open account file %q: %w", *accountFile, err)
	}
	defer f.Close()

	ledger, report, err := investo.DecodeAccount(f, *currency)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read account file %q: %w", *accountFile, err)
	}
	for _, reject := range report.Rejects {
		log.Printf("warning: %s: %v", *accountFile, reject)
	}
	return ledger, report, nil
}

// DecodeTickersFile reads the instrument mapping table. A missing file is
// an empty table, so a fresh setup can start with -merge.
func DecodeTickersFile() (*investo.TickerTable, error) {
	f, err := os.Open(*tickersFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("warning: ticker table %q does not exist, starting empty", *tickersFile)
			return investo.NewTickerTable(), nil
		}
		return nil, fmt.Errorf("cannot open ticker table %q: %w", *tickersFile, err)
	}
	defer f.Close()

	table, err := investo.DecodeTickers(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read ticker table %q: %w", *tickersFile, err)
	}
	return table, nil
}

// EncodeTickersFile writes the mapping table back.
func EncodeTickersFile(t *investo.TickerTable) error {
	f, err := os.Create(*tickersFile)
	if err != nil {
		return fmt.Errorf("cannot write ticker table %q: %w", *tickersFile, err)
	}
	defer f.Close()
	return investo.EncodeTickers(f, t)
}

// DecodeMarketDir reads the market data folder. A missing folder is an
// empty market.
func DecodeMarketDir() (*investo.Market, error) {
	if _, err := os.Stat(*marketDir); errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: market data folder %q does not exist yet, run 'update' to create it", *marketDir)
	}
	return investo.DecodeMarket(*marketDir)
}

// loadAccounting wires the full system from the three data files.
func loadAccounting() (*investo.Accounting, *investo.ImportReport, error) {
	ledger, report, err := DecodeLedgerFile()
	if err != nil {
		return nil, nil, err
	}
	tickers, err := DecodeTickersFile()
	if err != nil {
		return nil, nil, err
	}
	market, err := DecodeMarketDir()
	if err != nil {
		return nil, nil, err
	}
	a, err := investo.NewAccounting(ledger, market, tickers, *currency)
	if err != nil {
		return nil, nil, err
	}
	return a, report, nil
}
