package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kobedemuelenaere/InvestoApp"
	"github.com/kobedemuelenaere/InvestoApp/renderer"
)

// tickersCmd holds the flags for the 'tickers' subcommand.
type tickersCmd struct {
	merge bool
	check bool
}

func (*tickersCmd) Name() string     { return "tickers" }
func (*tickersCmd) Synopsis() string { return "show and maintain the instrument mapping table" }
func (*tickersCmd) Usage() string {
	return `investo tickers [-merge] [-check]

  Shows the instrument mapping table. With -merge, every ledger instrument
  not mapped yet is added as a skeleton row to fill in by hand. With
  -check, every mapped symbol is probed at the market data source.

Usage Examples:
# After a fresh export, list the instruments still to map.
$ investo tickers -merge

# Verify all symbols resolve before an update.
$ investo tickers -check
`
}

func (c *tickersCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.merge, "merge", false, "Add a skeleton row for every unmapped ledger instrument.")
	f.BoolVar(&c.check, "check", false, "Probe every mapped ticker at the market data source.")
}

func (c *tickersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, _, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	table, err := DecodeTickersFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.merge {
		added := table.Merge(ledger)
		if err := EncodeTickersFile(table); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Added %d instruments to %s\n", added, *tickersFile)
	}

	status := subcommands.ExitSuccess
	for _, missing := range table.Missing(ledger) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", missing)
		status = subcommands.ExitFailure
	}

	if c.check {
		yahoo := investo.NewYahoo()
		for _, m := range table.Mappings() {
			if m.Ticker == "" {
				continue
			}
			currency, err := yahoo.Probe(m.Ticker)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %s does not resolve: %v\n", m.Ticker, err)
				status = subcommands.ExitFailure
				continue
			}
			if m.Currency != "" && currency != m.Currency {
				fmt.Fprintf(os.Stderr, "Warning: %s is quoted in %s at the source, mapped as %s\n", m.Ticker, currency, m.Currency)
			}
		}
	}

	printMarkdown(renderer.TickersMarkdown(table))
	return status
}
