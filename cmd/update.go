package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kobedemuelenaere/InvestoApp"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct {
	inception bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch the missing market data" }
func (*updateCmd) Usage() string {
	return `investo update [-inception]

  Fetches the missing price history of every mapped instrument, and the
  exchange rates of every foreign trading currency, and merges them into
  the market data folder. Responses are cached for the day.

Usage Examples:
# Daily refresh.
$ investo update

# Rebuild the full history from the first trade on.
$ investo update -inception
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.inception, "inception", false, "Refetch the full history instead of only the missing tail.")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, _, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	tickers, err := DecodeTickersFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	market, err := DecodeMarketDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	if err := investo.UpdateMarket(market, ledger, tickers, investo.NewYahoo(), *currency, c.inception); err != nil {
		// Partial updates still get persisted below.
		fmt.Fprintf(os.Stderr, "Warning: some symbols did not update:\n%v\n", err)
		status = subcommands.ExitFailure
	}

	if err := investo.EncodeMarket(*marketDir, market); err != nil {
		fmt.Fprintf(os.Stderr, "Error persisting market data: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Market data saved to %s\n", *marketDir)
	return status
}
