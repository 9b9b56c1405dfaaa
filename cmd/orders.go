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

// ordersCmd holds the flags for the 'orders' subcommand.
type ordersCmd struct {
	csv string
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "list all past broker orders" }
func (*ordersCmd) Usage() string {
	return `investo orders [-csv <file>]

  Folds the ledger lines of each broker order back into one summary: the
  shares, the execution price, the settled amount, the fees and taxes.

Usage Examples:
$ investo orders
$ investo orders -csv orders.csv
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csv, "csv", "", "Also write the orders to this CSV file.")
}

func (c *ordersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	orders := investo.Orders(ledger, tickers)

	if c.csv != "" {
		out, err := os.Create(c.csv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.csv, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := investo.EncodeOrdersCSV(out, orders); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.csv, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Wrote %d orders to %s\n", len(orders), c.csv)
	}

	printMarkdown(renderer.OrdersMarkdown(orders))
	return subcommands.ExitSuccess
}
