package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kobedemuelenaere/InvestoApp/date"
	"github.com/kobedemuelenaere/InvestoApp/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio valuation on a date" }
func (*summaryCmd) Usage() string {
	return `investo summary [-on <date>]

  Displays the portfolio on a date: the cash, the deposited amount, every
  holding with its market value, and the total. A holding without market
  data on that date shows as n/a, and so does the total.

Usage Examples:
# Value the portfolio today.
$ investo summary

# Value it at the end of last year.
$ investo summary -on 2023-12-31
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "on", date.Today().String(), "Date of the valuation, in YYYY-MM-DD form.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, _, err := loadAccounting()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(a.Valuation(on)))
	return subcommands.ExitSuccess
}
