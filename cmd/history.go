package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kobedemuelenaere/InvestoApp"
	"github.com/kobedemuelenaere/InvestoApp/date"
	"github.com/kobedemuelenaere/InvestoApp/renderer"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	from   string
	to     string
	period string
	csv    string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the portfolio value over time" }
func (*historyCmd) Usage() string {
	return `investo history [-from <date>] [-to <date>] [-period <period>] [-csv <file>]

  Values the portfolio on every grid date of the range: each day for the
  'day' period, each period end for 'week', 'month', 'quarter' and 'year',
  the last point clamped to the range end. Dates with a market data gap
  show as n/a and carry no return.

Usage Examples:
# Monthly value since the first deposit.
$ investo history

# Daily detail of last february, exported for a spreadsheet.
$ investo history -from 2024-02-01 -to 2024-02-29 -period day -csv feb.csv
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start of the range. Defaults to the first ledger event.")
	f.StringVar(&c.to, "to", date.Today().String(), "End of the range.")
	f.StringVar(&c.period, "period", "month", "Grid period: day, week, month, quarter or year.")
	f.StringVar(&c.csv, "csv", "", "Also write the full per-holding detail to this CSV file.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := date.Parse(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -to date: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, _, err := loadAccounting()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	from := a.Ledger.OldestDate()
	if c.from != "" {
		if from, err = date.Parse(c.from); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if from.IsZero() {
		fmt.Fprintln(os.Stderr, "Error: the ledger is empty, there is nothing to chart")
		return subcommands.ExitFailure
	}

	h, err := investo.BuildHistory(a, date.Range{From: from, To: to}, period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.csv != "" {
		out, err := os.Create(c.csv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.csv, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := investo.EncodeHistoryCSV(out, h); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.csv, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Wrote %d points to %s\n", len(h.Points), c.csv)
	}

	printMarkdown(renderer.HistoryMarkdown(h))
	return subcommands.ExitSuccess
}
