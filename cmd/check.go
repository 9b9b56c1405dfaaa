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

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the account file and the data setup" }
func (*checkCmd) Usage() string {
	return `investo check

  Reads the account file and reports what the import rejected, which
  instruments have no ticker mapping, and where the recorded running
  balances disagree with the replayed cash movements. Exits non-zero when
  anything needs attention.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, report, err := loadAccounting()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ImportMarkdown(report))

	status := subcommands.ExitSuccess
	if len(report.Rejects) > 0 {
		status = subcommands.ExitFailure
	}

	if err := a.CheckMappings(); err != nil {
		fmt.Fprintf(os.Stderr, "Mapping gaps:\n%v\n", err)
		status = subcommands.ExitFailure
	}

	warnings := investo.NewSnapshot(a.Ledger, date.Today()).Warnings()
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Balance warning: %s\n", w)
	}
	if len(warnings) > 0 {
		status = subcommands.ExitFailure
	}

	if status == subcommands.ExitSuccess {
		fmt.Fprintln(os.Stderr, "All good.")
	}
	return status
}
