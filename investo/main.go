package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/kobedemuelenaere/InvestoApp/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion declares the shell completion tree and handles a completion
// request, exiting when one was served.
func completion() {
	dataFlags := map[string]complete.Predictor{
		"account":    predict.Files("*.csv"),
		"tickers":    predict.Files("*.csv"),
		"market-dir": predict.Dirs("*"),
		"currency":   predict.Set{"EUR", "USD", "GBP", "CHF"},
		"v":          predict.Nothing,
	}
	investo := &complete.Command{
		Flags: dataFlags,
		Sub: map[string]*complete.Command{
			"summary": {Flags: map[string]complete.Predictor{"on": predict.Nothing}},
			"history": {Flags: map[string]complete.Predictor{
				"from":   predict.Nothing,
				"to":     predict.Nothing,
				"period": predict.Set{"day", "week", "month", "quarter", "year"},
				"csv":    predict.Files("*.csv"),
			}},
			"orders":  {Flags: map[string]complete.Predictor{"csv": predict.Files("*.csv")}},
			"check":   {},
			"tickers": {Flags: map[string]complete.Predictor{"merge": predict.Nothing, "check": predict.Nothing}},
			"update":  {Flags: map[string]complete.Predictor{"inception": predict.Nothing}},
			"topic":   {Args: predict.Set{"readme", "account-file", "tickers", "market-data", "dates", "*"}},
			"assist":  {},
		},
	}
	investo.Complete("investo")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}

	// An unknown subcommand may be an external extension binary.
	if args := flag.Args(); len(args) > 0 && !known(commander, args[0]) {
		if ran, code := cmd.RunExtension(args[0], args[1:]); ran {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

// known reports whether the commander has a subcommand of that name.
func known(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
