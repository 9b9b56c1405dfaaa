package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// printMarkdown renders a markdown document to the terminal. When stdout is
// not a terminal the raw markdown is printed, so piping stays clean.
func printMarkdown(doc string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(doc)
		return
	}
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
