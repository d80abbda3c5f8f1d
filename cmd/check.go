package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mwessel/booking/renderer"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	account string
	journal bool
}

func (*checkCmd) Name() string { return "check" }

func (*checkCmd) Synopsis() string { return "run the quality checks and closing simulation" }
func (*checkCmd) Usage() string {
	return `bkb check [-a <account>] [-j]

  Books the feed without writing anything and prints the quality report.
  With -a the simulated year-end closing of that account is printed too,
  and -j adds the account's booking journal.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Broker account to print the closing simulation for.")
	f.BoolVar(&c.journal, "j", false, "Print the account's booking journal, requires -a.")
}

func (c *checkCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := RunEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderQuality(renderer.NewQuality(result)))

	if c.account != "" {
		if c.journal {
			printMarkdown(renderer.RenderJournal(renderer.NewJournal(result.Journal, c.account)))
		}
		printMarkdown(renderer.RenderClosing(renderer.NewClosing(result.Journal, c.account)))
	}
	return exitStatus(result)
}
