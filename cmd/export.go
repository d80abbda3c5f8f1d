package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mwessel/booking"
	"github.com/mwessel/booking/store"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	account string
	output  string
	runID   string
}

func (*exportCmd) Name() string { return "export" }

func (*exportCmd) Synopsis() string { return "export an account's journal for MS-Buchhalter" }
func (*exportCmd) Usage() string {
	return `bkb export -a <account> [-o <file>] [-run <id>]

  Writes the booking journal of one account as a semicolon-separated
  MS-Buchhalter import file. The journal is read from the journal file, or
  from an archived run with -db and -run.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Broker account to export.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to AccountingJournal_Import_MSB_<account>.csv")
	f.StringVar(&c.runID, "run", "", "Archived run id to export from.")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a <account> is required")
		return subcommands.ExitUsageError
	}

	journal, err := c.loadJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = fmt.Sprintf("AccountingJournal_Import_MSB_%s.csv", c.account)
	}
	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := booking.ExportMSBuchhalter(f, journal, c.account); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s\n", output)
	return subcommands.ExitSuccess
}

func (c *exportCmd) loadJournal() (*booking.Journal, error) {
	if c.runID != "" {
		if *dbFile == "" {
			return nil, errors.New("-run requires -db")
		}
		s, err := store.Open(*dbFile)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		runID := c.runID
		if runID == "latest" {
			if runID, err = s.LatestRun(); err != nil {
				return nil, err
			}
		}
		return s.LoadJournal(runID)
	}
	f, err := os.Open(*journalFile)
	if err != nil {
		return nil, fmt.Errorf("opening journal %q: %w", *journalFile, err)
	}
	defer f.Close()
	return booking.DecodeJournal(f)
}
