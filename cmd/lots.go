package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mwessel/booking"
	"github.com/mwessel/booking/renderer"
	"github.com/mwessel/booking/store"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct {
	runID string
}

func (*lotsCmd) Name() string { return "lots" }

func (*lotsCmd) Synopsis() string { return "show the open position snapshot" }
func (*lotsCmd) Usage() string {
	return `bkb lots [-run <id>]

  Prints the open position snapshot. By default the snapshot file is shown;
  with -db and -run the snapshot of an archived run is loaded instead
  ("latest" selects the most recent run).
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.runID, "run", "", "Archived run id to load the snapshot from.")
}

func (c *lotsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var lots []booking.Lot
	var err error
	if c.runID != "" {
		lots, err = c.archived()
	} else {
		lots, err = LoadLots()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderLots(renderer.NewLots(booking.NewLotBook(lots...))))
	return subcommands.ExitSuccess
}

func (c *lotsCmd) archived() ([]booking.Lot, error) {
	if *dbFile == "" {
		return nil, fmt.Errorf("-run requires -db")
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
	return s.LoadLots(runID)
}
