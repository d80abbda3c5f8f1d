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

// bookCmd holds the flags for the 'book' subcommand.
type bookCmd struct {
	dryRun bool
}

func (*bookCmd) Name() string { return "book" }

func (*bookCmd) Synopsis() string { return "book the activity feed into the journal" }
func (*bookCmd) Usage() string {
	return `bkb book [-n]

  Books the activity feed into a double-entry journal, updates the open
  position snapshot, and prints the quality report. With -n nothing is
  written, the run is only simulated.
`
}

func (c *bookCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "Dry run: book and report, but write nothing.")
}

func (c *bookCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := RunEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderQuality(renderer.NewQuality(result)))

	if c.dryRun {
		return exitStatus(result)
	}

	if err := writeJournal(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := writeLots(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if *dbFile != "" {
		s, err := store.Open(*dbFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer s.Close()
		runID, err := s.SaveRun(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error archiving run: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Archived run %s in %s\n", runID, *dbFile)
	}
	return exitStatus(result)
}

func writeJournal(result *booking.RunResult) error {
	f, err := os.Create(*journalFile)
	if err != nil {
		return fmt.Errorf("creating journal %q: %w", *journalFile, err)
	}
	defer f.Close()
	if err := booking.EncodeJournal(f, result.Journal); err != nil {
		return fmt.Errorf("writing journal %q: %w", *journalFile, err)
	}
	fmt.Printf("Wrote %d journal lines to %s\n", result.Journal.Len(), *journalFile)
	return nil
}

func writeLots(result *booking.RunResult) error {
	f, err := os.Create(*lotsFile)
	if err != nil {
		return fmt.Errorf("creating lots %q: %w", *lotsFile, err)
	}
	defer f.Close()
	if err := booking.EncodeLots(f, result.Lots); err != nil {
		return fmt.Errorf("writing lots %q: %w", *lotsFile, err)
	}
	fmt.Printf("Wrote %d open positions to %s\n", len(result.Lots.Lots()), *lotsFile)
	return nil
}

// exitStatus maps collected faults to the process exit code: a run with
// faults still produces its outputs but must not look clean in scripts.
func exitStatus(result *booking.RunResult) subcommands.ExitStatus {
	if len(result.Faults) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
