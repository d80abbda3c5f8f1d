// Package cmd implements the CLI application to book broker activity feeds.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/mwessel/booking"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&bookCmd{}, "booking")
	c.Register(&checkCmd{}, "booking")
	c.Register(&exportCmd{}, "booking")

	c.Register(&lotsCmd{}, "positions")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "booking.json", "Path to the run configuration (bank account mapping, date range)")
var feedFile = flag.String("feed", "activity.jsonl", "Path to the normalized activity feed (JSONL format)")
var lotsFile = flag.String("lots", "positions.jsonl", "Path to the open position snapshot (JSONL format)")
var journalFile = flag.String("journal", "journal.jsonl", "Path to the booking journal output (JSONL format)")
var dbFile = flag.String("db", "", "Optional sqlite archive of booking runs")

// LoadConfig reads the run configuration file.
func LoadConfig() (booking.RunConfig, error) {
	var cfg booking.RunConfig
	data, err := os.ReadFile(*configFile)
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", *configFile, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", *configFile, err)
	}
	return cfg, nil
}

// LoadFeed reads the activity feed file.
func LoadFeed() ([]booking.ActivityRecord, error) {
	f, err := os.Open(*feedFile)
	if err != nil {
		return nil, fmt.Errorf("opening feed %q: %w", *feedFile, err)
	}
	defer f.Close()
	return booking.DecodeActivities(f)
}

// LoadLots reads the open position snapshot. A missing file is an empty
// snapshot, the normal state before the first run.
func LoadLots() ([]booking.Lot, error) {
	f, err := os.Open(*lotsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, no open position snapshot found, starting from an empty book")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening lots %q: %w", *lotsFile, err)
	}
	defer f.Close()
	return booking.DecodeLots(f)
}

// RunEngine loads configuration, feed and snapshot and runs the booking.
func RunEngine() (*booking.RunResult, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	records, err := LoadFeed()
	if err != nil {
		return nil, err
	}
	seed, err := LoadLots()
	if err != nil {
		return nil, err
	}
	return booking.NewEngine(cfg).Run(records, seed...), nil
}
