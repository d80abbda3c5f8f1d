package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/mwessel/booking/cmd"
)

// completion describes the CLI for shell completion; Complete returns
// immediately unless invoked by the shell's completion hook.
func completion() {
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"book": {Flags: map[string]complete.Predictor{
				"n": predict.Nothing,
			}},
			"check": {Flags: map[string]complete.Predictor{
				"a": predict.Something,
				"j": predict.Nothing,
			}},
			"lots": {Flags: map[string]complete.Predictor{
				"run": predict.Something,
			}},
			"export": {Flags: map[string]complete.Predictor{
				"a":   predict.Something,
				"o":   predict.Files("*.csv"),
				"run": predict.Something,
			}},
		},
		Flags: map[string]complete.Predictor{
			"config":  predict.Files("*.json"),
			"feed":    predict.Files("*.jsonl"),
			"lots":    predict.Files("*.jsonl"),
			"journal": predict.Files("*.jsonl"),
			"db":      predict.Files("*.db"),
		},
	}
	c.Complete("bkb")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
