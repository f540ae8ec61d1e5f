// Command moneywise inspects a personal finance dataset.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/moneywise/cmd"
	"github.com/etnz/moneywise/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	completion(name).Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion. Complete is a
// no-op unless the shell asks for completions.
func completion(name string) *complete.Command {
	c := &complete.Command{
		Flags: map[string]complete.Predictor{
			"dataset": predict.Files("*.jsonl"),
			"config":  predict.Files("*.toml"),
			"log":     predict.Set{"debug", "info", "warn", "error"},
			"html":    predict.Nothing,
			"raw":     predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"help": {},
		},
	}
	for _, sc := range cmd.Commands {
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs := flag.NewFlagSet(sc.Command.Name(), flag.ContinueOnError)
		sc.Command.SetFlags(fs)
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predict.Something })
		c.Sub[sc.Command.Name()] = sub
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		c.Sub["topic"].Args = predict.Set(topics)
	}
	return c
}
