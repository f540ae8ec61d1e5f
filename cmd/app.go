// Package cmd implements the moneywise command line, a set of subcommands
// inspecting a dataset stored in its open representation.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moneywise"
	"github.com/etnz/moneywise/renderer"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var datasetFile = flag.String("dataset", "moneywise.jsonl", "Path to the dataset file (JSONL format)")
var configFile = flag.String("config", "", "Path to a TOML configuration file overriding the defaults")
var logLevel = flag.String("log", "", "Log level (debug, info, warn, error), overrides the configuration")
var htmlOutput = flag.Bool("html", false, "Print reports as HTML instead of terminal markdown")
var rawOutput = flag.Bool("raw", false, "Print reports as raw markdown")

// Commands are the subcommands of moneywise, with their group.
var Commands = []struct {
	Command subcommands.Command
	Group   string
}{
	{&validateCmd{}, "dataset"},
	{&dumpCmd{}, "dataset"},
	{&categoriesCmd{}, "dataset"},
	{&pairsCmd{}, "transactions"},
	{&legalCmd{}, "transactions"},
	{&convertCmd{}, "currencies"},
	{&rebaseCmd{}, "currencies"},
	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// LoadConfig loads the configuration selected by the global flags.
func LoadConfig() (*moneywise.Config, error) {
	cfg, err := moneywise.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	return cfg, nil
}

// LoadDataSet loads the dataset file selected by the global flags.
func LoadDataSet() (*moneywise.DataSet, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	log := moneywise.NewLogger(cfg.LogLevel, nil)
	return moneywise.LoadDataSet(*datasetFile, cfg, moneywise.WithLogger(log))
}

// printMarkdown prints a markdown report in the format selected by the
// global flags.
func printMarkdown(md string) {
	switch {
	case *rawOutput:
		fmt.Print(md)
	case *htmlOutput:
		out, err := renderer.HTML(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	default:
		out, err := renderer.Terminal(md, 100)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	}
}
