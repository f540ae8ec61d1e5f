package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moneywise/renderer"
	"github.com/google/subcommands"
)

type validateCmd struct{}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "validate every item of the dataset and report the errors" }
func (*validateCmd) Usage() string {
	return `moneywise validate

  Loads the dataset, recomputes the usage of every item and validates them.
  Errors are reported per item and field. The command fails when at least one
  item is in error.
`
}

func (*validateCmd) SetFlags(f *flag.FlagSet) {}

func (*validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := LoadDataSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	d := renderer.NewDiagnostics(ds)
	printMarkdown(renderer.RenderDiagnostics(d))
	if len(d.Items) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
