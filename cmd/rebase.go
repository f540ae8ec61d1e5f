package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/moneywise"
	"github.com/google/subcommands"
)

type rebaseCmd struct {
	output string
}

func (*rebaseCmd) Name() string     { return "rebase" }
func (*rebaseCmd) Synopsis() string { return "make another currency the default one and rebase every rate" }
func (*rebaseCmd) Usage() string {
	return `moneywise rebase [-o <file>] <currency>

  Makes the currency the default (pivot) currency of the dataset. Every
  exchange rate is rewritten to be expressed from the new default currency.
  The rebase fails when a date holding rates has no rate from the old to the
  new default currency on that same date.

  The rebased dataset is written to the -o file, or to the standard output.
`
}

func (c *rebaseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "File to write the rebased dataset to")
}

func (c *rebaseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a currency")
		return subcommands.ExitUsageError
	}
	ds, err := LoadDataSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	code := strings.ToUpper(f.Arg(0))
	if err := ds.Rates.SetDefaultCurrency(code); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ds.Commit(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w := os.Stdout
	if c.output != "" {
		w, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer w.Close()
	}
	if err := moneywise.EncodeDataSet(w, ds); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
