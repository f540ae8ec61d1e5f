package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moneywise"
	"github.com/etnz/moneywise/renderer"
	"github.com/google/subcommands"
)

type legalCmd struct {
	category string
}

func (*legalCmd) Name() string { return "legal" }
func (*legalCmd) Synopsis() string {
	return "tell which transaction categories can move value between two assets"
}
func (*legalCmd) Usage() string {
	return `moneywise legal [-c <category>] <debit> <credit>

  Checks every transaction category of the dataset against the debit and
  credit assets, given by name. With -c, checks a single category and fails
  when the event is illegal.
`
}

func (c *legalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Name of a single transaction category to check")
}

func (c *legalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a debit and a credit asset name")
		return subcommands.ExitUsageError
	}
	ds, err := LoadDataSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	var legs [2]moneywise.Asset
	for i, name := range f.Args() {
		if legs[i] = ds.FindAsset(name); legs[i] == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown asset %q\n", name)
			return subcommands.ExitFailure
		}
	}

	if c.category == "" {
		printMarkdown(renderer.RenderLegality(renderer.NewLegalityTable(ds, legs[0], legs[1])))
		return subcommands.ExitSuccess
	}
	category := ds.FindCategory(moneywise.KindTransactionCategory, c.category)
	if category == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown transaction category %q\n", c.category)
		return subcommands.ExitFailure
	}
	if !moneywise.IsValidEvent(category, legs[0], legs[1]) {
		fmt.Printf("%s from %s to %s is illegal\n", category.Name(), legs[0].Name(), legs[1].Name())
		return subcommands.ExitFailure
	}
	fmt.Printf("%s from %s to %s is legal\n", category.Name(), legs[0].Name(), legs[1].Name())
	return subcommands.ExitSuccess
}
