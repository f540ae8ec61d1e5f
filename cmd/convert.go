package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/moneywise"
	"github.com/etnz/moneywise/date"
	"github.com/google/subcommands"
)

type convertCmd struct {
	date string
	to   string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert an amount with the exchange rates of the dataset" }
func (*convertCmd) Usage() string {
	return `moneywise convert [-d <date>] [-to <currency>] <amount> <currency>

  Converts the amount through the default currency of the dataset, using the
  latest rates on or before the date. The result is rounded to the target
  currency.

Usage Examples:
$ moneywise convert -to GBP 100 USD
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the rates to use")
	f.StringVar(&c.to, "to", "", "Target currency, the default currency of the dataset when empty")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected an amount and a currency")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := moneywise.ParseMoney(f.Arg(0), strings.ToUpper(f.Arg(1)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ds, err := LoadDataSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	target := strings.ToUpper(c.to)
	if target == "" {
		target = ds.Rates.Default()
	}
	converted, err := ds.Rates.ConvertCurrency(amount, target, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s = %s on %s\n", amount, converted, on)
	return subcommands.ExitSuccess
}
