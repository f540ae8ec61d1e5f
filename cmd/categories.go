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

// categoryKinds are the values of the -k flag.
var categoryKinds = map[string]moneywise.ItemKind{
	"deposit":     moneywise.KindDepositCategory,
	"cash":        moneywise.KindCashCategory,
	"loan":        moneywise.KindLoanCategory,
	"transaction": moneywise.KindTransactionCategory,
}

type categoriesCmd struct {
	kind string
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "display a category tree" }
func (*categoriesCmd) Usage() string {
	return `moneywise categories [-k deposit|cash|loan|transaction]

  Displays the categories of one kind from the top level categories down to
  their sub-categories.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "transaction", "Kind of categories: deposit, cash, loan or transaction")
}

func (c *categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, ok := categoryKinds[c.kind]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown category kind %q\n", c.kind)
		return subcommands.ExitUsageError
	}
	ds, err := LoadDataSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderCategories(renderer.NewCategoryTree(ds, kind)))
	return subcommands.ExitSuccess
}
