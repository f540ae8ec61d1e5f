package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moneywise"
	"github.com/etnz/moneywise/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type pairsCmd struct {
	lookup string
}

func (*pairsCmd) Name() string     { return "pairs" }
func (*pairsCmd) Synopsis() string { return "list the legal asset pairs of a transaction" }
func (*pairsCmd) Usage() string {
	return `moneywise pairs [-n <name>]

  Lists every pair of asset kinds a transaction can move value between, with
  its code. Use -n to look up a single pair by name, like "Deposit-Payee".
`
}

func (c *pairsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.lookup, "n", "", "Name of a pair to look up")
}

func (c *pairsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m := moneywise.NewAssetPairManager(uuid.New())
	if c.lookup == "" {
		printMarkdown(renderer.RenderPairs(renderer.NewPairTable(m)))
		return subcommands.ExitSuccess
	}
	p, err := m.LookUpName(c.lookup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s %d\n", p.Name(), p.ID())
	return subcommands.ExitSuccess
}
