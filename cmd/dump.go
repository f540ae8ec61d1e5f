package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/moneywise"
	"github.com/google/subcommands"
)

type dumpCmd struct {
	query string
}

func (*dumpCmd) Name() string     { return "dump" }
func (*dumpCmd) Synopsis() string { return "print the dataset, or a JSONPath selection of it" }
func (*dumpCmd) Usage() string {
	return `moneywise dump [-q <jsonpath>]

  Prints the live items of the dataset in their open representation, one
  JSON object per line. With -q, the items are gathered in a single JSON
  array and the JSONPath expression is evaluated against it.

Usage Examples:
# Names of every deposit.
$ moneywise dump -q '$[?(@.kind=="deposit")].name'
`
}

func (c *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "JSONPath expression to evaluate on the array of items")
}

func (c *dumpCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := LoadDataSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.query == "" {
		if err := moneywise.EncodeDataSet(os.Stdout, ds); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	v, err := Query(ds, c.query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

// Query evaluates a JSONPath expression against the array of the items of
// ds in their open representation.
func Query(ds *moneywise.DataSet, path string) (any, error) {
	var b bytes.Buffer
	if err := moneywise.EncodeDataSet(&b, ds); err != nil {
		return nil, err
	}
	var items []any
	scanner := bufio.NewScanner(&b)
	for scanner.Scan() {
		var item any
		if err := json.Unmarshal(scanner.Bytes(), &item); err != nil {
			return nil, fmt.Errorf("cannot read item %q: %w", scanner.Text(), err)
		}
		items = append(items, item)
	}
	v, err := jsonpath.Get(path, items)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return v, nil
}
