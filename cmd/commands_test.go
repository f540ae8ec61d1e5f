package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/etnz/moneywise"
	"github.com/google/subcommands"
)

const testLedger = `{"kind":"transaction-category","name":"Totals","class":"Totals"}
{"kind":"transaction-category","name":"Expenses","class":"ExpenseTotals","parent":"Totals"}
{"kind":"transaction-category","name":"Expenses:Food","class":"Expense","parent":"Expenses"}
{"kind":"deposit-category","name":"Deposits","class":"DepositParent"}
{"kind":"deposit-category","name":"Deposits:Current","class":"Checking","parent":"Deposits"}
{"kind":"payee","name":"Bank","type":"Institution"}
{"kind":"payee","name":"Shop","type":"Payee"}
{"kind":"deposit","name":"Current","category":"Deposits:Current","currency":"GBP","parent":"Bank"}
{"kind":"transaction","id":1,"date":"2024-02-03","category":"Expenses:Food","debit":"Current","credit":"Shop","amount":{"amount":42.5,"currency":"GBP"}}
{"kind":"rate","date":"2024-01-01","from":"GBP","to":"USD","ratio":1.5}
`

// useDataSet points the global dataset flag to a temporary file holding
// content, and prints raw markdown.
func useDataSet(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "moneywise.jsonl")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}
	oldDataset, oldRaw := *datasetFile, *rawOutput
	*datasetFile, *rawOutput = name, true
	t.Cleanup(func() { *datasetFile, *rawOutput = oldDataset, oldRaw })
	return name
}

func execute(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Failed to parse %v: %v", args, err)
	}
	return cmd.Execute(context.Background(), f)
}

func TestValidateCmd(t *testing.T) {
	useDataSet(t, testLedger)
	if status := execute(t, &validateCmd{}); status != subcommands.ExitSuccess {
		t.Errorf("Expected ExitSuccess for a valid dataset, got %v", status)
	}

	useDataSet(t, testLedger+`{"kind":"payee","name":"Nameless"}`+"\n")
	if status := execute(t, &validateCmd{}); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure for an invalid dataset, got %v", status)
	}

	useDataSet(t, `{"kind":"deposit","name":"Current","parent":"Nobody"}`)
	if status := execute(t, &validateCmd{}); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure for an unresolved reference, got %v", status)
	}
}

func TestRebaseCmd(t *testing.T) {
	// Arrange
	useDataSet(t, testLedger)
	output := filepath.Join(t.TempDir(), "rebased.jsonl")

	// Act
	status := execute(t, &rebaseCmd{}, "-o", output, "usd")

	// Assert
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read rebased dataset: %v", err)
	}
	for _, want := range []string{
		`{"kind":"currency","code":"USD","enabled":true,"default":true}`,
		`{"kind":"rate","date":"2024-01-01","from":"USD","to":"GBP","ratio":0.6666666667}`,
	} {
		if !strings.Contains(string(got), want) {
			t.Errorf("Rebased dataset misses %s\nGot:\n%s", want, got)
		}
	}

	// the rebased dataset loads back with the same conversions
	ds, err := moneywise.LoadDataSet(output, nil)
	if err != nil {
		t.Fatalf("Failed to load rebased dataset: %v", err)
	}
	if ds.Rates.Default() != "USD" {
		t.Errorf("Expected USD as the default currency, got %q", ds.Rates.Default())
	}
}

func TestRebaseCmd_MissingRate(t *testing.T) {
	useDataSet(t, testLedger)
	if status := execute(t, &rebaseCmd{}, "-o", filepath.Join(t.TempDir(), "out.jsonl"), "EUR"); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure, got %v", status)
	}
	if status := execute(t, &rebaseCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError without a currency, got %v", status)
	}
}

func TestConvertCmd(t *testing.T) {
	useDataSet(t, testLedger)
	if status := execute(t, &convertCmd{}, "-d", "2024-06-01", "100", "usd"); status != subcommands.ExitSuccess {
		t.Errorf("Expected ExitSuccess, got %v", status)
	}
	if status := execute(t, &convertCmd{}, "-d", "2023-06-01", "100", "usd"); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure before the first rate, got %v", status)
	}
	if status := execute(t, &convertCmd{}, "100"); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError, got %v", status)
	}
}

func TestQuery(t *testing.T) {
	ds, err := moneywise.DecodeDataSet(strings.NewReader(testLedger), nil)
	if err != nil {
		t.Fatalf("Failed to decode dataset: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{`$[?(@.kind=="payee")].name`, []any{"Bank", "Shop"}},
		{`$[?(@.kind=="transaction")].amount.amount`, []any{42.5}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Query(ds, tt.path)
			if err != nil {
				t.Fatalf("Query(%q) failed: %v", tt.path, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Query(%q) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}

	if _, err := Query(ds, "$[?("); err == nil {
		t.Error("Expected an error for an invalid expression")
	}
}

func TestTopicCmd(t *testing.T) {
	useDataSet(t, testLedger)
	if status := execute(t, &topicCmd{}, "rates"); status != subcommands.ExitSuccess {
		t.Errorf("Expected ExitSuccess, got %v", status)
	}
	if status := execute(t, &topicCmd{}, "budget"); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure for an unknown topic, got %v", status)
	}
	if status := execute(t, &topicCmd{}, "-l"); status != subcommands.ExitSuccess {
		t.Errorf("Expected ExitSuccess when listing topics, got %v", status)
	}

	usage := (&topicCmd{}).Usage()
	for _, topic := range []string{"categories", "dataset", "pairs", "rates"} {
		if !strings.Contains(usage, topic) {
			t.Errorf("Usage does not list topic %q:\n%s", topic, usage)
		}
	}
}

func TestCommandsAreRegistered(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("moneywise", flag.ContinueOnError), "moneywise")
	Register(c)
	seen := map[string]bool{}
	for _, cmd := range Commands {
		if seen[cmd.Command.Name()] {
			t.Errorf("Command %q registered twice", cmd.Command.Name())
		}
		seen[cmd.Command.Name()] = true
	}
	for _, name := range []string{"validate", "convert", "rebase", "categories", "pairs", "legal", "dump", "topic"} {
		if !seen[name] {
			t.Errorf("Missing command %q", name)
		}
	}
}
