package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/moneywise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledger = `
{"kind":"transaction-category","name":"Totals","class":"Totals"}
{"kind":"transaction-category","name":"Income","class":"IncomeTotals","parent":"Totals"}
{"kind":"transaction-category","name":"Expenses","class":"ExpenseTotals","parent":"Totals"}
{"kind":"transaction-category","name":"Income:Salary","class":"TaxedIncome","parent":"Income"}
{"kind":"transaction-category","name":"Expenses:Food","class":"Expense","parent":"Expenses","description":"Groceries | markets"}
{"kind":"deposit-category","name":"Deposits","class":"DepositParent"}
{"kind":"deposit-category","name":"Deposits:Current","class":"Checking","parent":"Deposits"}
{"kind":"payee","name":"ACME","type":"Employer"}
{"kind":"payee","name":"Bank","type":"Institution"}
{"kind":"payee","name":"Shop"}
{"kind":"deposit","name":"Current","category":"Deposits:Current","currency":"GBP","parent":"Bank"}
`

func loadLedger(t *testing.T) *moneywise.DataSet {
	t.Helper()
	ds, err := moneywise.DecodeDataSet(strings.NewReader(ledger), nil)
	require.NoError(t, err)
	return ds
}

func TestRenderDiagnostics(t *testing.T) {
	ds := loadLedger(t)
	d := NewDiagnostics(ds)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "Shop", d.Items[0].Name)
	assert.Equal(t, ds.LiveCount(), d.Checked)

	md := RenderDiagnostics(d)
	assert.Contains(t, md, "1 of ")
	assert.Contains(t, md, "| payee ")
	assert.Contains(t, md, "| Shop | Clean | Type | must be set |")
}

func TestRenderDiagnostics_NoErrors(t *testing.T) {
	md := RenderDiagnostics(&Diagnostics{DataSet: "ds", Checked: 4})
	assert.Equal(t, "# Validation of ds\n\nNo errors in 4 items.\n", md)
}

func TestRenderCategories(t *testing.T) {
	ds := loadLedger(t)
	tree := NewCategoryTree(ds, moneywise.KindTransactionCategory)
	require.Len(t, tree.Rows, 5)
	assert.Equal(t, "Totals", tree.Rows[0].Label)
	assert.Equal(t, "", tree.Rows[0].Indent)
	assert.Equal(t, "› › ", tree.Rows[2].Indent)

	md := RenderCategories(tree)
	assert.Contains(t, md, "| › Income | IncomeTotals |  |")
	assert.Contains(t, md, "| › › Salary | TaxedIncome |  |")
	assert.Contains(t, md, `Groceries \| markets`)

	empty := RenderCategories(NewCategoryTree(ds, moneywise.KindLoanCategory))
	assert.Contains(t, empty, "No categories.")
}

func TestRenderPairs(t *testing.T) {
	ds := loadLedger(t)
	md := RenderPairs(NewPairTable(ds.Pairs))
	assert.Contains(t, md, "| 17 | Deposit-Payee | Deposit | Payee |")
	assert.Contains(t, md, "| 10 | Payee-Deposit | Payee | Deposit |")
	assert.NotContains(t, md, "Payee-Payee")
}

func TestRenderLegality(t *testing.T) {
	table := &LegalityTable{
		Debit:  "ACME",
		Credit: "Current",
		Rows: []LegalityRow{
			{Name: "Income:Salary", Class: "TaxedIncome", Legal: true},
			{Name: "Expenses:Food", Class: "Expense", Legal: false},
		},
	}
	want := "# ACME to Current\n\n" +
		"| Category | Class | Legal |\n" +
		"|:---|:---|:---:|\n" +
		"| Income:Salary | TaxedIncome | yes |\n" +
		"| Expenses:Food | Expense | no |\n"
	assert.Equal(t, want, RenderLegality(table))

	ds := loadLedger(t)
	got := NewLegalityTable(ds, ds.FindAsset("ACME"), ds.FindAsset("Current"))
	// parent categories are skipped, incomes come before expenses
	assert.Equal(t, []LegalityRow{
		{Name: "Income:Salary", Class: "TaxedIncome", Legal: true},
		{Name: "Expenses:Food", Class: "Expense", Legal: true},
	}, got.Rows)
}

func TestOutput(t *testing.T) {
	md := RenderPairs(&PairTable{Rows: []PairRow{{Code: 17, Name: "Deposit-Payee", Debit: "Deposit", Credit: "Payee"}}})

	html, err := HTML(md)
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Deposit-Payee")

	out, err := Terminal(md, 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Deposit-Payee")
}
