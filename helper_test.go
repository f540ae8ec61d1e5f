package moneywise

import (
	"testing"

	"github.com/etnz/moneywise/date"
	"github.com/stretchr/testify/require"
)

// fixture is a committed dataset with one item of most kinds.
type fixture struct {
	ds *DataSet

	totals, income, expenses, securities *Category
	transfer, salary, gift, food, split  *Category

	deposits, checking, cashes, wallets, autos, loans, cards *Category

	bank, acme, mum, shop *Payee

	current, savings *Deposit
	wallet, pocket   *Cash
	visa             *Loan
	isa              *Portfolio
	shares, options  *Security
}

func addCategory(ds *DataSet, kind ItemKind, class CategoryClass, parent *Category, label string) *Category {
	c := ds.Categories(kind).New()
	c.SetClass(class)
	c.SetParent(parent)
	c.SetSubCategoryName(label)
	return c
}

func addPayee(ds *DataSet, name string, t PayeeType) *Payee {
	p := ds.Payees.New()
	p.SetName(name)
	p.SetType(t)
	return p
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ds := NewDataSet(nil)
	f := &fixture{ds: ds}

	trx := KindTransactionCategory
	f.totals = addCategory(ds, trx, Totals, nil, "Totals")
	f.income = addCategory(ds, trx, IncomeTotals, f.totals, "Income")
	f.expenses = addCategory(ds, trx, ExpenseTotals, f.totals, "Expenses")
	f.securities = addCategory(ds, trx, SecurityParent, f.totals, "Securities")
	f.transfer = addCategory(ds, trx, Transfer, f.totals, "Transfer")
	f.salary = addCategory(ds, trx, TaxedIncome, f.income, "Salary")
	f.gift = addCategory(ds, trx, GiftedIncome, f.income, "Gift")
	f.food = addCategory(ds, trx, Expense, f.expenses, "Food")
	f.split = addCategory(ds, trx, StockSplit, f.securities, "Split")

	f.deposits = addCategory(ds, KindDepositCategory, DepositParent, nil, "Deposits")
	f.checking = addCategory(ds, KindDepositCategory, DepositChecking, f.deposits, "Current")
	f.cashes = addCategory(ds, KindCashCategory, CashParent, nil, "Cash")
	f.wallets = addCategory(ds, KindCashCategory, CashStandard, f.cashes, "Wallet")
	f.autos = addCategory(ds, KindCashCategory, CashAutoExpense, f.cashes, "Auto")
	f.loans = addCategory(ds, KindLoanCategory, LoanParent, nil, "Loans")
	f.cards = addCategory(ds, KindLoanCategory, LoanCreditCard, f.loans, "Card")

	f.bank = addPayee(ds, "Bank", PayeeInstitution)
	f.acme = addPayee(ds, "ACME", PayeeEmployer)
	f.mum = addPayee(ds, "Mum", PayeeIndividual)
	f.shop = addPayee(ds, "Shop", PayeeStandard)

	f.current = ds.Deposits.New()
	f.current.SetName("Current")
	f.current.SetCategory(f.checking)
	f.current.SetCurrency("GBP")
	f.current.SetParent(f.bank)

	f.savings = ds.Deposits.New()
	f.savings.SetName("Savings")
	f.savings.SetCategory(f.checking)
	f.savings.SetCurrency("GBP")
	f.savings.SetParent(f.bank)

	f.wallet = ds.Cash.New()
	f.wallet.SetName("Wallet")
	f.wallet.SetCategory(f.wallets)
	f.wallet.SetCurrency("GBP")

	f.pocket = ds.Cash.New()
	f.pocket.SetName("Pocket")
	f.pocket.SetCategory(f.autos)

	f.visa = ds.Loans.New()
	f.visa.SetName("Visa")
	f.visa.SetCategory(f.cards)
	f.visa.SetCurrency("GBP")
	f.visa.SetParent(f.bank)

	f.isa = ds.Portfolios.New()
	f.isa.SetName("ISA")
	f.isa.SetType(PortfolioTaxFree)
	f.isa.SetCurrency("GBP")
	f.isa.SetParent(f.bank)

	f.shares = ds.Securities.New()
	f.shares.SetName("ACME Shares")
	f.shares.SetType(SecurityShares)
	f.shares.SetCurrency("GBP")
	f.shares.SetParent(f.bank)

	f.options = ds.Securities.New()
	f.options.SetName("ACME Options")
	f.options.SetType(SecurityStockOption)
	f.options.SetCurrency("GBP")
	f.options.SetParent(f.bank)

	require.NoError(t, ds.Commit(), "fixture must be valid")
	return f
}

// tx creates a transaction, not validated.
func (f *fixture) tx(day string, c *Category, debit, credit Asset, amount Money) *Transaction {
	t := f.ds.Transactions.New()
	t.SetDate(date.MustParse(day))
	t.SetCategory(c)
	t.SetAssets(debit, credit)
	t.SetAmount(amount)
	return t
}

// testDataSet is a small dataset in its open representation.
const testDataSet = `
{"kind":"transaction-category","name":"Totals","class":"Totals"}
{"kind":"transaction-category","name":"Income","class":"IncomeTotals","parent":"Totals"}
{"kind":"transaction-category","name":"Expenses","class":"ExpenseTotals","parent":"Totals"}
{"kind":"transaction-category","name":"Transfer","class":"Transfer","parent":"Totals"}
{"kind":"transaction-category","name":"Income:Salary","class":"TaxedIncome","parent":"Income"}
{"kind":"transaction-category","name":"Expenses:Food","class":"Expense","parent":"Expenses"}
{"kind":"deposit-category","name":"Deposits","class":"DepositParent"}
{"kind":"deposit-category","name":"Deposits:Current","class":"Checking","parent":"Deposits"}
{"kind":"tag","name":"holiday"}
{"kind":"payee","name":"ACME","type":"Employer"}
{"kind":"payee","name":"Bank","type":"Institution"}
{"kind":"payee","name":"Shop","type":"Payee"}
{"kind":"deposit","name":"Current","category":"Deposits:Current","currency":"GBP","parent":"Bank","info":{"SortCode":"12-34-56"}}
{"kind":"transaction","id":1,"date":"2024-01-31","category":"Income:Salary","pair":"Payee-Deposit","debit":"ACME","credit":"Current","amount":{"amount":2000,"currency":"GBP"},"reconciled":true}
{"kind":"transaction","id":2,"date":"2024-02-03","category":"Expenses:Food","debit":"Current","credit":"Shop","amount":{"amount":42.5,"currency":"GBP"},"split":true,"info":{"TransactionTag":["holiday"]}}
{"kind":"transaction","id":3,"date":"2024-02-03","category":"Expenses:Food","debit":"Current","credit":"Shop","amount":{"amount":12.5,"currency":"GBP"},"parent":2}
{"kind":"rate","date":"2024-01-01","from":"GBP","to":"USD","ratio":1.5}
`
