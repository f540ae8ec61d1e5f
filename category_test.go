package moneywise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_SubCategoryNames(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		category *Category
		name     string
		label    string
	}{
		{f.totals, "Totals", "Totals"},
		{f.income, "Income", "Income"}, // children of totals are not prefixed
		{f.salary, "Income:Salary", "Salary"},
		{f.split, "Securities:Split", "Split"},
		{f.checking, "Deposits:Current", "Current"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.category.Name())
			assert.Equal(t, tt.label, tt.category.SubCategory())
		})
	}
}

func TestCategory_RenameCascadesToChildren(t *testing.T) {
	f := newFixture(t)

	// WHEN the income parent is renamed
	f.ds.BeginChange()
	f.income.PushHistory()
	f.income.SetSubCategoryName("Earnings")
	require.True(t, f.income.CheckForHistory())

	// THEN its direct children follow, each with one pushed frame
	assert.Equal(t, "Earnings", f.income.Name())
	assert.Equal(t, "Earnings:Salary", f.salary.Name())
	assert.Equal(t, "Earnings:Gift", f.gift.Name())
	assert.Equal(t, 1, f.salary.Depth())
	assert.Equal(t, EditDirty, f.salary.EditState())
	assert.Equal(t, "Expenses:Food", f.food.Name())
	assert.Empty(t, f.ds.Validate())

	// WHEN renamed again to the same label, nothing is pushed
	f.income.SetSubCategoryName("Earnings")
	assert.Equal(t, 1, f.salary.Depth())

	// WHEN the change is undone, the cascade is undone too
	require.True(t, f.ds.Undo())
	assert.Equal(t, "Income", f.income.Name())
	assert.Equal(t, "Income:Salary", f.salary.Name())
	assert.Equal(t, Clean, f.salary.State())
	assert.Equal(t, 0, f.salary.Depth())
}

func TestCategory_TotalsRenameDoesNotCascade(t *testing.T) {
	f := newFixture(t)
	f.totals.PushHistory()
	f.totals.SetSubCategoryName("All")

	assert.Equal(t, "All", f.totals.Name())
	assert.Equal(t, "Income", f.income.Name())
	assert.Equal(t, 0, f.income.Depth())
}

func TestCategory_Validate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture) *Category
		field FieldID
		msg   string
	}{
		{
			name: "missing name",
			setup: func(f *fixture) *Category {
				c := f.ds.TransactionCategories.New()
				c.SetClass(Expense)
				c.SetParent(f.expenses)
				return c
			},
			field: FieldName,
			msg:   msgMissing,
		},
		{
			name: "duplicate name",
			setup: func(f *fixture) *Category {
				return addCategory(f.ds, KindTransactionCategory, Expense, f.expenses, "Food")
			},
			field: FieldName,
			msg:   msgDuplicate,
		},
		{
			name: "wrong parent class",
			setup: func(f *fixture) *Category {
				return addCategory(f.ds, KindTransactionCategory, Expense, f.income, "Rent")
			},
			field: FieldParent,
			msg:   msgBadParent,
		},
		{
			name: "missing parent",
			setup: func(f *fixture) *Category {
				return addCategory(f.ds, KindTransactionCategory, Expense, nil, "Rent")
			},
			field: FieldParent,
			msg:   msgMissing,
		},
		{
			name: "top level with a parent",
			setup: func(f *fixture) *Category {
				return addCategory(f.ds, KindDepositCategory, DepositParent, f.deposits, "More")
			},
			field: FieldParent,
			msg:   msgNotAllowed,
		},
		{
			name: "singular class",
			setup: func(f *fixture) *Category {
				return addCategory(f.ds, KindTransactionCategory, Transfer, f.totals, "Move")
			},
			field: FieldClass,
			msg:   msgSingular,
		},
		{
			name: "class of another kind",
			setup: func(f *fixture) *Category {
				return addCategory(f.ds, KindTransactionCategory, DepositChecking, f.deposits, "Odd")
			},
			field: FieldClass,
			msg:   msgInvalid,
		},
		{
			name: "separator under totals",
			setup: func(f *fixture) *Category {
				c := addCategory(f.ds, KindTransactionCategory, ExpenseTotals, f.totals, "Other")
				c.SetName("Other:Costs")
				return c
			},
			field: FieldName,
			msg:   msgBadSeparator,
		},
		{
			name: "name not following the parent",
			setup: func(f *fixture) *Category {
				c := addCategory(f.ds, KindTransactionCategory, Expense, f.expenses, "Rent")
				c.SetName("Costs:Rent")
				return c
			},
			field: FieldName,
			msg:   msgParentName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := tt.setup(f)
			c.Validate()
			assert.True(t, c.Errors().HasError(tt.field, tt.msg), "got %s", c.Errors())
		})
	}
}

func TestCategory_DisabledClass(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.DisabledClasses = []string{"Inherited"}
	ds := NewDataSet(cfg)
	totals := addCategory(ds, KindTransactionCategory, Totals, nil, "Totals")
	income := addCategory(ds, KindTransactionCategory, IncomeTotals, totals, "Income")
	c := addCategory(ds, KindTransactionCategory, Inherited, income, "Legacy")

	c.Validate()
	assert.True(t, c.Errors().HasError(FieldClass, msgDisabled))
}

func TestCategory_TouchedByUsers(t *testing.T) {
	f := newFixture(t)
	f.ds.TouchAll()
	assert.True(t, f.income.IsTouched(), "parent of salary")
	assert.False(t, f.salary.IsTouched())
	assert.True(t, f.salary.IsDeletable())

	f.tx("2024-01-31", f.salary, f.acme, f.current, M(100, "GBP"))
	f.ds.TouchAll()
	assert.True(t, f.salary.IsTouched())
}
