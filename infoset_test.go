package moneywise

import (
	"testing"

	"github.com/etnz/moneywise/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoSet_ChangeComposesIntoOwnerState(t *testing.T) {
	f := newFixture(t)
	current := f.current

	f.ds.BeginChange()
	current.PushHistory()
	require.NoError(t, current.SetSortCode("12-34-56"))

	// the owner fields are Clean, the attribute set makes it Changed
	assert.Empty(t, current.ChangedFields())
	assert.Equal(t, Changed, current.State())
	assert.Equal(t, EditDirty, current.EditState())
	assert.True(t, current.HasHistory())
	assert.True(t, current.CheckForHistory())

	current.PopHistory()
	assert.Equal(t, "", current.SortCode())
	assert.Equal(t, Clean, current.State())
	assert.False(t, current.HasHistory())
}

func TestInfoSet_CheckForHistorySelfHeals(t *testing.T) {
	f := newFixture(t)
	current := f.current

	current.PushHistory()
	require.NoError(t, current.SetSortCode("12-34-56"))
	require.NoError(t, current.SetSortCode(""))

	assert.False(t, current.CheckForHistory())
	assert.False(t, current.HasHistory())
	assert.Equal(t, Clean, current.State())
}

func TestInfoSet_UndoAcrossDepths(t *testing.T) {
	f := newFixture(t)
	d := f.current

	d.PushHistory()
	require.NoError(t, d.SetSortCode("11-11-11"))
	d.PushHistory()
	require.NoError(t, d.SetMaturity(date.MustParse("2030-01-01")))
	require.NoError(t, d.SetSortCode("22-22-22"))

	d.PopHistory()
	assert.Equal(t, "11-11-11", d.SortCode())
	assert.True(t, d.Maturity().IsZero())

	d.PopHistory()
	assert.Equal(t, "", d.SortCode())
	assert.Equal(t, Clean, d.State())
}

func TestInfoSet_CommitKeepsLiveEntries(t *testing.T) {
	f := newFixture(t)
	d := f.current
	require.NoError(t, d.SetSortCode("12-34-56"))
	require.NoError(t, d.Info().SetValue(InfoNotes, "joint"))
	require.NoError(t, d.Info().SetValue(InfoNotes, nil))
	require.NoError(t, f.ds.Commit())

	assert.Equal(t, Clean, d.State())
	assert.Equal(t, []InfoClass{InfoSortCode}, d.Info().Classes())
}

func TestInfoSet_ContractErrors(t *testing.T) {
	f := newFixture(t)

	// tags are built without an attribute set
	tag := f.ds.Tags.New()
	err := tag.Info().SetValue(InfoNotes, "x")
	assert.ErrorIs(t, err, ErrNoAttributeSet)
	assert.True(t, IsContractError(err))

	err = f.current.Info().SetValue(InfoSortCode, 12)
	assert.ErrorIs(t, err, ErrWrongInfoType)
	assert.True(t, IsContractError(err))

	err = f.current.Info().SetValue(InfoTransactionTag, 1)
	assert.ErrorIs(t, err, ErrWrongInfoType)

	// view items have a read-only attribute set
	view := f.ds.ViewSet(date.Range{})
	d, ok := view.Deposits.Get(f.current.ID())
	require.True(t, ok)
	assert.ErrorIs(t, d.SetSortCode("12-34-56"), ErrNoAttributeSet)
}

func TestInfoSet_Validate(t *testing.T) {
	f := newFixture(t)

	// GIVEN an auto expense cash with an opening balance
	pocket := f.pocket
	require.NoError(t, pocket.Info().SetValue(InfoAutoExpense, f.food.ID()))
	require.NoError(t, pocket.Info().SetValue(InfoOpeningBalance, M(10, "GBP")))
	pocket.Validate()
	assert.True(t, pocket.Errors().HasError(InfoAutoExpense.Field(), msgExclusive))

	// GIVEN a dangling link
	require.NoError(t, pocket.Info().SetValue(InfoOpeningBalance, nil))
	require.NoError(t, pocket.Info().SetValue(InfoAutoPayee, 999))
	pocket.Validate()
	assert.True(t, pocket.Errors().HasError(InfoAutoPayee.Field(), msgInvalid))
	assert.False(t, pocket.Errors().HasError(InfoAutoExpense.Field(), msgExclusive))

	// GIVEN a class that does not apply to the owner
	require.NoError(t, f.shop.Info().SetValue(InfoSortCode, "12-34-56"))
	f.shop.Validate()
	assert.True(t, f.shop.Errors().HasError(InfoSortCode.Field(), msgOwnerMismatch))

	// GIVEN a too long value
	require.NoError(t, f.current.SetSortCode("0123456789-0123456789"))
	f.current.Validate()
	assert.True(t, f.current.Errors().HasError(InfoSortCode.Field(), msgTooLong))
}

func TestInfoSet_LinkSet(t *testing.T) {
	f := newFixture(t)
	a, b := f.ds.Tags.New(), f.ds.Tags.New()
	a.SetName("a")
	b.SetName("b")
	tx := f.tx("2024-01-01", f.food, f.current, f.shop, M(10, "GBP"))

	require.NoError(t, tx.SetTags(a.ID(), b.ID()))
	assert.Equal(t, []int{a.ID(), b.ID()}, tx.Tags())

	tx.PushHistory()
	require.NoError(t, tx.SetTags(b.ID()))
	assert.Equal(t, []int{b.ID()}, tx.Tags())

	tx.PopHistory()
	assert.ElementsMatch(t, []int{a.ID(), b.ID()}, tx.Tags())

	require.NoError(t, f.ds.Commit())
	f.ds.TouchAll()
	assert.True(t, a.IsTouched())
	assert.False(t, a.IsDeletable())
}
