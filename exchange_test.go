package moneywise

import (
	"errors"
	"testing"

	"github.com/etnz/moneywise/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateTable_ConvertAndRebase(t *testing.T) {
	f := newFixture(t)
	rates := f.ds.Rates
	rates.Add(date.MustParse("2024-01-01"), "USD", R(1.5))
	rates.Add(date.MustParse("2024-01-01"), "EUR", R(1.2))
	require.NoError(t, f.ds.Commit())

	day := date.MustParse("2024-06-01")
	convert := func(amount Money, target string) Money {
		t.Helper()
		m, err := rates.ConvertCurrency(amount, target, day)
		require.NoError(t, err)
		return m
	}

	// GIVEN GBP as the pivot
	assert.Equal(t, "GBP", rates.Default())
	assert.Equal(t, "£66.67", convert(M(100, "USD"), "GBP").String())
	assert.True(t, M(125, "USD").Equal(convert(M(100, "EUR"), "USD")))

	// WHEN rebased on USD
	require.NoError(t, rates.SetDefaultCurrency("USD"))
	assert.Equal(t, "USD", rates.Default())
	for r := range rates.List().Live() {
		assert.Equal(t, "USD", r.From())
	}

	// THEN conversions are unchanged
	assert.True(t, M(66.67, "GBP").Equal(convert(M(100, "USD"), "GBP")))
	assert.True(t, M(125, "USD").Equal(convert(M(100, "EUR"), "USD")))
	eur := convert(M(100, "GBP"), "EUR")
	assert.True(t, M(100, "GBP").WithinOf(convert(eur, "GBP"), 2))
	assert.Empty(t, f.ds.Validate())
}

func TestExchangeRateTable_RebaseKeepsConversionsOverTime(t *testing.T) {
	f := newFixture(t)
	rates := f.ds.Rates
	for _, r := range []struct {
		day      string
		usd, eur float64
	}{
		{"2024-01-01", 2, 3},
		{"2024-02-01", 2.5, 4},
		{"2024-03-01", 5, 4.5},
	} {
		rates.Add(date.MustParse(r.day), "USD", R(r.usd))
		rates.Add(date.MustParse(r.day), "EUR", R(r.eur))
	}
	require.NoError(t, f.ds.Commit())

	conversions := []struct {
		amount Money
		target string
	}{
		{M(100, "EUR"), "USD"},
		{M(100, "USD"), "GBP"},
		{M(100, "GBP"), "EUR"},
	}
	days := []string{"2024-01-15", "2024-02-01", "2024-02-15", "2024-03-15"}
	convertAll := func() []Money {
		t.Helper()
		var got []Money
		for _, day := range days {
			for _, c := range conversions {
				m, err := rates.ConvertCurrency(c.amount, c.target, date.MustParse(day))
				require.NoError(t, err)
				got = append(got, m)
			}
		}
		return got
	}

	before := convertAll()
	require.NoError(t, rates.SetDefaultCurrency("USD"))
	after := convertAll()
	for i := range before {
		assert.True(t, before[i].WithinOf(after[i], 2), "conversion %d: before %s, after %s", i, before[i], after[i])
	}
}

func TestExchangeRateTable_RebaseNeedsPivotRateOnEachDate(t *testing.T) {
	f := newFixture(t)
	rates := f.ds.Rates
	rates.Add(date.MustParse("2024-01-01"), "USD", R(2))
	rates.Add(date.MustParse("2024-01-01"), "EUR", R(3))
	rates.Add(date.MustParse("2024-02-01"), "EUR", R(4))
	rates.Add(date.MustParse("2024-03-01"), "USD", R(5))
	require.NoError(t, f.ds.Commit())

	// 2024-02-01 has no GBP to USD rate of its own
	err := rates.SetDefaultCurrency("USD")
	assert.ErrorIs(t, err, ErrRateNotFound)
	var lookupErr *RateLookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, "2024-02-01", lookupErr.On.String())

	assert.Equal(t, "GBP", rates.Default())
	assert.Equal(t, 0, f.ds.Version())
	for r := range rates.List().Live() {
		assert.Equal(t, "GBP", r.From())
		assert.Equal(t, Clean, r.State())
	}
}

func TestExchangeRateTable_RateLookup(t *testing.T) {
	f := newFixture(t)
	rates := f.ds.Rates
	rates.Add(date.MustParse("2024-01-01"), "USD", R(1.5))
	rates.Add(date.MustParse("2024-03-01"), "USD", R(1.25))

	r, err := rates.Rate("USD", date.MustParse("2024-02-29"))
	require.NoError(t, err)
	assert.True(t, R(1.5).Equal(r))

	r, err = rates.Rate("USD", date.MustParse("2024-03-01"))
	require.NoError(t, err)
	assert.True(t, R(1.25).Equal(r))

	_, err = rates.ConvertCurrency(M(100, "USD"), "GBP", date.MustParse("2023-12-31"))
	assert.ErrorIs(t, err, ErrRateNotFound)
	var lookupErr *RateLookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, "GBP", lookupErr.From)
	assert.Equal(t, "USD", lookupErr.To)

	same, err := rates.ConvertCurrency(M(3, "JPY"), "JPY", date.Date{})
	require.NoError(t, err)
	assert.True(t, M(3, "JPY").Equal(same))
}

func TestExchangeRateTable_RebaseNeedsPivotRate(t *testing.T) {
	f := newFixture(t)
	rates := f.ds.Rates
	rates.Add(date.MustParse("2023-06-01"), "EUR", R(1.1))
	rates.Add(date.MustParse("2024-01-01"), "USD", R(1.5))
	require.NoError(t, f.ds.Commit())

	// the EUR rate predates any GBP to USD rate
	err := rates.SetDefaultCurrency("USD")
	assert.ErrorIs(t, err, ErrRateNotFound)

	assert.Equal(t, 0, f.ds.Version())
	assert.Equal(t, "GBP", rates.Default())
	for r := range rates.List().Live() {
		assert.Equal(t, "GBP", r.From())
		assert.Equal(t, Clean, r.State())
	}

	assert.ErrorIs(t, rates.SetDefaultCurrency("XXX"), ErrUnresolvedReference)
	assert.NoError(t, rates.SetDefaultCurrency("GBP"))
}

func TestExchangeRateTable_UndoRebase(t *testing.T) {
	f := newFixture(t)
	rates := f.ds.Rates
	usd := rates.Add(date.MustParse("2024-01-01"), "USD", R(1.5))
	require.NoError(t, f.ds.Commit())

	require.NoError(t, rates.SetDefaultCurrency("USD"))
	assert.Equal(t, "USD", usd.From())
	assert.Equal(t, "GBP", usd.To())
	assert.Equal(t, Changed, usd.State())

	require.True(t, f.ds.Undo())
	assert.Equal(t, "GBP", rates.Default())
	assert.Equal(t, "GBP", usd.From())
	assert.Equal(t, "USD", usd.To())
	assert.True(t, R(1.5).Equal(usd.Ratio()))
	assert.Equal(t, Clean, usd.State())
	assert.Equal(t, Clean, f.ds.Currency("USD").State())
}

func TestExchangeRate_Validate(t *testing.T) {
	f := newFixture(t)
	day := date.MustParse("2024-01-01")

	r := f.ds.Rates.List().New()
	r.SetDate(day)
	r.SetFrom("USD")
	r.SetTo("EUR")
	r.SetRatio(R(0.9))
	r.Validate()
	assert.True(t, r.Errors().HasError(FieldFrom, msgNotPivot))

	a := f.ds.Rates.Add(day, "USD", R(1.5))
	b := f.ds.Rates.Add(day, "USD", R(1.4))
	a.Validate()
	b.Validate()
	assert.True(t, a.Errors().HasError(FieldDate, msgDuplicate))
	assert.True(t, b.Errors().HasError(FieldDate, msgDuplicate))

	c := f.ds.Rates.Add(day, "GBP", R(0))
	c.Validate()
	assert.True(t, c.Errors().HasError(FieldTo, msgSameCurrency))
	assert.True(t, c.Errors().HasError(FieldRatio, msgPositive))
}
