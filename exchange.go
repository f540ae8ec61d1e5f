package moneywise

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/etnz/moneywise/date"
)

// ExchangeRate is the ratio to convert one unit of the default currency into
// another currency from a given date.
type ExchangeRate struct{ Item }

func newExchangeRate() *ExchangeRate { return &ExchangeRate{Item: newItem(KindExchangeRate, false)} }

func (r *ExchangeRate) Date() date.Date       { return r.getDate(FieldDate) }
func (r *ExchangeRate) SetDate(day date.Date) { r.set(FieldDate, day) }
func (r *ExchangeRate) From() string          { return r.getString(FieldFrom) }
func (r *ExchangeRate) SetFrom(code string)   { r.set(FieldFrom, code) }
func (r *ExchangeRate) To() string            { return r.getString(FieldTo) }
func (r *ExchangeRate) SetTo(code string)     { r.set(FieldTo, code) }
func (r *ExchangeRate) SetRatio(ratio Ratio)  { r.set(FieldRatio, ratio) }

func (r *ExchangeRate) String() string {
	return fmt.Sprintf("%s %s>%s %s", r.Date(), r.From(), r.To(), r.Ratio())
}

// Ratio returns the ratio, zero when unset.
func (r *ExchangeRate) Ratio() Ratio {
	v, _ := r.get(FieldRatio).(Ratio)
	return v
}

func (r *ExchangeRate) Validate() {
	r.clearErrors()
	if r.Date().IsZero() {
		r.addError(FieldDate, msgMissing)
	}
	from, to := r.From(), r.To()
	switch {
	case from == "":
		r.addError(FieldFrom, msgMissing)
	case r.ds.currency(from) == nil:
		r.addError(FieldFrom, msgInvalid)
	case from != r.ds.Rates.Default():
		r.addError(FieldFrom, msgNotPivot)
	}
	switch {
	case to == "":
		r.addError(FieldTo, msgMissing)
	case r.ds.currency(to) == nil:
		r.addError(FieldTo, msgInvalid)
	case to == from:
		r.addError(FieldTo, msgSameCurrency)
	}
	if !r.Ratio().IsPositive() {
		r.addError(FieldRatio, msgPositive)
	}
	for o := range r.ds.Rates.list.Live() {
		if o.id != r.id && o.Date() == r.Date() && o.From() == from && o.To() == to {
			r.addError(FieldDate, msgDuplicate)
			break
		}
	}
}

func (r *ExchangeRate) touchUnderlyingItems() {
	for _, code := range []string{r.From(), r.To()} {
		if c := r.ds.currency(code); c != nil {
			c.touch()
		}
	}
}

// compareRates orders rates by date, target currency then id.
func compareRates(a, b *ExchangeRate) int {
	return cmp.Or(a.Date().Compare(b.Date()), cmp.Compare(a.To(), b.To()), cmp.Compare(a.id, b.id))
}

// ExchangeRateTable holds the rates of a dataset, all expressed from the
// default (pivot) currency.
type ExchangeRateTable struct {
	ds   *DataSet
	list *List[*ExchangeRate]
}

// List returns the rates of the table.
func (t *ExchangeRateTable) List() *List[*ExchangeRate] { return t.list }

// Default returns the code of the pivot currency.
func (t *ExchangeRateTable) Default() string {
	for c := range t.ds.Currencies.Live() {
		if c.IsDefault() {
			return c.Code()
		}
	}
	return ""
}

// Add creates the rate from the pivot to currency to on day.
func (t *ExchangeRateTable) Add(day date.Date, to string, ratio Ratio) *ExchangeRate {
	r := t.list.New()
	r.SetDate(day)
	r.SetFrom(t.Default())
	r.SetTo(to)
	r.SetRatio(ratio)
	return r
}

// sorted returns the live rates in ascending date order.
func (t *ExchangeRateTable) sorted() []*ExchangeRate {
	rates := slices.Collect(t.list.Live())
	slices.SortStableFunc(rates, compareRates)
	return rates
}

// lookup returns the latest rate from the pivot to currency on or before
// day. The scan stops at the first rate past day.
func lookup(rates []*ExchangeRate, pivot, currency string, day date.Date) (Ratio, error) {
	var found *ExchangeRate
	for _, r := range rates {
		if r.Date().After(day) {
			break
		}
		if r.From() == pivot && r.To() == currency {
			found = r
		}
	}
	if found == nil {
		return Ratio{}, &RateLookupError{From: pivot, To: currency, On: day}
	}
	return found.Ratio(), nil
}

// lookupOn returns the rate from pivot to currency dated exactly day.
func lookupOn(rates []*ExchangeRate, pivot, currency string, day date.Date) (Ratio, error) {
	for _, r := range rates {
		if r.Date() == day && r.From() == pivot && r.To() == currency {
			return r.Ratio(), nil
		}
	}
	return Ratio{}, &RateLookupError{From: pivot, To: currency, On: day}
}

// Rate returns the latest rate from the pivot to currency on or before day.
func (t *ExchangeRateTable) Rate(currency string, day date.Date) (Ratio, error) {
	return lookup(t.sorted(), t.Default(), currency, day)
}

// ConvertCurrency converts amount into target using the rates on day,
// through the pivot currency. The result is rounded to the target currency.
func (t *ExchangeRateTable) ConvertCurrency(amount Money, target string, day date.Date) (Money, error) {
	if amount.Currency() == target {
		return amount, nil
	}
	rates, pivot := t.sorted(), t.Default()
	v := amount
	if v.Currency() != pivot {
		r, err := lookup(rates, pivot, v.Currency(), day)
		if err != nil {
			return Money{}, fmt.Errorf("convert %s to %s: %w", amount, target, err)
		}
		v = v.DivRatio(r).In(pivot)
	}
	if target != pivot {
		r, err := lookup(rates, pivot, target, day)
		if err != nil {
			return Money{}, fmt.Errorf("convert %s to %s: %w", amount, target, err)
		}
		v = v.Mul(r).In(target)
	}
	return v.Round(), nil
}

// SetDefaultCurrency rebases every rate on the currency code and makes it
// the pivot. Rates are processed by date, each combined with the rate from
// the old pivot to code on the same date. A date without that rate fails the
// whole rebase before anything is modified. Every modified item is pushed at
// a single dataset version, so DataSet.Undo reverts the rebase.
func (t *ExchangeRateTable) SetDefaultCurrency(code string) error {
	ds := t.ds
	old := t.Default()
	if code == old {
		return nil
	}
	next := ds.currency(code)
	if next == nil {
		return fmt.Errorf("set default currency %q: %w", code, ErrUnresolvedReference)
	}

	rates := t.sorted()
	type group struct {
		day   date.Date
		pivot Ratio // old pivot to new pivot
		rates []*ExchangeRate
	}
	var groups []group
	for _, r := range rates {
		if n := len(groups); n > 0 && groups[n-1].day == r.Date() {
			groups[n-1].rates = append(groups[n-1].rates, r)
			continue
		}
		p, err := lookupOn(rates, old, code, r.Date())
		if err != nil {
			return fmt.Errorf("set default currency %s: %w", code, err)
		}
		groups = append(groups, group{day: r.Date(), pivot: p, rates: []*ExchangeRate{r}})
	}

	version := ds.BeginChange()
	for _, g := range groups {
		for _, r := range g.rates {
			r.PushHistory()
			r.SetFrom(code)
			if r.To() == code {
				r.SetTo(old)
				r.SetRatio(r.Ratio().Inverse())
			} else {
				r.SetRatio(r.Ratio().Div(g.pivot))
			}
			r.CheckForHistory()
		}
		ds.log.Debug().Stringer("date", g.day).Int("rates", len(g.rates)).Msg("rebased exchange rates")
	}
	if prev := ds.currency(old); prev != nil {
		prev.PushHistory()
		prev.SetDefault(false)
		prev.CheckForHistory()
	}
	next.PushHistory()
	next.SetDefault(true)
	next.CheckForHistory()
	ds.log.Info().Str("from", old).Str("to", code).Int("version", version).Msg("default currency changed")
	return nil
}
