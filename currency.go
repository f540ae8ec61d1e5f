package moneywise

import (
	"cmp"

	"github.com/Rhymond/go-money"
)

// Currency is a currency known to the dataset.
type Currency struct{ Item }

func newCurrency() *Currency { return &Currency{Item: newItem(KindCurrency, false)} }

// Code returns the ISO code of the currency.
func (c *Currency) Code() string { return c.getString(FieldCode) }

func (c *Currency) SetCode(code string) { c.set(FieldCode, code) }

// Enabled reports whether the currency can be used by new accounts.
func (c *Currency) Enabled() bool { return c.getBool(FieldEnabled) }

func (c *Currency) SetEnabled(enabled bool) { c.set(FieldEnabled, enabled) }

// IsDefault reports whether the currency is the pivot of the rate table.
func (c *Currency) IsDefault() bool { return c.getBool(FieldDefault) }

func (c *Currency) SetDefault(def bool) { c.set(FieldDefault, def) }

// Fraction returns the number of minor unit digits of the currency.
func (c *Currency) Fraction() int {
	if cur := money.GetCurrency(c.Code()); cur != nil {
		return cur.Fraction
	}
	return 2
}

func (c *Currency) Validate() {
	c.clearErrors()
	code := c.Code()
	switch {
	case code == "":
		c.addError(FieldCode, msgMissing)
	case money.GetCurrency(code) == nil:
		c.addError(FieldCode, msgInvalid)
	}
	for o := range c.ds.Currencies.Live() {
		if o.id == c.id {
			continue
		}
		if o.Code() == code {
			c.addError(FieldCode, msgDuplicate)
		}
		if o.IsDefault() && c.IsDefault() {
			c.addError(FieldDefault, msgSingular)
		}
	}
	if c.IsDefault() && !c.Enabled() {
		c.addError(FieldDefault, msgDisabled)
	}
}

func (c *Currency) touchUnderlyingItems() {}

func compareCurrencies(a, b *Currency) int { return cmp.Compare(a.Code(), b.Code()) }
