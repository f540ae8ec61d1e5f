package moneywise

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value in a given currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns the amount value in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses a decimal amount in currency.
func ParseMoney(amount, currency string) (Money, error) {
	v, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return Money{value: v, cur: currency}, nil
}

// currency returns the go-money description of the currency, never nil.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the formatted value, with the currency symbol.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string             { return m.cur }
func (m Money) Decimal() decimal.Decimal     { return m.value }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(r Ratio) Money            { return Money{value: m.value.Mul(r.value), cur: m.cur} }
func (m Money) DivRatio(r Ratio) Money       { return Money{value: m.value.Div(r.value), cur: m.cur} }
func (m Money) In(currency string) Money     { return Money{value: m.value, cur: currency} }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Abs() Money                   { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Cmp(n Money) int              { return m.value.Cmp(n.value) }
func (m Money) AsFloat() float64             { return m.value.InexactFloat64() }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value), cur: m.cur} }
func (m Money) WithinOf(n Money, d int) bool { return m.Sub(n).value.Abs().LessThanOrEqual(epsilon(d)) }

// Round rounds the value to the fraction digits of its currency.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur}
}

// epsilon returns 10^-d
func epsilon(d int) decimal.Decimal { return decimal.New(1, int32(-d)) }

type jsonMoney struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonMoney{Amount: m.value, Currency: m.cur})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var j jsonMoney
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	m.value, m.cur = j.Amount, j.Currency
	return nil
}

// Units is a quantity of security units.
type Units struct {
	value decimal.Decimal
}

// U returns value units.
func U[T float64 | int | int64 | decimal.Decimal](value T) Units {
	return Units{value: newDecimal(value)}
}

func (u Units) Equal(p Units) bool   { return u.value.Equal(p.value) }
func (u Units) IsPositive() bool     { return u.value.IsPositive() }
func (u Units) IsZero() bool         { return u.value.IsZero() }
func (u Units) String() string       { return u.value.String() }
func (u Units) Add(p Units) Units    { return Units{value: u.value.Add(p.value)} }
func (u Units) Mul(r Ratio) Units    { return Units{value: u.value.Mul(r.value)} }

func (u Units) MarshalJSON() ([]byte, error) { return u.value.MarshalJSON() }
func (u *Units) UnmarshalJSON(b []byte) error {
	return u.value.UnmarshalJSON(b)
}

// Ratio is a dimensionless factor: exchange rates and dilutions.
type Ratio struct {
	value decimal.Decimal
}

// R returns the ratio value.
func R[T float64 | int | int64 | decimal.Decimal](value T) Ratio {
	return Ratio{value: newDecimal(value)}
}

// ParseRatio parses a decimal ratio.
func ParseRatio(s string) (Ratio, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Ratio{}, fmt.Errorf("parse ratio %q: %w", s, err)
	}
	return Ratio{value: v}, nil
}

// ratioPrecision is the number of digits kept when deriving a ratio by
// division.
const ratioPrecision = 10

func (r Ratio) Equal(p Ratio) bool { return r.value.Equal(p.value) }
func (r Ratio) IsPositive() bool   { return r.value.IsPositive() }
func (r Ratio) IsZero() bool       { return r.value.IsZero() }
func (r Ratio) String() string     { return r.value.String() }
func (r Ratio) Mul(p Ratio) Ratio  { return Ratio{value: r.value.Mul(p.value)} }

// Inverse returns 1/r rounded to ratioPrecision digits.
func (r Ratio) Inverse() Ratio {
	return Ratio{value: decimal.NewFromInt(1).DivRound(r.value, ratioPrecision)}
}

// Div returns r/p rounded to ratioPrecision digits.
func (r Ratio) Div(p Ratio) Ratio {
	return Ratio{value: r.value.DivRound(p.value, ratioPrecision)}
}

func (r Ratio) MarshalJSON() ([]byte, error) { return r.value.MarshalJSON() }
func (r *Ratio) UnmarshalJSON(b []byte) error {
	return r.value.UnmarshalJSON(b)
}
