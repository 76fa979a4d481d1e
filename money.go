package stockfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a display amount in a single currency, used by the command
// layer to format valuations. Arithmetic on prices and holdings stays in
// decimal; Money only carries the result to the terminal.
type Money struct {
	value decimal.Decimal // major units
	cur   string
}

// USD wraps a dollar amount.
func USD(value float64) Money {
	return Money{value: decimal.NewFromFloat(value), cur: "USD"}
}

// currency returns the full currency definition, never nil.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency's grapheme and separators,
// rounded to the currency's fraction.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

func (m Money) Currency() string   { return m.cur }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) IsNegative() bool   { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }

// SignedString prefixes positive amounts with "+" and renders zero as "-",
// for gain/loss columns.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
