package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money is a currency amount carried at full decimal precision.
type Money struct {
	decimal.Decimal
}

// NewMoney converts a float to Money. NaN and infinities become zero so they
// can never leak into balances or taxes.
func NewMoney(value float64) Money {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero()
	}
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal wraps a decimal.Decimal.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString parses a strict decimal string.
// Use ParseMoney for user-entered text.
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Annual converts a monthly amount to annual.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly.
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Grow applies one period of growth at rate, flooring the result at zero.
func (m Money) Grow(rate decimal.Decimal) Money {
	grown := m.Decimal.Mul(decimal.NewFromInt(1).Add(rate))
	if grown.IsNegative() {
		return Zero()
	}
	return Money{grown}
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// String renders the amount with two fraction digits and no grouping.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as grouped US currency.
func (m Money) Format() string {
	return FormatCurrency(m.Decimal)
}
