package output

import (
	"strconv"

	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as grouped USD with cents.
func FormatCurrency(amount decimal.Decimal) string { return money.FormatCurrency(amount) }

// FormatWholeCurrency formats a decimal as grouped whole dollars for tables.
func FormatWholeCurrency(amount decimal.Decimal) string { return money.FormatWholeCurrency(amount) }

// FormatPercentage formats a fractional rate as a percentage with 2 decimals.
func FormatPercentage(rate decimal.Decimal) string { return money.FormatPercent(rate) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// ageOrNever renders an optional age, e.g. a first-insolvency age.
func ageOrNever(age *int) string {
	if age == nil {
		return "never"
	}
	return intToString(*age)
}
