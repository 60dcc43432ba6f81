package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.AmericanEnglish)
	hundred = decimal.NewFromInt(100)
)

// ParseMoney reads a user-entered currency value such as "$1,250.50" or
// " 300 ". Anything that does not parse yields zero.
func ParseMoney(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "("), ")")
	}
	cleaned = strings.NewReplacer("$", "", ",", "", "_", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return d.Neg()
	}
	return d
}

// ParsePercent reads a rate. "7%" and "7 %" mean 0.07; a bare number is
// taken as a fraction already ("0.07"). Malformed input yields zero.
func ParsePercent(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(s)
	if strings.HasSuffix(cleaned, "%") {
		return ParseMoney(strings.TrimSuffix(cleaned, "%")).Div(hundred)
	}
	return ParseMoney(cleaned)
}

// FormatCurrency renders d as grouped US dollars with cents, e.g. "-$1,234.57".
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Mul(hundred).IntPart()
	return printer.Sprintf("%s$%d.%02d", sign, whole.IntPart(), cents)
}

// FormatWholeCurrency renders d rounded to whole dollars, e.g. "$1,235".
func FormatWholeCurrency(d decimal.Decimal) string {
	rounded := d.Round(0)
	if rounded.IsNegative() {
		return printer.Sprintf("-$%d", rounded.Abs().IntPart())
	}
	return printer.Sprintf("$%d", rounded.IntPart())
}

// FormatPercent renders a fractional rate as a percentage, 0.0725 -> "7.25%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}
