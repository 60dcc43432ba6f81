package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "1500", "1500"},
		{"currency symbol and grouping", "$1,250.50", "1250.5"},
		{"surrounding whitespace", "  300 ", "300"},
		{"negative", "-42.10", "-42.1"},
		{"accounting negative", "($75)", "-75"},
		{"underscore grouping", "1_000_000", "1000000"},
		{"empty", "", "0"},
		{"garbage", "abc", "0"},
		{"nan text", "NaN", "0"},
		{"trailing junk", "12abc", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMoney(tt.input)
			assert.True(t, got.Equal(stddec.RequireFromString(tt.expected)), "ParseMoney(%q) = %s", tt.input, got)
		})
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"percent sign", "7%", "0.07"},
		{"percent with space", "2.5 %", "0.025"},
		{"fraction", "0.15", "0.15"},
		{"garbage", "lots%", "0"},
		{"empty", "", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePercent(tt.input)
			assert.True(t, got.Equal(stddec.RequireFromString(tt.expected)), "ParsePercent(%q) = %s", tt.input, got)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "$0.00"},
		{"1234.567", "$1,234.57"},
		{"1000000", "$1,000,000.00"},
		{"-2500.5", "-$2,500.50"},
		{"0.05", "$0.05"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(stddec.RequireFromString(tt.input)))
		})
	}
}

func TestFormatWholeCurrencyAndPercent(t *testing.T) {
	assert.Equal(t, "$1,235", FormatWholeCurrency(stddec.RequireFromString("1234.5")))
	assert.Equal(t, "-$80,000", FormatWholeCurrency(stddec.NewFromInt(-80000)))
	assert.Equal(t, "7.25%", FormatPercent(stddec.RequireFromString("0.0725")))
}
