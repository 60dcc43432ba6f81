package calculation

import (
	"testing"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPovertyLine(t *testing.T) {
	tests := []struct {
		name         string
		size         int
		jurisdiction string
		expected     int64
	}{
		{"Single contiguous", 1, "CA", 15060},
		{"Family of three", 3, "TX", 25820},
		{"Alaska couple", 2, "AK", 25540},
		{"Hawaii single", 1, "hi", 17310},
		{"Unknown code uses contiguous", 1, "ZZ", 15060},
		{"Zero size", 0, "CA", 0},
		{"Negative size", -2, "CA", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, PovertyLine(tt.size, tt.jurisdiction).Equal(decimal.NewFromInt(tt.expected)))
		})
	}
}

func TestDetermineHealthCoverage(t *testing.T) {
	engine := NewBenefitEligibilityEngine(DefaultRules())

	tests := []struct {
		name               string
		magi               decimal.Decimal
		size               int
		jurisdiction       string
		pregnant           bool
		disabled           bool
		expectedTier       domain.HealthTier
		expectedPremium    decimal.Decimal
		expectedDeductible string
		description        string
	}{
		{
			name:               "Example 1 full coverage",
			magi:               dec(20000),
			size:               1,
			jurisdiction:       "CA",
			expectedTier:       domain.TierFullCoverage,
			expectedPremium:    decimal.Zero,
			expectedDeductible: "$0",
			description:        "Ratio 1.33 is inside the 1.38 Medicaid limit",
		},
		{
			name:               "Example 2 above the cliff",
			magi:               dec(80000),
			size:               1,
			jurisdiction:       "CA",
			expectedTier:       domain.TierStandardSubsidy,
			expectedPremium:    dec(1100),
			expectedDeductible: "$4,000+",
			description:        "Ratio 5.31 pays the unsubsidized premium",
		},
		{
			name:               "Example 3 Medicaid gap",
			magi:               dec(10000),
			size:               1,
			jurisdiction:       "TX",
			expectedTier:       domain.TierMedicaidGap,
			expectedPremium:    dec(1100),
			expectedDeductible: "$10,000+",
			description:        "Non-expansion state below 100% FPL",
		},
		{
			name:               "Pregnancy opens a pathway in a non-expansion state",
			magi:               dec(10000),
			size:               1,
			jurisdiction:       "TX",
			pregnant:           true,
			expectedTier:       domain.TierFullCoverage,
			expectedPremium:    decimal.Zero,
			expectedDeductible: "$0",
			description:        "Pregnant limit is 2.0",
		},
		{
			name:               "Disability opens a pathway",
			magi:               dec(18000),
			size:               1,
			jurisdiction:       "FL",
			disabled:           true,
			expectedTier:       domain.TierFullCoverage,
			expectedPremium:    decimal.Zero,
			expectedDeductible: "$0",
			description:        "Ratio 1.20 with disability",
		},
		{
			name:               "Enhanced subsidy",
			magi:               dec(30000),
			size:               1,
			jurisdiction:       "CA",
			expectedTier:       domain.TierEnhancedSubsidy,
			expectedPremium:    dec(113.67), // 30000 * (0.021 + 0.992*0.074/3) / 12
			expectedDeductible: "~$800",
			description:        "Ratio 1.99",
		},
		{
			name:               "Non-expansion above poverty gets subsidies",
			magi:               dec(18000),
			size:               1,
			jurisdiction:       "TX",
			expectedTier:       domain.TierEnhancedSubsidy,
			expectedPremium:    dec(38.72), // 18000 * (0.021 + 0.1952*0.074/3) / 12
			expectedDeductible: "~$800",
			description:        "No Medicaid pathway, ratio 1.20",
		},
		{
			name:               "Zero household size is ineligible",
			magi:               dec(10000),
			size:               0,
			jurisdiction:       "CA",
			expectedTier:       domain.TierUnsubsidized,
			expectedPremium:    dec(1100),
			expectedDeductible: "$4,000+",
			description:        "FPL of zero is guarded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := engine.HealthCoverage(tt.magi, tt.size, tt.jurisdiction, tt.pregnant, tt.disabled)
			assert.Equal(t, tt.expectedTier, hc.Tier, tt.description)
			assertDecimal(t, tt.expectedPremium, hc.MonthlyPremium, 0.01, tt.description)
			assert.Equal(t, tt.expectedDeductible, hc.Deductible, tt.description)
		})
	}
}

func TestHealthCoverage_FullCoverageAlwaysFree(t *testing.T) {
	fpl := PovertyLine(1, "CA")
	for magi := int64(0); magi <= 20000; magi += 500 {
		hc := DetermineHealthCoverage(decimal.NewFromInt(magi), fpl, true, false, false)
		if hc.Tier == domain.TierFullCoverage {
			assert.True(t, hc.MonthlyPremium.IsZero(), "magi %d", magi)
		}
	}
}

func TestHealthCoverage_PremiumContinuousBelowCliff(t *testing.T) {
	fpl := PovertyLine(1, "CA")
	lower := fpl.Mul(dec(1.4))
	upper := fpl.Mul(dec(3.99))
	step := dec(50)

	prev := DetermineHealthCoverage(lower, fpl, true, false, false).MonthlyPremium
	for magi := lower.Add(step); magi.LessThan(upper); magi = magi.Add(step) {
		hc := DetermineHealthCoverage(magi, fpl, true, false, false)
		assert.False(t, hc.AboveCliff)
		assert.True(t, hc.MonthlyPremium.GreaterThanOrEqual(prev), "premium decreased at %s", magi)
		assert.True(t, hc.MonthlyPremium.Sub(prev).LessThan(dec(2)), "premium jumped at %s", magi)
		prev = hc.MonthlyPremium
	}

	for _, ratio := range []float64{4.0, 4.5, 10} {
		hc := DetermineHealthCoverage(fpl.Mul(dec(ratio)), fpl, true, false, false)
		assert.True(t, hc.MonthlyPremium.Equal(UnsubsidizedMonthlyPremium), "ratio %v", ratio)
		assert.True(t, hc.AboveCliff)
	}
}
