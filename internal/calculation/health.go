package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	// UnsubsidizedMonthlyPremium is the full marketplace cost with no help.
	UnsubsidizedMonthlyPremium = decimal.NewFromInt(1100)

	medicaidLimitRatio         = decimal.NewFromFloat(1.38)
	medicaidLimitRatioPregnant = decimal.NewFromFloat(2.0)
	enhancedSubsidyRatio       = decimal.NewFromFloat(2.5)
	subsidyCliffRatio          = decimal.NewFromInt(4)

	minContributionPct = decimal.NewFromFloat(0.021)
	maxContributionPct = decimal.NewFromFloat(0.095)
)

const (
	deductibleNone     = "$0"
	deductibleEnhanced = "~$800"
	deductibleStandard = "$4,000+"
	deductibleGap      = "$10,000+"
)

// MedicaidLimitRatio is the FPL ratio at or below which Medicaid covers the household.
func MedicaidLimitRatio(pregnant bool) decimal.Decimal {
	if pregnant {
		return medicaidLimitRatioPregnant
	}
	return medicaidLimitRatio
}

// EnhancedSubsidyCeiling is the MAGI at the top of the enhanced-subsidy band.
func EnhancedSubsidyCeiling(fpl decimal.Decimal) decimal.Decimal {
	return fpl.Mul(enhancedSubsidyRatio)
}

// MarketplacePremium is the monthly premium for a subsidized tier. The
// contribution share rises linearly from 2.1% at 100% FPL to 9.5% at 400%;
// at or past the cliff the premium is the full unsubsidized cost.
func MarketplacePremium(magi, ratio decimal.Decimal) decimal.Decimal {
	if ratio.GreaterThanOrEqual(subsidyCliffRatio) {
		return UnsubsidizedMonthlyPremium
	}
	slope := maxContributionPct.Sub(minContributionPct).Div(subsidyCliffRatio.Sub(decimal.NewFromInt(1)))
	pct := minContributionPct.Add(ratio.Sub(decimal.NewFromInt(1)).Mul(slope))
	return money.NewMoneyFromDecimal(magi.Mul(pct)).Monthly().Decimal
}

// DetermineHealthCoverage is the single health-tier rule used everywhere.
func DetermineHealthCoverage(magi, fpl decimal.Decimal, expansion, pregnant, disabled bool) domain.HealthCoverage {
	if fpl.LessThanOrEqual(decimal.Zero) {
		return domain.HealthCoverage{
			Tier:           domain.TierUnsubsidized,
			MonthlyPremium: UnsubsidizedMonthlyPremium,
			Deductible:     deductibleStandard,
			AboveCliff:     true,
		}
	}

	ratio := magi.Div(fpl)
	hc := domain.HealthCoverage{FPL: fpl, Ratio: ratio}

	if !expansion && ratio.LessThan(decimal.NewFromInt(1)) && !pregnant && !disabled {
		hc.Tier = domain.TierMedicaidGap
		hc.MonthlyPremium = UnsubsidizedMonthlyPremium
		hc.Deductible = deductibleGap
		return hc
	}

	pathway := expansion || pregnant || disabled
	if pathway && ratio.LessThanOrEqual(MedicaidLimitRatio(pregnant)) {
		hc.Tier = domain.TierFullCoverage
		hc.MonthlyPremium = decimal.Zero
		hc.Deductible = deductibleNone
		return hc
	}

	if ratio.LessThanOrEqual(enhancedSubsidyRatio) {
		hc.Tier = domain.TierEnhancedSubsidy
		hc.Deductible = deductibleEnhanced
	} else {
		hc.Tier = domain.TierStandardSubsidy
		hc.Deductible = deductibleStandard
	}
	hc.MonthlyPremium = MarketplacePremium(magi, ratio)
	hc.AboveCliff = ratio.GreaterThanOrEqual(subsidyCliffRatio)
	return hc
}
