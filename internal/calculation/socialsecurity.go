package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MinimumCreditYears is the work history needed to receive a retirement benefit.
const MinimumCreditYears = 10

// SocialSecurityCalculator projects a claimed benefit. The configured monthly
// amount is the benefit at the claim age in today's dollars.
type SocialSecurityCalculator struct {
	ClaimAge    int
	Monthly     decimal.Decimal
	YearsWorked int
	COLA        decimal.Decimal
}

// NewSocialSecurityCalculator creates a calculator from profile assumptions.
// COLA follows the inflation assumption.
func NewSocialSecurityCalculator(a domain.Assumptions) *SocialSecurityCalculator {
	return &SocialSecurityCalculator{
		ClaimAge:    a.SSClaimAge,
		Monthly:     a.SSMonthly,
		YearsWorked: a.YearsWorked,
		COLA:        a.Inflation,
	}
}

// Eligible reports whether the work history and benefit amount allow a claim.
func (ssc *SocialSecurityCalculator) Eligible() bool {
	return ssc.YearsWorked >= MinimumCreditYears && ssc.Monthly.GreaterThan(decimal.Zero) && ssc.ClaimAge > 0
}

// ApplySSCOLA applies the annual Social Security COLA
func ApplySSCOLA(currentBenefit decimal.Decimal, colaRate decimal.Decimal) decimal.Decimal {
	return currentBenefit.Mul(decimal.NewFromInt(1).Add(colaRate))
}

// AnnualBenefit returns the nominal annual benefit yearsElapsed years after
// the projection start when the household is age.
func (ssc *SocialSecurityCalculator) AnnualBenefit(age, yearsElapsed int) decimal.Decimal {
	if !ssc.Eligible() || age < ssc.ClaimAge {
		return decimal.Zero
	}
	current := ssc.Monthly
	for y := 0; y < yearsElapsed; y++ {
		current = ApplySSCOLA(current, ssc.COLA)
	}
	return money.NewMoneyFromDecimal(current).Annual().Decimal
}
