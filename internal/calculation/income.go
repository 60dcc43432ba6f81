package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// IncomeYear is the projected income of one year. All amounts are annual.
type IncomeYear struct {
	// Gross is every stream (bonus included) plus Social Security, before
	// contributions, deductions and tax.
	Gross                decimal.Decimal
	Wages                decimal.Decimal // taxable wages net of employee plan deferral
	OtherTaxable         decimal.Decimal // surviving streams after retirement
	NonTaxable           decimal.Decimal
	SocialSecurity       decimal.Decimal
	EmployeeContribution decimal.Decimal
	EmployerMatch        decimal.Decimal
	Deductions           decimal.Decimal // post-tax
}

// Cash is the money the household receives before tax: gross less plan
// deferrals and post-tax deductions.
func (y IncomeYear) Cash() decimal.Decimal {
	return y.Gross.Sub(y.EmployeeContribution).Sub(y.Deductions)
}

// Contributions is the total flowing into the pre-tax bucket.
func (y IncomeYear) Contributions() decimal.Decimal {
	return y.EmployeeContribution.Add(y.EmployerMatch)
}

// IncomeProjector projects income streams and Social Security.
type IncomeProjector struct {
	profile *domain.HouseholdProfile
	ss      *SocialSecurityCalculator
}

func NewIncomeProjector(profile *domain.HouseholdProfile) *IncomeProjector {
	return &IncomeProjector{
		profile: profile,
		ss:      NewSocialSecurityCalculator(profile.Assumptions),
	}
}

// compound returns (1+rate)^years.
func compound(rate decimal.Decimal, years int) decimal.Decimal {
	factor := decimal.NewFromInt(1)
	step := decimal.NewFromInt(1).Add(rate)
	for i := 0; i < years; i++ {
		factor = factor.Mul(step)
	}
	if factor.IsNegative() {
		return decimal.Zero
	}
	return factor
}

// Project returns the income for the year yearsElapsed after the start, when
// the household is age in calendar year.
func (ip *IncomeProjector) Project(yearsElapsed, age, year int) IncomeYear {
	retired := ip.profile.IsRetired(age)
	var out IncomeYear

	for _, s := range ip.profile.IncomeStreams {
		if retired && !s.SurvivesRetirement {
			continue
		}
		factor := compound(s.GrowthRate, yearsElapsed)
		amount := s.AnnualBase().Add(s.Bonus()).Mul(factor)
		out.Gross = out.Gross.Add(amount)
		out.Deductions = out.Deductions.Add(s.Deductions.Mul(factor))

		nonTaxable := s.NonTaxableUntil > 0 && year <= s.NonTaxableUntil
		if nonTaxable {
			out.NonTaxable = out.NonTaxable.Add(amount)
			continue
		}
		if retired {
			out.OtherTaxable = out.OtherTaxable.Add(amount)
			continue
		}
		deferral := s.EmployeeContribution().Mul(factor)
		out.EmployeeContribution = out.EmployeeContribution.Add(deferral)
		out.EmployerMatch = out.EmployerMatch.Add(s.EmployerMatch().Mul(factor))
		out.Wages = out.Wages.Add(amount.Sub(deferral))
	}

	out.SocialSecurity = ip.ss.AnnualBenefit(age, yearsElapsed)
	out.Gross = out.Gross.Add(out.SocialSecurity)
	return out
}
