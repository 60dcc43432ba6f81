package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// SNAPElderlyAge is the age at which a SNAP household counts as elderly.
const SNAPElderlyAge = 60

// BenefitRequest describes one household year for benefit determination.
// MAGI and EarnedIncome are annual.
type BenefitRequest struct {
	Year          int
	Age           int
	HouseholdSize int
	Adults        int
	FilingStatus  domain.FilingStatus
	Jurisdiction  string
	MAGI          decimal.Decimal
	EarnedIncome  decimal.Decimal
	Profile       domain.BenefitsProfile
}

// BenefitEligibilityEngine determines health coverage and SNAP from the rule set.
type BenefitEligibilityEngine struct {
	Rules        domain.RuleSet
	MedicareCalc *MedicareCalculator
}

// NewBenefitEligibilityEngine creates an engine over rules.
func NewBenefitEligibilityEngine(rules domain.RuleSet) *BenefitEligibilityEngine {
	return &BenefitEligibilityEngine{
		Rules:        rules,
		MedicareCalc: NewMedicareCalculator(rules.Medicare),
	}
}

// HealthCoverage returns the marketplace or Medicaid tier for an annual MAGI.
func (be *BenefitEligibilityEngine) HealthCoverage(magi decimal.Decimal, size int, jurisdiction string, pregnant, disabled bool) domain.HealthCoverage {
	j, _ := be.Rules.Lookup(jurisdiction)
	fpl := PovertyLineForRegion(size, regionOf(j))
	return DetermineHealthCoverage(magi, fpl, j.MedicaidExpansion(), pregnant, disabled)
}

// SNAP returns the monthly benefit, filling the jurisdiction's scale and
// utility allowance when the input leaves them unset.
func (be *BenefitEligibilityEngine) SNAP(in SNAPInput) decimal.Decimal {
	j, _ := be.Rules.Lookup(in.Jurisdiction)
	if in.ScaleFactor.IsZero() && !j.SNAPScale.IsZero() {
		in.ScaleFactor = j.SNAPScale
	}
	if in.UtilityAllowanceAmount.IsZero() {
		in.UtilityAllowanceAmount = j.UtilityAllowance
	}
	return CalculateSNAPBenefit(in)
}

// Determine evaluates health coverage and SNAP for one year. From Medicare
// eligibility age the marketplace tier is replaced by Part B premiums.
func (be *BenefitEligibilityEngine) Determine(req BenefitRequest) domain.BenefitDetermination {
	var health domain.HealthCoverage
	if be.MedicareCalc.IsEligible(req.Age) {
		adults := req.Adults
		if adults <= 0 {
			adults = 1
		}
		health = be.MedicareCalc.Coverage(req.MAGI, req.FilingStatus, adults)
		health.FPL = PovertyLine(req.HouseholdSize, req.Jurisdiction)
	} else {
		health = be.HealthCoverage(req.MAGI, req.HouseholdSize, req.Jurisdiction, req.Profile.Pregnant, req.Profile.Disabled)
	}

	earned := decimal.Min(nonNegative(req.EarnedIncome), nonNegative(req.MAGI))
	unearned := nonNegative(req.MAGI).Sub(earned)
	snap := be.SNAP(SNAPInput{
		EarnedMonthly:    money.NewMoneyFromDecimal(earned).Monthly().Decimal,
		UnearnedMonthly:  money.NewMoneyFromDecimal(unearned).Monthly().Decimal,
		HouseholdSize:    req.HouseholdSize,
		ShelterCost:      req.Profile.ShelterCost,
		UtilityAllowance: req.Profile.UtilityAllowance,
		Disabled:         req.Profile.Disabled,
		Elderly:          req.Age >= SNAPElderlyAge,
		ChildSupportPaid: req.Profile.ChildSupportPaid,
		DependentCare:    req.Profile.DependentCare,
		MedicalExpenses:  req.Profile.MedicalExpenses,
		Jurisdiction:     req.Jurisdiction,
		RoundDown:        true,
	})

	return domain.BenefitDetermination{
		Year:          req.Year,
		HouseholdSize: req.HouseholdSize,
		MAGI:          req.MAGI,
		Health:        health,
		SNAPMonthly:   snap,
	}
}

// EvaluateBenefits runs the standalone benefit check for a profile using its
// sandbox income as annual MAGI in the first projection year.
func (be *BenefitEligibilityEngine) EvaluateBenefits(profile *domain.HouseholdProfile) domain.BenefitDetermination {
	year := startYear(profile.Assumptions.StartYear)
	income := nonNegative(profile.Benefits.SandboxIncome)
	earned := decimal.Zero
	if profile.Benefits.EarnedIncome {
		earned = income
	}
	return be.Determine(BenefitRequest{
		Year:          year,
		Age:           profile.Assumptions.CurrentAge,
		HouseholdSize: profile.HouseholdSize(year),
		Adults:        profile.AdultCount(),
		FilingStatus:  profile.Assumptions.FilingStatus.OrDefault(),
		Jurisdiction:  profile.Assumptions.Jurisdiction,
		MAGI:          income,
		EarnedIncome:  earned,
		Profile:       profile.Benefits,
	})
}

func regionOf(j domain.Jurisdiction) domain.PovertyRegion {
	if j.Region != "" {
		return j.Region
	}
	return RegionFor(j.Code)
}
