package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// MedicareCalculator handles Medicare Part B premium calculations including IRMAA
type MedicareCalculator struct {
	EligibilityAge  int
	BasePremium     decimal.Decimal
	IRMAAThresholds []domain.MedicareIRMAAThreshold
}

// NewMedicareCalculator creates a new Medicare calculator with configurable values
func NewMedicareCalculator(config domain.MedicareConfig) *MedicareCalculator {
	age := config.EligibilityAge
	if age == 0 {
		age = 65
	}
	return &MedicareCalculator{
		EligibilityAge:  age,
		BasePremium:     config.BasePremium,
		IRMAAThresholds: config.IRMAAThresholds,
	}
}

// IsEligible reports whether age qualifies for Medicare.
func (mc *MedicareCalculator) IsEligible(age int) bool {
	return age >= mc.EligibilityAge
}

// CalculatePartBPremium returns the monthly Part B premium per person. The
// surcharge is that of the highest IRMAA tier whose threshold MAGI exceeds.
func (mc *MedicareCalculator) CalculatePartBPremium(magi decimal.Decimal, isMarriedFilingJointly bool) decimal.Decimal {
	return mc.BasePremium.Add(mc.calculateIRMAASurcharge(magi, isMarriedFilingJointly))
}

func (mc *MedicareCalculator) calculateIRMAASurcharge(magi decimal.Decimal, isMarriedFilingJointly bool) decimal.Decimal {
	surcharge := decimal.Zero
	for _, threshold := range mc.IRMAAThresholds {
		limit := threshold.IncomeThresholdSingle
		if isMarriedFilingJointly {
			limit = threshold.IncomeThresholdJoint
		}
		if !magi.GreaterThan(limit) {
			break
		}
		surcharge = threshold.MonthlySurcharge
	}
	return surcharge
}

// Coverage returns the household's Medicare coverage: Part B for each adult,
// reported as a monthly premium.
func (mc *MedicareCalculator) Coverage(magi decimal.Decimal, status domain.FilingStatus, adults int) domain.HealthCoverage {
	joint := status == domain.FilingMarriedJoint
	perPerson := mc.CalculatePartBPremium(magi, joint)
	return domain.HealthCoverage{
		Tier:           domain.TierMedicare,
		MonthlyPremium: perPerson.Mul(decimal.NewFromInt(int64(adults))),
		Deductible:     "Part B",
	}
}
