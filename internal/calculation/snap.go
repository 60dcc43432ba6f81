package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// SNAP RULES (FY2025, 48 states and DC; monthly figures)
//
// Gross test at 130% of poverty, skipped for elderly or disabled households.
// Net test at 100% of poverty. Alaska and Hawaii scale the allotment and
// income tables by a jurisdiction factor.

var (
	snapMaxAllotment = []int64{292, 536, 768, 975, 1158, 1390, 1536, 1756}
	snapGrossLimit   = []int64{1632, 2215, 2798, 3380, 3963, 4546, 5129, 5712}
	snapNetLimit     = []int64{1255, 1704, 2152, 2600, 3049, 3497, 3945, 4394}

	snapAllotmentPerExtra  int64 = 220
	snapGrossLimitPerExtra int64 = 583
	snapNetLimitPerExtra   int64 = 449

	snapEarnedIncomeDeduction = decimal.NewFromFloat(0.20)
	snapBenefitReduction      = decimal.NewFromFloat(0.30)
	snapShelterCap            = decimal.NewFromInt(712)
	snapMedicalThreshold      = decimal.NewFromInt(35)
	snapMinimumBenefit        = decimal.NewFromInt(23)

	// DefaultUtilityAllowance is the standard utility allowance used when the
	// jurisdiction does not publish one.
	DefaultUtilityAllowance = decimal.NewFromInt(450)
)

// SNAPInput is a household's monthly SNAP case. Money fields are monthly.
type SNAPInput struct {
	EarnedMonthly          decimal.Decimal
	UnearnedMonthly        decimal.Decimal
	OtherMonthly           decimal.Decimal
	HouseholdSize          int
	ShelterCost            decimal.Decimal
	UtilityAllowance       bool
	UtilityAllowanceAmount decimal.Decimal // zero uses DefaultUtilityAllowance
	Disabled               bool
	Elderly                bool
	ChildSupportPaid       decimal.Decimal
	DependentCare          decimal.Decimal
	MedicalExpenses        decimal.Decimal
	Jurisdiction           string
	ScaleFactor            decimal.Decimal // zero uses the jurisdiction default
	RoundDown              bool
}

func snapTable(table []int64, perExtra int64, size int) decimal.Decimal {
	if size <= len(table) {
		return decimal.NewFromInt(table[size-1])
	}
	last := table[len(table)-1]
	return decimal.NewFromInt(last + int64(size-len(table))*perExtra)
}

func snapStandardDeduction(size int) decimal.Decimal {
	switch {
	case size <= 3:
		return decimal.NewFromInt(204)
	case size == 4:
		return decimal.NewFromInt(217)
	case size == 5:
		return decimal.NewFromInt(254)
	default:
		return decimal.NewFromInt(291)
	}
}

// DefaultSNAPScale is the table scale for a jurisdiction.
func DefaultSNAPScale(jurisdiction string) decimal.Decimal {
	switch RegionFor(jurisdiction) {
	case domain.RegionAlaska:
		return decimal.NewFromFloat(1.25)
	case domain.RegionHawaii:
		return decimal.NewFromFloat(1.15)
	}
	return decimal.NewFromInt(1)
}

// CalculateSNAPBenefit returns the monthly SNAP allotment. It is never
// negative and is zero for households that fail an income test.
func CalculateSNAPBenefit(in SNAPInput) decimal.Decimal {
	if in.HouseholdSize <= 0 {
		return decimal.Zero
	}
	scale := in.ScaleFactor
	if scale.LessThanOrEqual(decimal.Zero) {
		scale = DefaultSNAPScale(in.Jurisdiction)
	}
	size := in.HouseholdSize
	elderlyOrDisabled := in.Elderly || in.Disabled

	earned := nonNegative(in.EarnedMonthly)
	gross := earned.Add(nonNegative(in.UnearnedMonthly)).Add(nonNegative(in.OtherMonthly))

	if !elderlyOrDisabled && gross.GreaterThan(snapTable(snapGrossLimit, snapGrossLimitPerExtra, size).Mul(scale)) {
		return decimal.Zero
	}

	adjusted := gross.
		Sub(earned.Mul(snapEarnedIncomeDeduction)).
		Sub(snapStandardDeduction(size)).
		Sub(nonNegative(in.DependentCare)).
		Sub(nonNegative(in.ChildSupportPaid))
	if elderlyOrDisabled {
		medical := nonNegative(in.MedicalExpenses).Sub(snapMedicalThreshold)
		adjusted = adjusted.Sub(nonNegative(medical))
	}
	adjusted = nonNegative(adjusted)

	shelter := nonNegative(in.ShelterCost)
	if in.UtilityAllowance {
		sua := in.UtilityAllowanceAmount
		if sua.IsZero() {
			sua = DefaultUtilityAllowance
		}
		shelter = shelter.Add(sua)
	}
	excessShelter := nonNegative(shelter.Sub(adjusted.Div(decimal.NewFromInt(2))))
	if !elderlyOrDisabled {
		excessShelter = decimal.Min(excessShelter, snapShelterCap)
	}

	net := nonNegative(adjusted.Sub(excessShelter))
	if net.GreaterThan(snapTable(snapNetLimit, snapNetLimitPerExtra, size).Mul(scale)) {
		return decimal.Zero
	}

	benefit := snapTable(snapMaxAllotment, snapAllotmentPerExtra, size).Mul(scale).Sub(net.Mul(snapBenefitReduction))
	if size <= 2 && benefit.LessThan(snapMinimumBenefit) {
		benefit = snapMinimumBenefit
	}
	benefit = nonNegative(benefit)
	if in.RoundDown {
		benefit = benefit.Floor()
	}
	return benefit
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
