package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets and standard deductions come from the rule set and are
//    not indexed for inflation in later projection years.
// 2. Long-term gains are taxed at a single configured rate. Gains stack on top
//    of ordinary income, so unused standard deduction shelters them first.
// 3. State tax applies to ordinary income plus all gains. Social Security is
//    exempt from state tax.
// 4. FICA applies to wages only.
// 5. The 10% early-withdrawal penalty applies to pre-tax and Roth-earnings
//    draws before age 60 (whole-year approximation of 59 1/2).

const (
	// PenaltyFreeAge is the first age at which retirement-account draws avoid the penalty.
	PenaltyFreeAge = 60

	grossUpMaxIterations = 20
)

var (
	earlyWithdrawalPenaltyRate = decimal.NewFromFloat(0.10)
	grossUpTolerance           = decimal.NewFromFloat(0.01)
)

// applyBrackets walks contiguous brackets; a zero Max marks the open top bracket.
func applyBrackets(brackets []domain.TaxBracket, taxable decimal.Decimal) decimal.Decimal {
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	tax := decimal.Zero
	for _, b := range brackets {
		if taxable.LessThanOrEqual(b.Min) {
			break
		}
		upper := taxable
		if !b.Max.IsZero() {
			upper = decimal.Min(taxable, b.Max)
		}
		inBracket := upper.Sub(b.Min)
		if inBracket.GreaterThan(decimal.Zero) {
			tax = tax.Add(inBracket.Mul(b.Rate))
		}
	}
	return tax
}

// FederalTaxCalculator handles federal ordinary income tax.
type FederalTaxCalculator struct {
	StandardDeduction map[domain.FilingStatus]decimal.Decimal
	AdditionalStdDed  decimal.Decimal // per person 65+
	Brackets          map[domain.FilingStatus][]domain.TaxBracket
}

// NewFederalTaxCalculator creates a federal calculator from rule tables.
func NewFederalTaxCalculator(config domain.FederalTaxConfig) *FederalTaxCalculator {
	return &FederalTaxCalculator{
		StandardDeduction: config.StandardDeduction,
		AdditionalStdDed:  config.AdditionalStandardDeduction,
		Brackets:          config.Brackets,
	}
}

func (ftc *FederalTaxCalculator) bracketsFor(status domain.FilingStatus) []domain.TaxBracket {
	if b, ok := ftc.Brackets[status]; ok {
		return b
	}
	return ftc.Brackets[domain.FilingSingle]
}

// StandardDeductionFor returns the standard deduction including the add-on for each senior.
func (ftc *FederalTaxCalculator) StandardDeductionFor(status domain.FilingStatus, seniors int) decimal.Decimal {
	std, ok := ftc.StandardDeduction[status]
	if !ok {
		std = ftc.StandardDeduction[domain.FilingSingle]
	}
	for i := 0; i < seniors; i++ {
		std = std.Add(ftc.AdditionalStdDed)
	}
	return std
}

// CalculateFederalTax applies the standard deduction and brackets to ordinary income.
func (ftc *FederalTaxCalculator) CalculateFederalTax(ordinaryIncome decimal.Decimal, status domain.FilingStatus, seniors int) decimal.Decimal {
	taxable := ordinaryIncome.Sub(ftc.StandardDeductionFor(status, seniors))
	return applyBrackets(ftc.bracketsFor(status), taxable)
}

// StateTaxCalculator taxes income under one jurisdiction's flat rate or brackets.
type StateTaxCalculator struct {
	Jurisdiction domain.Jurisdiction
}

func NewStateTaxCalculator(j domain.Jurisdiction) *StateTaxCalculator {
	return &StateTaxCalculator{Jurisdiction: j}
}

// CalculateTax returns state tax on income. Bracket tables win over the flat
// rate; a missing filing status falls back to the single table.
func (stc *StateTaxCalculator) CalculateTax(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	cfg := stc.Jurisdiction.StateTax
	if len(cfg.Brackets) > 0 {
		brackets, ok := cfg.Brackets[status]
		if !ok {
			brackets = cfg.Brackets[domain.FilingSingle]
		}
		if len(brackets) > 0 {
			return applyBrackets(brackets, income)
		}
	}
	return income.Mul(cfg.FlatRate)
}

// FICACalculator handles FICA tax calculations
type FICACalculator struct {
	SSWageBase          decimal.Decimal
	SSRate              decimal.Decimal
	MedicareRate        decimal.Decimal
	AdditionalRate      decimal.Decimal
	AdditionalThreshold map[domain.FilingStatus]decimal.Decimal
}

// NewFICACalculator creates a new FICA calculator with configurable values
func NewFICACalculator(config domain.FICATaxConfig) *FICACalculator {
	return &FICACalculator{
		SSWageBase:          config.SocialSecurityWageBase,
		SSRate:              config.SocialSecurityRate,
		MedicareRate:        config.MedicareRate,
		AdditionalRate:      config.AdditionalMedicareRate,
		AdditionalThreshold: config.AdditionalThreshold,
	}
}

// CalculateFICA calculates Social Security and Medicare tax on household wages.
func (fc *FICACalculator) CalculateFICA(wages decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if wages.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	ssTax := decimal.Min(wages, fc.SSWageBase).Mul(fc.SSRate)
	medicareTax := wages.Mul(fc.MedicareRate)

	threshold, ok := fc.AdditionalThreshold[status]
	if !ok {
		threshold = fc.AdditionalThreshold[domain.FilingSingle]
	}
	var additional decimal.Decimal
	if !threshold.IsZero() && wages.GreaterThan(threshold) {
		additional = wages.Sub(threshold).Mul(fc.AdditionalRate)
	}
	return ssTax.Add(medicareTax).Add(additional)
}

// SSTaxCalculator handles Social Security taxation calculations
type SSTaxCalculator struct{}

// NewSSTaxCalculator creates a new Social Security tax calculator
func NewSSTaxCalculator() *SSTaxCalculator {
	return &SSTaxCalculator{}
}

func ssThresholds(status domain.FilingStatus) (decimal.Decimal, decimal.Decimal) {
	if status == domain.FilingMarriedJoint {
		return decimal.NewFromInt(32000), decimal.NewFromInt(44000)
	}
	return decimal.NewFromInt(25000), decimal.NewFromInt(34000)
}

// CalculateTaxableSocialSecurity determines the federally taxable portion of benefits.
// Up to 50% is taxable between the two provisional-income thresholds and up
// to 85% above the second.
func (sstc *SSTaxCalculator) CalculateTaxableSocialSecurity(totalSSBenefitAnnual, provisionalIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if totalSSBenefitAnnual.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	threshold1, threshold2 := ssThresholds(status)
	half := decimal.NewFromFloat(0.5)

	if provisionalIncome.LessThanOrEqual(threshold1) {
		return decimal.Zero
	}
	if provisionalIncome.LessThanOrEqual(threshold2) {
		return decimal.Min(provisionalIncome.Sub(threshold1).Mul(half), totalSSBenefitAnnual.Mul(half))
	}

	taxableAmountA := totalSSBenefitAnnual.Mul(decimal.NewFromFloat(0.85))
	tierOne := decimal.Min(threshold2.Sub(threshold1).Mul(half), totalSSBenefitAnnual.Mul(half))
	taxableAmountB := provisionalIncome.Sub(threshold2).Mul(decimal.NewFromFloat(0.85)).Add(tierOne)
	return decimal.Min(taxableAmountA, taxableAmountB)
}

// CalculateProvisionalIncome is other income plus non-taxable interest plus half of benefits.
func (sstc *SSTaxCalculator) CalculateProvisionalIncome(otherIncome, nontaxableInterest, ssBenefits decimal.Decimal) decimal.Decimal {
	return otherIncome.Add(nontaxableInterest).Add(ssBenefits.Mul(decimal.NewFromFloat(0.5)))
}

// YearTaxState is every taxable amount of one household year.
type YearTaxState struct {
	Wages          decimal.Decimal
	OrdinaryOther  decimal.Decimal // pensions, pre-tax draws, short-term equity spread
	SocialSecurity decimal.Decimal
	LongTermGains  decimal.Decimal
	ShortTermGains decimal.Decimal
	PenaltyBase    decimal.Decimal // early retirement-account draws
	NonTaxable     decimal.Decimal // reported only; never taxed, excluded from MAGI
	Seniors        int
}

// Ordinary is income taxed at ordinary rates before Social Security.
func (s YearTaxState) Ordinary() decimal.Decimal {
	return s.Wages.Add(s.OrdinaryOther).Add(s.ShortTermGains)
}

// MAGI adds the untaxed share of Social Security back to adjusted gross income,
// which amounts to counting benefits in full.
func (s YearTaxState) MAGI() decimal.Decimal {
	return s.Ordinary().Add(s.LongTermGains).Add(s.SocialSecurity)
}

// Gross is every income amount, taxable or not.
func (s YearTaxState) Gross() decimal.Decimal {
	return s.MAGI().Add(s.NonTaxable)
}

// TaxBreakdown is the tax owed on a YearTaxState.
type TaxBreakdown struct {
	Federal      decimal.Decimal
	State        decimal.Decimal
	FICA         decimal.Decimal
	CapitalGains decimal.Decimal
	Penalty      decimal.Decimal
	Total        decimal.Decimal
	TaxableSS    decimal.Decimal
}

// TaxCalculator combines every tax for one household's filing status and jurisdiction.
type TaxCalculator struct {
	FederalTaxCalc *FederalTaxCalculator
	StateTaxCalc   *StateTaxCalculator
	FICATaxCalc    *FICACalculator
	SSTaxCalc      *SSTaxCalculator
	FilingStatus   domain.FilingStatus
	LTCGRate       decimal.Decimal
}

// NewTaxCalculator builds a calculator from a rule set. A zero ltcgRate falls
// back to the rule set's default.
func NewTaxCalculator(rules domain.RuleSet, jurisdiction domain.Jurisdiction, status domain.FilingStatus, ltcgRate decimal.Decimal) *TaxCalculator {
	if ltcgRate.IsZero() {
		ltcgRate = rules.LTCGRate
	}
	return &TaxCalculator{
		FederalTaxCalc: NewFederalTaxCalculator(rules.Federal),
		StateTaxCalc:   NewStateTaxCalculator(jurisdiction),
		FICATaxCalc:    NewFICACalculator(rules.FICA),
		SSTaxCalc:      NewSSTaxCalculator(),
		FilingStatus:   status.OrDefault(),
		LTCGRate:       ltcgRate,
	}
}

// Calculate computes every tax for the year.
func (tc *TaxCalculator) Calculate(s YearTaxState) TaxBreakdown {
	ordinary := s.Ordinary()
	provisional := tc.SSTaxCalc.CalculateProvisionalIncome(ordinary.Add(s.LongTermGains), decimal.Zero, s.SocialSecurity)
	taxableSS := tc.SSTaxCalc.CalculateTaxableSocialSecurity(s.SocialSecurity, provisional, tc.FilingStatus)

	std := tc.FederalTaxCalc.StandardDeductionFor(tc.FilingStatus, s.Seniors)
	ordinaryIncome := ordinary.Add(taxableSS)
	ordinaryTaxable := ordinaryIncome.Sub(std)
	unusedDeduction := decimal.Zero
	if ordinaryTaxable.IsNegative() {
		unusedDeduction = ordinaryTaxable.Neg()
		ordinaryTaxable = decimal.Zero
	}
	gainsTaxable := s.LongTermGains.Sub(unusedDeduction)
	if gainsTaxable.IsNegative() {
		gainsTaxable = decimal.Zero
	}

	b := TaxBreakdown{
		Federal:      applyBrackets(tc.FederalTaxCalc.bracketsFor(tc.FilingStatus), ordinaryTaxable),
		CapitalGains: gainsTaxable.Mul(tc.LTCGRate),
		State:        tc.StateTaxCalc.CalculateTax(ordinary.Add(s.LongTermGains), tc.FilingStatus),
		FICA:         tc.FICATaxCalc.CalculateFICA(s.Wages, tc.FilingStatus),
		Penalty:      s.PenaltyBase.Mul(earlyWithdrawalPenaltyRate),
		TaxableSS:    taxableSS,
	}
	b.Total = b.Federal.Add(b.CapitalGains).Add(b.State).Add(b.FICA).Add(b.Penalty)
	return b
}

// IncrementalTax is the additional total tax caused by moving from base to with.
func (tc *TaxCalculator) IncrementalTax(base, with YearTaxState) decimal.Decimal {
	return tc.Calculate(with).Total.Sub(tc.Calculate(base).Total)
}

// GrossUp finds the gross withdrawal whose net after its own tax covers net,
// iterating gross = net + tax(gross). The result is capped at available; when
// the cap binds the whole balance is drawn and its tax reported.
func GrossUp(net, available decimal.Decimal, taxOn func(gross decimal.Decimal) decimal.Decimal) (gross, tax decimal.Decimal) {
	if net.LessThanOrEqual(decimal.Zero) || available.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}
	gross = net
	for i := 0; i < grossUpMaxIterations; i++ {
		if gross.GreaterThanOrEqual(available) {
			break
		}
		next := net.Add(taxOn(gross))
		if next.Sub(gross).Abs().LessThan(grossUpTolerance) {
			gross = next
			break
		}
		gross = next
	}
	if gross.GreaterThan(available) {
		gross = available
	}
	return gross, taxOn(gross)
}
