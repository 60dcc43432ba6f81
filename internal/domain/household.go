package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType identifies the tax treatment of an investment account.
type AccountType string

const (
	AccountCash    AccountType = "Cash"
	AccountTaxable AccountType = "Taxable"
	AccountPreTax  AccountType = "Pre-Tax"
	AccountRoth    AccountType = "Roth"
	AccountCrypto  AccountType = "Crypto"
	AccountMetals  AccountType = "Metals"
	AccountHSA     AccountType = "HSA"
)

// AccountTypes lists every supported account type in display order.
var AccountTypes = []AccountType{AccountCash, AccountTaxable, AccountPreTax, AccountRoth, AccountCrypto, AccountMetals, AccountHSA}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FilingStatus selects tax brackets and thresholds.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "mfj"
	FilingHeadOfHousehold FilingStatus = "hoh"
)

// Valid reports whether s is a supported filing status.
func (s FilingStatus) Valid() bool {
	switch s {
	case FilingSingle, FilingMarriedJoint, FilingHeadOfHousehold:
		return true
	}
	return false
}

// OrDefault returns s, or single when s is empty.
func (s FilingStatus) OrDefault() FilingStatus {
	if s == "" {
		return FilingSingle
	}
	return s
}

// Frequency is the payment period of an income stream amount.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyAnnual  Frequency = "annual"
)

// HouseholdProfile is the complete caller-owned description of a household.
// The engine treats it as read-only.
type HouseholdProfile struct {
	Name          string          `yaml:"name,omitempty" json:"name,omitempty"`
	Assets        Assets          `yaml:"assets" json:"assets"`
	IncomeStreams []IncomeStream  `yaml:"income_streams" json:"income_streams"`
	Budget        Budget          `yaml:"budget" json:"budget"`
	Assumptions   Assumptions     `yaml:"assumptions" json:"assumptions"`
	Benefits      BenefitsProfile `yaml:"benefits" json:"benefits"`
	Drawdown      DrawdownConfig  `yaml:"drawdown" json:"drawdown"`
}

// Assets groups every holding and liability of the household.
type Assets struct {
	Accounts   []InvestmentAccount `yaml:"accounts" json:"accounts"`
	RealEstate []RealEstate        `yaml:"real_estate,omitempty" json:"real_estate,omitempty"`
	HELOCs     []HELOC             `yaml:"helocs,omitempty" json:"helocs,omitempty"`
	Other      []OtherAsset        `yaml:"other,omitempty" json:"other,omitempty"`
	Debts      []Debt              `yaml:"debts,omitempty" json:"debts,omitempty"`
	Equity     []EquityGrant       `yaml:"equity,omitempty" json:"equity,omitempty"`
}

// InvestmentAccount is a liquid account. CostBasis is the contributed amount
// (for Roth accounts, the basis that can be withdrawn tax and penalty free).
type InvestmentAccount struct {
	Name      string          `yaml:"name" json:"name"`
	Type      AccountType     `yaml:"type" json:"type"`
	Value     decimal.Decimal `yaml:"value" json:"value"`
	CostBasis decimal.Decimal `yaml:"cost_basis" json:"cost_basis"`
}

type RealEstate struct {
	Name     string          `yaml:"name" json:"name"`
	Value    decimal.Decimal `yaml:"value" json:"value"`
	Mortgage decimal.Decimal `yaml:"mortgage" json:"mortgage"`
}

// HELOC is a home equity line of credit usable as a funding bucket.
type HELOC struct {
	Name         string          `yaml:"name" json:"name"`
	Balance      decimal.Decimal `yaml:"balance" json:"balance"`
	Limit        decimal.Decimal `yaml:"limit" json:"limit"`
	InterestRate decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
}

// Available returns the undrawn credit.
func (h HELOC) Available() decimal.Decimal {
	avail := h.Limit.Sub(h.Balance)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

type OtherAsset struct {
	Name  string          `yaml:"name" json:"name"`
	Value decimal.Decimal `yaml:"value" json:"value"`
	Loan  decimal.Decimal `yaml:"loan" json:"loan"`
}

type Debt struct {
	Name    string          `yaml:"name" json:"name"`
	Balance decimal.Decimal `yaml:"balance" json:"balance"`
}

// EquityGrant is a block of stock options or shares. For plain shares use a
// zero strike.
type EquityGrant struct {
	Name       string          `yaml:"name" json:"name"`
	Shares     decimal.Decimal `yaml:"shares" json:"shares"`
	Strike     decimal.Decimal `yaml:"strike" json:"strike"`
	FairValue  decimal.Decimal `yaml:"fair_value" json:"fair_value"`
	GrowthRate decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`
	LongTerm   bool            `yaml:"long_term" json:"long_term"`
}

// SpreadPerShare is the in-the-money value of one share.
func (g EquityGrant) SpreadPerShare() decimal.Decimal {
	spread := g.FairValue.Sub(g.Strike)
	if spread.IsNegative() {
		return decimal.Zero
	}
	return spread
}

// Value is the current in-the-money value of the grant.
func (g EquityGrant) Value() decimal.Decimal {
	return g.Shares.Mul(g.SpreadPerShare())
}

// IncomeStream is a recurring source of income such as a salary or pension.
type IncomeStream struct {
	Name               string          `yaml:"name" json:"name"`
	Amount             decimal.Decimal `yaml:"amount" json:"amount"`
	GrowthRate         decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`
	ContributionPct    decimal.Decimal `yaml:"contribution_pct" json:"contribution_pct"`
	MatchPct           decimal.Decimal `yaml:"match_pct" json:"match_pct"`
	BonusPct           decimal.Decimal `yaml:"bonus_pct" json:"bonus_pct"`
	BonusContribution  bool            `yaml:"bonus_contribution" json:"bonus_contribution"`
	BonusMatch         bool            `yaml:"bonus_match" json:"bonus_match"`
	Frequency          Frequency       `yaml:"frequency" json:"frequency"`
	Deductions         decimal.Decimal `yaml:"deductions" json:"deductions"` // annual, post-tax
	SurvivesRetirement bool            `yaml:"survives_retirement" json:"survives_retirement"`
	NonTaxableUntil    int             `yaml:"non_taxable_until,omitempty" json:"non_taxable_until,omitempty"`
}

// AnnualBase returns the stream's base amount converted to an annual figure.
func (s IncomeStream) AnnualBase() decimal.Decimal {
	if s.Frequency == FrequencyMonthly {
		return s.Amount.Mul(decimal.NewFromInt(12))
	}
	return s.Amount
}

// Bonus returns the annual bonus on the base amount.
func (s IncomeStream) Bonus() decimal.Decimal {
	return s.AnnualBase().Mul(s.BonusPct)
}

// EmployeeContribution is the employee plan deferral, bonus included when eligible.
func (s IncomeStream) EmployeeContribution() decimal.Decimal {
	base := s.AnnualBase()
	if s.BonusContribution {
		base = base.Add(s.Bonus())
	}
	return base.Mul(s.ContributionPct)
}

// EmployerMatch is the employer plan match, bonus included when eligible.
func (s IncomeStream) EmployerMatch() decimal.Decimal {
	base := s.AnnualBase()
	if s.BonusMatch {
		base = base.Add(s.Bonus())
	}
	return base.Mul(s.MatchPct)
}

// Budget holds annual savings and expense line items.
type Budget struct {
	Savings  []SavingsItem `yaml:"savings" json:"savings"`
	Expenses []ExpenseItem `yaml:"expenses" json:"expenses"`
}

type SavingsItem struct {
	Name               string          `yaml:"name" json:"name"`
	Target             AccountType     `yaml:"target" json:"target"`
	Amount             decimal.Decimal `yaml:"amount" json:"amount"`
	SurvivesRetirement bool            `yaml:"survives_retirement" json:"survives_retirement"`
}

type ExpenseItem struct {
	Name               string          `yaml:"name" json:"name"`
	Amount             decimal.Decimal `yaml:"amount" json:"amount"`
	SurvivesRetirement bool            `yaml:"survives_retirement" json:"survives_retirement"`
	Fixed              bool            `yaml:"fixed" json:"fixed"`
}

// TotalExpenses sums every expense line item.
func (b Budget) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range b.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalSavings sums every savings line item.
func (b Budget) TotalSavings() decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Savings {
		total = total.Add(s.Amount)
	}
	return total
}

// GrowthRates holds annual nominal growth per asset class.
type GrowthRates struct {
	Cash       decimal.Decimal `yaml:"cash" json:"cash"`
	Taxable    decimal.Decimal `yaml:"taxable" json:"taxable"`
	PreTax     decimal.Decimal `yaml:"pre_tax" json:"pre_tax"`
	Roth       decimal.Decimal `yaml:"roth" json:"roth"`
	Crypto     decimal.Decimal `yaml:"crypto" json:"crypto"`
	Metals     decimal.Decimal `yaml:"metals" json:"metals"`
	HSA        decimal.Decimal `yaml:"hsa" json:"hsa"`
	RealEstate decimal.Decimal `yaml:"real_estate" json:"real_estate"`
	Other      decimal.Decimal `yaml:"other" json:"other"`
}

// SpendingPhase multiplies the budget while age is within [StartAge, EndAge].
type SpendingPhase struct {
	Name       string          `yaml:"name" json:"name"`
	StartAge   int             `yaml:"start_age" json:"start_age"`
	EndAge     int             `yaml:"end_age" json:"end_age"`
	Multiplier decimal.Decimal `yaml:"multiplier" json:"multiplier"`
}

// Contains reports whether age falls inside the phase.
func (p SpendingPhase) Contains(age int) bool {
	return age >= p.StartAge && age <= p.EndAge
}

// Assumptions holds ages, rates and jurisdiction for the projection.
type Assumptions struct {
	CurrentAge    int             `yaml:"current_age" json:"current_age"`
	RetirementAge int             `yaml:"retirement_age" json:"retirement_age"`
	SSClaimAge    int             `yaml:"ss_claim_age" json:"ss_claim_age"`
	SSMonthly     decimal.Decimal `yaml:"ss_monthly" json:"ss_monthly"` // at claim age, today's dollars
	Growth        GrowthRates     `yaml:"growth" json:"growth"`
	Inflation     decimal.Decimal `yaml:"inflation" json:"inflation"`
	FilingStatus  FilingStatus    `yaml:"filing_status" json:"filing_status"`
	Jurisdiction  string          `yaml:"jurisdiction" json:"jurisdiction"`
	YearsWorked   int             `yaml:"years_worked" json:"years_worked"`
	Phases        []SpendingPhase `yaml:"phases,omitempty" json:"phases,omitempty"`
	LTCGRate      decimal.Decimal `yaml:"ltcg_rate" json:"ltcg_rate"`
	StartYear     int             `yaml:"start_year,omitempty" json:"start_year,omitempty"`
}

// Dependent is a household member counted for benefits until age 19.
type Dependent struct {
	Name      string `yaml:"name" json:"name"`
	BirthYear int    `yaml:"birth_year" json:"birth_year"`
}

// AgeIn returns the dependent's age at the start of year.
func (d Dependent) AgeIn(year int) int {
	return year - d.BirthYear
}

// BenefitsProfile carries means-test inputs. Shelter, child support, care and
// medical figures are monthly; SandboxIncome is an annual MAGI proxy used by
// the standalone benefit evaluation.
type BenefitsProfile struct {
	SandboxIncome    decimal.Decimal `yaml:"sandbox_income" json:"sandbox_income"`
	ShelterCost      decimal.Decimal `yaml:"shelter_cost" json:"shelter_cost"`
	UtilityAllowance bool            `yaml:"utility_allowance" json:"utility_allowance"`
	Disabled         bool            `yaml:"disabled" json:"disabled"`
	Pregnant         bool            `yaml:"pregnant" json:"pregnant"`
	ChildSupportPaid decimal.Decimal `yaml:"child_support_paid" json:"child_support_paid"`
	DependentCare    decimal.Decimal `yaml:"dependent_care" json:"dependent_care"`
	MedicalExpenses  decimal.Decimal `yaml:"medical_expenses" json:"medical_expenses"`
	EarnedIncome     bool            `yaml:"earned_income" json:"earned_income"`
	Dependents       []Dependent     `yaml:"dependents,omitempty" json:"dependents,omitempty"`
}

// AdultCount is two for joint filers, otherwise one.
func (p *HouseholdProfile) AdultCount() int {
	if p.Assumptions.FilingStatus == FilingMarriedJoint {
		return 2
	}
	return 1
}

// HouseholdSize counts adults plus dependents younger than 19 at the start of year.
func (p *HouseholdProfile) HouseholdSize(year int) int {
	size := p.AdultCount()
	for _, d := range p.Benefits.Dependents {
		if d.AgeIn(year) < 19 {
			size++
		}
	}
	return size
}

// IsRetired reports whether the household is retired at age.
func (p *HouseholdProfile) IsRetired(age int) bool {
	return age >= p.Assumptions.RetirementAge
}

// Clone returns a deep copy so callers can vary a profile without aliasing slices.
func (p *HouseholdProfile) Clone() *HouseholdProfile {
	c := *p
	c.Assets.Accounts = append([]InvestmentAccount(nil), p.Assets.Accounts...)
	c.Assets.RealEstate = append([]RealEstate(nil), p.Assets.RealEstate...)
	c.Assets.HELOCs = append([]HELOC(nil), p.Assets.HELOCs...)
	c.Assets.Other = append([]OtherAsset(nil), p.Assets.Other...)
	c.Assets.Debts = append([]Debt(nil), p.Assets.Debts...)
	c.Assets.Equity = append([]EquityGrant(nil), p.Assets.Equity...)
	c.IncomeStreams = append([]IncomeStream(nil), p.IncomeStreams...)
	c.Budget.Savings = append([]SavingsItem(nil), p.Budget.Savings...)
	c.Budget.Expenses = append([]ExpenseItem(nil), p.Budget.Expenses...)
	c.Assumptions.Phases = append([]SpendingPhase(nil), p.Assumptions.Phases...)
	c.Benefits.Dependents = append([]Dependent(nil), p.Benefits.Dependents...)
	c.Drawdown = p.Drawdown.Clone()
	return &c
}
