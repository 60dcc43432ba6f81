package config

import (
	"fmt"
	"os"

	"github.com/fireplan/fire-calculator/internal/calculation"
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of household profile and rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a household profile from a YAML (or JSON) file.
// Malformed numeric fields read as zero; missing drawdown settings take
// their defaults.
func (ip *InputParser) LoadFromFile(filename string) (*domain.HouseholdProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, defaults and validates a profile document.
func (ip *InputParser) Parse(data []byte) (*domain.HouseholdProfile, error) {
	var profile domain.HouseholdProfile
	if err := decodeLenient(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.applyDefaults(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

func (ip *InputParser) applyDefaults(p *domain.HouseholdProfile) error {
	mode, err := domain.ParseStrategyMode(string(p.Drawdown.Strategy))
	if err != nil {
		return err
	}
	p.Drawdown.Strategy = mode
	if p.Drawdown.Priority == nil {
		p.Drawdown.Priority = domain.DefaultPriority()
	}
	if p.Assumptions.FilingStatus == "" {
		p.Assumptions.FilingStatus = domain.FilingSingle
	}
	for i, s := range p.IncomeStreams {
		if s.Frequency == "" {
			p.IncomeStreams[i].Frequency = domain.FrequencyAnnual
		}
	}
	return nil
}

// ValidateProfile validates a loaded profile and its drawdown settings
func (ip *InputParser) ValidateProfile(p *domain.HouseholdProfile) error {
	if p == nil {
		return fmt.Errorf("no profile provided")
	}
	if err := calculation.ValidateProfile(p); err != nil {
		return err
	}
	if err := calculation.ValidateConfig(p.Drawdown, p.Assumptions.CurrentAge); err != nil {
		return fmt.Errorf("drawdown: %w", err)
	}
	for _, s := range p.IncomeStreams {
		if s.Frequency != domain.FrequencyAnnual && s.Frequency != domain.FrequencyMonthly {
			return fmt.Errorf("income %q frequency %q must be monthly or annual", s.Name, s.Frequency)
		}
	}
	return nil
}

// LoadRulesFromFile reads a rules YAML and overlays it on the built-in rules.
func (ip *InputParser) LoadRulesFromFile(filename string) (domain.RuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	var overlay domain.RuleSet
	if err := decodeLenient(data, &overlay); err != nil {
		return domain.RuleSet{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	return calculation.DefaultRules().Merge(overlay), nil
}

// SaveProfile writes a profile as YAML.
func (ip *InputParser) SaveProfile(p *domain.HouseholdProfile, filename string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleProfile creates an example household: a couple in their
// forties planning to retire at 50 in Texas.
func (ip *InputParser) CreateExampleProfile() *domain.HouseholdProfile {
	return &domain.HouseholdProfile{
		Name: "Example household",
		Assets: domain.Assets{
			Accounts: []domain.InvestmentAccount{
				{Name: "Checking", Type: domain.AccountCash, Value: decimal.NewFromInt(40000), CostBasis: decimal.NewFromInt(40000)},
				{Name: "Brokerage", Type: domain.AccountTaxable, Value: decimal.NewFromInt(350000), CostBasis: decimal.NewFromInt(200000)},
				{Name: "401(k)", Type: domain.AccountPreTax, Value: decimal.NewFromInt(520000)},
				{Name: "Roth IRA", Type: domain.AccountRoth, Value: decimal.NewFromInt(140000), CostBasis: decimal.NewFromInt(90000)},
				{Name: "HSA", Type: domain.AccountHSA, Value: decimal.NewFromInt(30000)},
			},
			RealEstate: []domain.RealEstate{
				{Name: "Home", Value: decimal.NewFromInt(420000), Mortgage: decimal.NewFromInt(180000)},
			},
			HELOCs: []domain.HELOC{
				{Name: "Home equity line", Limit: decimal.NewFromInt(100000), InterestRate: decimal.NewFromFloat(0.085)},
			},
		},
		IncomeStreams: []domain.IncomeStream{
			{
				Name:            "Salary",
				Amount:          decimal.NewFromInt(140000),
				GrowthRate:      decimal.NewFromFloat(0.03),
				ContributionPct: decimal.NewFromFloat(0.10),
				MatchPct:        decimal.NewFromFloat(0.04),
				BonusPct:        decimal.NewFromFloat(0.10),
				BonusMatch:      true,
				Frequency:       domain.FrequencyAnnual,
			},
		},
		Budget: domain.Budget{
			Savings: []domain.SavingsItem{
				{Name: "Roth contributions", Target: domain.AccountRoth, Amount: decimal.NewFromInt(14000)},
				{Name: "Brokerage", Target: domain.AccountTaxable, Amount: decimal.NewFromInt(12000)},
			},
			Expenses: []domain.ExpenseItem{
				{Name: "Housing", Amount: decimal.NewFromInt(24000), SurvivesRetirement: true, Fixed: true},
				{Name: "Living", Amount: decimal.NewFromInt(36000), SurvivesRetirement: true},
				{Name: "Commuting", Amount: decimal.NewFromInt(4000)},
			},
		},
		Assumptions: domain.Assumptions{
			CurrentAge:    45,
			RetirementAge: 50,
			SSClaimAge:    67,
			SSMonthly:     decimal.NewFromInt(2400),
			Growth: domain.GrowthRates{
				Cash:       decimal.NewFromFloat(0.02),
				Taxable:    decimal.NewFromFloat(0.06),
				PreTax:     decimal.NewFromFloat(0.06),
				Roth:       decimal.NewFromFloat(0.06),
				HSA:        decimal.NewFromFloat(0.05),
				RealEstate: decimal.NewFromFloat(0.03),
			},
			Inflation:     decimal.NewFromFloat(0.025),
			FilingStatus:  domain.FilingMarriedJoint,
			Jurisdiction:  "TX",
			YearsWorked:   22,
			LTCGRate:      decimal.NewFromFloat(0.15),
			Phases: []domain.SpendingPhase{
				{Name: "Go-go", StartAge: 50, EndAge: 64, Multiplier: decimal.NewFromFloat(1.1)},
				{Name: "Slow-go", StartAge: 65, EndAge: 79, Multiplier: decimal.NewFromInt(1)},
				{Name: "No-go", StartAge: 80, EndAge: 100, Multiplier: decimal.NewFromFloat(0.8)},
			},
		},
		Benefits: domain.BenefitsProfile{
			ShelterCost:      decimal.NewFromInt(1500),
			UtilityAllowance: true,
			Dependents: []domain.Dependent{
				{Name: "Child", BirthYear: 2012},
			},
		},
		Drawdown: domain.DrawdownConfig{
			Strategy:    domain.StrategySilver,
			Priority:    domain.DefaultPriority(),
			CashReserve: decimal.NewFromInt(10000),
			UseSync:     true,
			HorizonAge:  95,
		},
	}
}
