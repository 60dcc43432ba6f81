package calculation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// retireeProfile is a retired single filer in Texas with no income, zero
// growth and zero inflation. Callers add accounts and expenses.
func retireeProfile(age int, cash float64, spending float64) *domain.HouseholdProfile {
	p := &domain.HouseholdProfile{
		Assumptions: domain.Assumptions{
			CurrentAge:    age,
			RetirementAge: age,
			FilingStatus:  domain.FilingSingle,
			Jurisdiction:  "TX",
			StartYear:     2025,
		},
		Budget: domain.Budget{
			Expenses: []domain.ExpenseItem{{Name: "living", Amount: dec(spending), SurvivesRetirement: true}},
		},
	}
	if cash > 0 {
		p.Assets.Accounts = append(p.Assets.Accounts, domain.InvestmentAccount{Name: "checking", Type: domain.AccountCash, Value: dec(cash)})
	}
	return p
}

func rawConfig(horizon int, priority ...domain.BucketKey) domain.DrawdownConfig {
	return domain.DrawdownConfig{Strategy: domain.StrategyRaw, Priority: priority, HorizonAge: horizon}
}

func TestSimulate_InsolvencyInFirstYear(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(50, 20000, 30000)

	result, err := sim.Simulate(profile, rawConfig(52, domain.BucketCash))
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	first := result.Rows[0]
	assert.Equal(t, 50, first.Age)
	assert.Equal(t, 2025, first.Year)
	assertDecimal(t, dec(20000), first.Draws[domain.BucketCash], 0.001)
	assertDecimal(t, dec(10000), first.Unfunded, 0.01)
	assert.True(t, first.Insolvent)
	assert.Equal(t, domain.StatusInsolvent, first.Status)
	require.NotNil(t, result.FirstInsolvencyAge)
	assert.Equal(t, 50, *result.FirstInsolvencyAge)

	for _, row := range result.Rows[1:] {
		assert.True(t, row.PastInsolvency)
		assert.True(t, row.Insolvent)
		assert.True(t, row.Balances[domain.BucketCash].IsZero())
	}
	assert.Equal(t, 51, result.Rows[1].Age)
	assert.Equal(t, 2026, result.Rows[1].Year)
}

func TestSimulate_EmptyPriorityIsInsolvent(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(60, 100000, 10000)

	result, err := sim.Simulate(profile, rawConfig(60))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.True(t, result.Rows[0].Insolvent)
	assertDecimal(t, dec(100000), result.Rows[0].NetWorth, 0.01)
}

func TestSimulate_ZeroBalancesInsolventImmediately(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(40, 0, 5000)

	result, err := sim.Simulate(profile, rawConfig(45, domain.DefaultPriority()...))
	require.NoError(t, err)
	require.NotNil(t, result.FirstInsolvencyAge)
	assert.Equal(t, 40, *result.FirstInsolvencyAge)
}

func TestSimulate_Idempotent(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := richProfile()
	cfg := domain.DrawdownConfig{Strategy: domain.StrategyPlatinum, Priority: domain.DefaultPriority(), HorizonAge: 80}

	a, err := sim.Simulate(profile, cfg)
	require.NoError(t, err)
	b, err := sim.Simulate(profile, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSimulate_DoesNotMutateInputs(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := richProfile()
	before := profile.Clone()
	cfg := domain.DrawdownConfig{Strategy: domain.StrategySilver, Priority: domain.DefaultPriority(), HorizonAge: 70}
	cfgBefore := cfg.Clone()

	_, err := sim.Simulate(profile, cfg)
	require.NoError(t, err)
	assert.Equal(t, before, profile)
	assert.Equal(t, cfgBefore, cfg)
}

func TestSimulate_ReserveMonotonicity(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(60, 200000, 30000)
	profile.Assets.Accounts = append(profile.Assets.Accounts,
		domain.InvestmentAccount{Name: "brokerage", Type: domain.AccountTaxable, Value: dec(100000), CostBasis: dec(60000)})

	firstAge := func(reserve float64) int {
		cfg := rawConfig(95, domain.BucketCash, domain.BucketTaxable)
		cfg.CashReserve = dec(reserve)
		result, err := sim.Simulate(profile, cfg)
		require.NoError(t, err)
		if result.FirstInsolvencyAge == nil {
			return cfg.Horizon() + 1
		}
		return *result.FirstInsolvencyAge
	}

	prev := firstAge(0)
	for _, reserve := range []float64{10000, 50000, 100000, 250000} {
		age := firstAge(reserve)
		assert.LessOrEqual(t, age, prev, "reserve %v", reserve)
		prev = age
	}
}

func TestSimulate_ReserveNeverDrawn(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(60, 50000, 30000)
	cfg := rawConfig(62, domain.BucketCash)
	cfg.CashReserve = dec(25000)

	result, err := sim.Simulate(profile, cfg)
	require.NoError(t, err)
	assertDecimal(t, dec(25000), result.Rows[0].Draws[domain.BucketCash], 0.001)
	for _, row := range result.Rows {
		assert.True(t, row.Balances[domain.BucketCash].GreaterThanOrEqual(dec(25000)))
	}
	assert.True(t, result.Rows[0].Insolvent)
}

func TestSimulate_GrossUpForTaxes(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(62, 0, 40000)
	profile.Assets.Accounts = append(profile.Assets.Accounts,
		domain.InvestmentAccount{Name: "401k", Type: domain.AccountPreTax, Value: dec(500000)})

	result, err := sim.Simulate(profile, rawConfig(62, domain.BucketPreTax))
	require.NoError(t, err)
	row := result.Rows[0]
	assert.False(t, row.Insolvent)
	drawn := row.Draws[domain.BucketPreTax]
	assert.True(t, drawn.GreaterThan(dec(40000)), "pre-tax draw covers its own tax")
	assertDecimal(t, drawn.Sub(row.Taxes), dec(40000), 0.05, "net of tax equals the need")
	assertDecimal(t, drawn, row.MAGI, 0.01)
}

func TestSimulate_EarlyWithdrawalPenalty(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	young := retireeProfile(45, 0, 10000)
	young.Assets.Accounts = append(young.Assets.Accounts,
		domain.InvestmentAccount{Name: "401k", Type: domain.AccountPreTax, Value: dec(100000)})
	old := young.Clone()
	old.Assumptions.CurrentAge = 60
	old.Assumptions.RetirementAge = 60

	y, err := sim.Simulate(young, rawConfig(45, domain.BucketPreTax))
	require.NoError(t, err)
	o, err := sim.Simulate(old, rawConfig(60, domain.BucketPreTax))
	require.NoError(t, err)

	assert.True(t, y.Rows[0].Taxes.GreaterThan(dec(1000)), "10%% penalty applies before %d", PenaltyFreeAge)
	assert.True(t, o.Rows[0].Taxes.IsZero(), "within the standard deduction and no penalty")
}

func TestSimulate_NegativeGrowthFloorsAtZero(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(60, 0, 0)
	profile.Assets.Accounts = append(profile.Assets.Accounts,
		domain.InvestmentAccount{Name: "coins", Type: domain.AccountCrypto, Value: dec(1000), CostBasis: dec(1000)})
	profile.Assumptions.Growth.Crypto = dec(-1.5)

	result, err := sim.Simulate(profile, rawConfig(62, domain.BucketCrypto))
	require.NoError(t, err)
	for _, row := range result.Rows {
		assert.False(t, row.Balances[domain.BucketCrypto].IsNegative())
		assert.False(t, row.Insolvent)
	}
	assert.True(t, result.Rows[0].Balances[domain.BucketCrypto].IsZero())
}

func TestSimulate_HELOCInterest(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(60, 0, 10000)
	profile.Assets.HELOCs = []domain.HELOC{{Name: "home", Limit: dec(100000), InterestRate: dec(0.10)}}

	result, err := sim.Simulate(profile, rawConfig(61, domain.BucketHELOC))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	first, second := result.Rows[0], result.Rows[1]
	assertDecimal(t, dec(10000), first.Draws[domain.BucketHELOC], 0.01)
	assert.True(t, first.HelocInterest.IsZero(), "interest accrues on the opening balance")
	assertDecimal(t, dec(90000), first.Balances[domain.BucketHELOC], 0.01)

	assertDecimal(t, dec(1000), second.HelocInterest, 0.01)
	// 10,000 drawn + 1,000 interest + 10,000 drawn
	assertDecimal(t, dec(79000), second.Balances[domain.BucketHELOC], 0.01)
	assertDecimal(t, dec(-21000), second.NetWorth, 0.01)
}

func TestSimulate_SurplusFundsSavings(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(40, 0, 30000)
	profile.Assumptions.RetirementAge = 50
	profile.IncomeStreams = []domain.IncomeStream{{Name: "salary", Amount: dec(60000), Frequency: domain.FrequencyAnnual}}
	profile.Budget.Savings = []domain.SavingsItem{{Name: "roth ira", Target: domain.AccountRoth, Amount: dec(7000)}}

	result, err := sim.Simulate(profile, rawConfig(40, domain.DefaultPriority()...))
	require.NoError(t, err)
	row := result.Rows[0]

	assert.Equal(t, domain.StatusWorking, row.Status)
	assert.Equal(t, domain.TierEmployer, row.Tier)
	assert.True(t, row.Gap.IsNegative())
	assertDecimal(t, dec(7000), row.Balances[domain.BucketRothBasis], 0.01)
	surplus := row.Gap.Neg()
	assertDecimal(t, surplus.Sub(dec(7000)), row.Balances[domain.BucketCash], 0.01)
	assertDecimal(t, dec(7000), row.Contributions, 0.01)
}

func TestSimulate_PlanContributionsToPreTax(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(40, 0, 20000)
	profile.Assumptions.RetirementAge = 50
	profile.IncomeStreams = []domain.IncomeStream{{
		Name: "salary", Amount: dec(100000), Frequency: domain.FrequencyAnnual,
		ContributionPct: dec(0.10), MatchPct: dec(0.05),
	}}

	result, err := sim.Simulate(profile, rawConfig(40, domain.DefaultPriority()...))
	require.NoError(t, err)
	assertDecimal(t, dec(15000), result.Rows[0].Balances[domain.BucketPreTax], 0.01)
}

func TestSimulate_StrategiesCountBenefits(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(50, 100000, 20000)
	profile.Assumptions.Jurisdiction = "CA"

	raw, err := sim.Simulate(profile, rawConfig(50, domain.BucketCash))
	require.NoError(t, err)
	cfg := rawConfig(50, domain.BucketCash)
	cfg.Strategy = domain.StrategyUnconstrained
	counted, err := sim.Simulate(profile, cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSolvent, raw.Rows[0].Status)
	assert.True(t, raw.Rows[0].SnapBenefit.IsZero())
	assertDecimal(t, dec(20000), raw.Rows[0].Draws[domain.BucketCash], 0.01)

	assert.Equal(t, domain.TierFullCoverage, counted.Rows[0].Tier)
	assert.Equal(t, string(domain.TierFullCoverage), counted.Rows[0].Status)
	assertDecimal(t, dec(3504), counted.Rows[0].SnapBenefit, 0.01)
	assertDecimal(t, dec(16496), counted.Rows[0].Draws[domain.BucketCash], 0.01)
}

func TestSimulate_PlatinumPrefersUntaxedBuckets(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(50, 0, 40000)
	profile.Assumptions.Jurisdiction = "CA"
	profile.Assets.Accounts = append(profile.Assets.Accounts,
		domain.InvestmentAccount{Name: "401k", Type: domain.AccountPreTax, Value: dec(400000)},
		domain.InvestmentAccount{Name: "roth", Type: domain.AccountRoth, Value: dec(200000), CostBasis: dec(200000)})
	priority := []domain.BucketKey{domain.BucketPreTax, domain.BucketRothBasis}

	unconstrained := domain.DrawdownConfig{Strategy: domain.StrategyUnconstrained, Priority: priority, HorizonAge: 50}
	platinum := unconstrained.WithStrategy(domain.StrategyPlatinum)

	u, err := sim.Simulate(profile, unconstrained)
	require.NoError(t, err)
	p, err := sim.Simulate(profile, platinum)
	require.NoError(t, err)

	ceiling := PovertyLine(1, "CA").Mul(dec(1.38))
	assert.True(t, u.Rows[0].MAGI.GreaterThan(ceiling))
	assert.True(t, p.Rows[0].MAGI.LessThanOrEqual(ceiling.Add(dec(1))), "MAGI %s held under %s", p.Rows[0].MAGI, ceiling)
	assert.Equal(t, domain.TierFullCoverage, p.Rows[0].Tier)
	assert.True(t, p.Rows[0].Draws[domain.BucketRothBasis].GreaterThan(decimal.Zero))
	assert.False(t, p.Rows[0].Insolvent)
	assert.True(t, hasTrace(p.Rows[0], "MAGI ceiling"))
}

func TestSimulate_BenefitFeedbackStaysSolvent(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)

	tests := []struct {
		name        string
		description string
		spending    float64
	}{
		{name: "near 2x FPL", description: "premium and SNAP move with every pre-tax draw", spending: 35000},
		{name: "near 3x FPL", description: "slowly converging premium feedback", spending: 40000},
		{name: "higher spending", spending: 45000},
		{name: "highest spending", spending: 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := retireeProfile(50, 0, tt.spending)
			profile.Assumptions.Jurisdiction = "NV"
			profile.Assets.Accounts = append(profile.Assets.Accounts,
				domain.InvestmentAccount{Name: "ira", Type: domain.AccountPreTax, Value: dec(2000000)})
			cfg := domain.DrawdownConfig{Strategy: domain.StrategyUnconstrained, Priority: []domain.BucketKey{domain.BucketPreTax}, HorizonAge: 50}

			result, err := sim.Simulate(profile, cfg)
			require.NoError(t, err)
			row := result.Rows[0]
			assert.False(t, row.Insolvent, "%s: unfunded %s", tt.description, row.Unfunded)
			assert.True(t, row.Unfunded.IsZero())
			assert.Nil(t, result.FirstInsolvencyAge)
			assert.True(t, row.Balances[domain.BucketPreTax].GreaterThan(dec(1900000)))
		})
	}
}

func TestSimulate_SnapPreserve(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(50, 0, 30000)
	profile.Assumptions.Jurisdiction = "CA"
	profile.Assets.Accounts = append(profile.Assets.Accounts,
		domain.InvestmentAccount{Name: "401k", Type: domain.AccountPreTax, Value: dec(500000)},
		domain.InvestmentAccount{Name: "roth", Type: domain.AccountRoth, Value: dec(200000), CostBasis: dec(200000)})
	base := domain.DrawdownConfig{
		Strategy:   domain.StrategySilver,
		Priority:   []domain.BucketKey{domain.BucketPreTax, domain.BucketRothBasis},
		HorizonAge: 50,
	}

	plain, err := sim.Simulate(profile, base)
	require.NoError(t, err)

	tests := []struct {
		name        string
		description string
		monthly     float64
		preserved   bool
	}{
		{name: "reachable target", description: "pre-tax capped at the SNAP ceiling, rest from Roth basis", monthly: 100, preserved: true},
		{name: "target above the maximum allotment", description: "no SNAP ceiling applies", monthly: 1000, preserved: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.SnapPreserve = dec(tt.monthly)
			result, err := sim.Simulate(profile, cfg)
			require.NoError(t, err)
			row := result.Rows[0]
			assert.False(t, row.Insolvent)

			if !tt.preserved {
				assert.False(t, hasTrace(row, "snap preservation"), tt.description)
				assert.Equal(t, plain.Rows[0].MAGI, row.MAGI)
				assert.Equal(t, plain.Rows[0].Draws, row.Draws)
				return
			}
			assert.True(t, hasTrace(row, "snap preservation"), tt.description)
			assert.True(t, row.SnapBenefit.GreaterThanOrEqual(dec(tt.monthly*12)), "SNAP %s", row.SnapBenefit)
			assert.True(t, row.MAGI.LessThan(plain.Rows[0].MAGI))
			assert.True(t, row.Draws[domain.BucketRothBasis].GreaterThan(decimal.Zero))
			assert.True(t, row.Draws[domain.BucketPreTax].GreaterThan(decimal.Zero))
		})
	}
}

func TestSimulate_MedicareFrom65(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(64, 500000, 30000)
	profile.Assumptions.Jurisdiction = "CA"
	cfg := domain.DrawdownConfig{Strategy: domain.StrategyUnconstrained, Priority: domain.DefaultPriority(), HorizonAge: 65}

	result, err := sim.Simulate(profile, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, domain.TierMedicare, result.Rows[0].Tier)
	assert.Equal(t, domain.TierMedicare, result.Rows[1].Tier)
	assertDecimal(t, dec(2220), result.Rows[1].HealthPremium, 0.01)
}

func TestSimulate_InvalidInputs(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)

	tests := []struct {
		name    string
		mutate  func(p *domain.HouseholdProfile, c *domain.DrawdownConfig)
		wantErr error
	}{
		{"Invalid bucket", func(_ *domain.HouseholdProfile, c *domain.DrawdownConfig) {
			c.Priority = []domain.BucketKey{"gold bars"}
		}, domain.ErrInvalidBucket},
		{"Duplicate bucket", func(_ *domain.HouseholdProfile, c *domain.DrawdownConfig) {
			c.Priority = []domain.BucketKey{domain.BucketCash, domain.BucketCash}
		}, domain.ErrDuplicateBucket},
		{"Negative age", func(p *domain.HouseholdProfile, _ *domain.DrawdownConfig) {
			p.Assumptions.CurrentAge = -1
		}, domain.ErrNegativeAge},
		{"Retirement before current", func(p *domain.HouseholdProfile, _ *domain.DrawdownConfig) {
			p.Assumptions.RetirementAge = 30
		}, domain.ErrRetirementBeforeCurrent},
		{"Horizon before current", func(_ *domain.HouseholdProfile, c *domain.DrawdownConfig) {
			c.HorizonAge = 40
		}, domain.ErrHorizonBeforeCurrent},
		{"Unknown strategy", func(_ *domain.HouseholdProfile, c *domain.DrawdownConfig) {
			c.Strategy = "GOLD"
		}, domain.ErrInvalidStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := retireeProfile(50, 1000, 1000)
			cfg := rawConfig(60, domain.BucketCash)
			tt.mutate(profile, &cfg)
			_, err := sim.Simulate(profile, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSimulate_UnknownJurisdictionWarns(t *testing.T) {
	logger := &recordingLogger{}
	sim := NewSimulator(DefaultRules(), logger)
	profile := retireeProfile(50, 1000, 0)
	profile.Assumptions.Jurisdiction = "XX"

	_, err := sim.Simulate(profile, rawConfig(50, domain.BucketCash))
	require.NoError(t, err)
	require.NotEmpty(t, logger.warnings)
	assert.Contains(t, logger.warnings[0], "drawdown: unknown jurisdiction")
}

func richProfile() *domain.HouseholdProfile {
	p := retireeProfile(45, 60000, 50000)
	p.Assumptions.RetirementAge = 50
	p.Assumptions.Jurisdiction = "CA"
	p.Assumptions.Inflation = dec(0.03)
	p.Assumptions.SSClaimAge = 67
	p.Assumptions.SSMonthly = dec(2200)
	p.Assumptions.YearsWorked = 25
	p.Assumptions.Growth = domain.GrowthRates{Cash: dec(0.02), Taxable: dec(0.06), PreTax: dec(0.06), Roth: dec(0.06), RealEstate: dec(0.03)}
	p.Assumptions.Phases = []domain.SpendingPhase{{Name: "go-go", StartAge: 50, EndAge: 64, Multiplier: dec(1.1)}}
	p.Assets.Accounts = append(p.Assets.Accounts,
		domain.InvestmentAccount{Name: "brokerage", Type: domain.AccountTaxable, Value: dec(300000), CostBasis: dec(200000)},
		domain.InvestmentAccount{Name: "401k", Type: domain.AccountPreTax, Value: dec(400000)},
		domain.InvestmentAccount{Name: "roth", Type: domain.AccountRoth, Value: dec(120000), CostBasis: dec(60000)})
	p.Assets.RealEstate = []domain.RealEstate{{Name: "home", Value: dec(450000), Mortgage: dec(150000)}}
	p.Assets.HELOCs = []domain.HELOC{{Name: "home", Limit: dec(50000), InterestRate: dec(0.08)}}
	p.IncomeStreams = []domain.IncomeStream{{
		Name: "salary", Amount: dec(120000), Frequency: domain.FrequencyAnnual, GrowthRate: dec(0.03),
		ContributionPct: dec(0.1), MatchPct: dec(0.04), BonusPct: dec(0.1), BonusContribution: true,
	}}
	p.Budget.Savings = []domain.SavingsItem{{Name: "brokerage", Target: domain.AccountTaxable, Amount: dec(20000)}}
	p.Benefits.Dependents = []domain.Dependent{{Name: "kid", BirthYear: 2015}}
	return p
}

func hasTrace(row domain.YearRow, fragment string) bool {
	for _, line := range row.Trace {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}
