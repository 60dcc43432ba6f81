package domain

import (
	"github.com/shopspring/decimal"
)

// HealthTier names a health-coverage outcome.
type HealthTier string

const (
	TierMedicaidGap     HealthTier = "Medicaid Gap"
	TierFullCoverage    HealthTier = "Full Coverage"
	TierEnhancedSubsidy HealthTier = "Enhanced Subsidy"
	TierStandardSubsidy HealthTier = "Standard Subsidy"
	TierUnsubsidized    HealthTier = "Unsubsidized"
	TierMedicare        HealthTier = "Medicare"
	TierEmployer        HealthTier = "Employer"
)

// HealthCoverage is the result of a health-tier determination.
type HealthCoverage struct {
	Tier           HealthTier      `json:"tier"`
	FPL            decimal.Decimal `json:"fpl"`
	Ratio          decimal.Decimal `json:"ratio"`
	MonthlyPremium decimal.Decimal `json:"monthly_premium"`
	Deductible     string          `json:"deductible"`
	AboveCliff     bool            `json:"above_cliff"`
}

// AnnualPremium is twelve months of the premium.
func (h HealthCoverage) AnnualPremium() decimal.Decimal {
	return h.MonthlyPremium.Mul(decimal.NewFromInt(12))
}

// BenefitDetermination bundles health coverage and monthly SNAP for one year.
type BenefitDetermination struct {
	Year          int             `json:"year"`
	HouseholdSize int             `json:"household_size"`
	MAGI          decimal.Decimal `json:"magi"`
	Health        HealthCoverage  `json:"health"`
	SNAPMonthly   decimal.Decimal `json:"snap_monthly"`
}

// SNAPAnnual is twelve months of SNAP.
func (b BenefitDetermination) SNAPAnnual() decimal.Decimal {
	return b.SNAPMonthly.Mul(decimal.NewFromInt(12))
}

// Row status tags other than health tier names.
const (
	StatusInsolvent = "INSOLVENT"
	StatusSolvent   = "Solvent"
	StatusWorking   = "Working"
)

// YearRow is one simulated year. Rows are never modified after a run.
type YearRow struct {
	Age            int                           `json:"age"`
	Year           int                           `json:"year"`
	Budget         decimal.Decimal               `json:"budget"`
	HealthPremium  decimal.Decimal               `json:"health_premium"`
	GrossIncome    decimal.Decimal               `json:"gross_income"`
	NetIncome      decimal.Decimal               `json:"net_income"`
	MAGI           decimal.Decimal               `json:"magi"`
	SnapBenefit    decimal.Decimal               `json:"snap_benefit"`
	Taxes          decimal.Decimal               `json:"taxes"`
	Contributions  decimal.Decimal               `json:"contributions"`
	Draws          map[BucketKey]decimal.Decimal `json:"draws"`
	Balances       map[BucketKey]decimal.Decimal `json:"balances"`
	NetWorth       decimal.Decimal               `json:"net_worth"`
	Gap            decimal.Decimal               `json:"gap"`
	Unfunded       decimal.Decimal               `json:"unfunded"`
	HelocInterest  decimal.Decimal               `json:"heloc_interest"`
	HouseholdSize  int                           `json:"household_size"`
	Tier           HealthTier                    `json:"tier,omitempty"`
	Status         string                        `json:"status"`
	Insolvent      bool                          `json:"insolvent"`
	PastInsolvency bool                          `json:"past_insolvency"`
	Trace          []string                      `json:"trace"`
}

// TotalDrawn sums the year's draws across buckets.
func (r YearRow) TotalDrawn() decimal.Decimal {
	total := decimal.Zero
	for _, k := range AllBuckets {
		total = total.Add(r.Draws[k])
	}
	return total
}

// RunResult is the ordered output of one simulation.
type RunResult struct {
	Strategy           StrategyMode `json:"strategy"`
	Rows               []YearRow    `json:"rows"`
	FirstInsolvencyAge *int         `json:"first_insolvency_age"`
}

// FinalNetWorth is the net worth in the last row, or zero for an empty run.
func (r *RunResult) FinalNetWorth() decimal.Decimal {
	if len(r.Rows) == 0 {
		return decimal.Zero
	}
	return r.Rows[len(r.Rows)-1].NetWorth
}

// Solvent reports whether no year went insolvent.
func (r *RunResult) Solvent() bool {
	return r.FirstInsolvencyAge == nil
}

// Summary holds point-in-time household totals.
type Summary struct {
	NetWorth             decimal.Decimal `json:"net_worth"`
	GrossIncome          decimal.Decimal `json:"gross_income"`
	TotalBudget          decimal.Decimal `json:"total_budget"`
	TotalSavings         decimal.Decimal `json:"total_savings"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
}

// SolveResult is the die-with-zero outcome with diagnostics.
type SolveResult struct {
	Budget        decimal.Decimal `json:"budget"`
	FinalNetWorth decimal.Decimal `json:"final_net_worth"`
	Iterations    int             `json:"iterations"`
	Converged     bool            `json:"converged"`
}

// StrategyOutcome summarises one strategy's run for comparison.
type StrategyOutcome struct {
	Strategy           StrategyMode    `json:"strategy"`
	FirstInsolvencyAge *int            `json:"first_insolvency_age"`
	FinalNetWorth      decimal.Decimal `json:"final_net_worth"`
	TotalTaxes         decimal.Decimal `json:"total_taxes"`
	TotalSNAP          decimal.Decimal `json:"total_snap"`
	Result             *RunResult      `json:"-"`
}

// Report is everything an output formatter may render.
type Report struct {
	RunID       string                `json:"run_id"`
	GeneratedAt string                `json:"generated_at"`
	Profile     string                `json:"profile,omitempty"`
	RealDollars bool                  `json:"real_dollars"`
	Assumptions []string              `json:"assumptions,omitempty"`
	Summary     *Summary              `json:"summary,omitempty"`
	Run         *RunResult            `json:"run,omitempty"`
	Solve       *SolveResult          `json:"solve,omitempty"`
	Benefits    *BenefitDetermination `json:"benefits,omitempty"`
	Comparison  []StrategyOutcome     `json:"comparison,omitempty"`
	Recommended StrategyMode          `json:"recommended,omitempty"`
}
