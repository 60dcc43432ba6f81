package calculation

import (
	"fmt"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates simulation, solving and benefit evaluation
// over one rule set.
type CalculationEngine struct {
	Rules     domain.RuleSet
	Simulator *Simulator
	Solver    *DieWithZeroSolver
	Benefits  *BenefitEligibilityEngine
	Logger    Logger
}

// NewCalculationEngine creates an engine over the built-in rules.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(DefaultRules())
}

// NewCalculationEngineWithRules creates an engine over the given rules, e.g.
// defaults merged with a rules file.
func NewCalculationEngineWithRules(rules domain.RuleSet) *CalculationEngine {
	ce := &CalculationEngine{Rules: rules}
	ce.SetLogger(NopLogger{})
	return ce
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Simulator = NewSimulator(ce.Rules, l)
	ce.Solver = NewDieWithZeroSolver(ce.Simulator, l)
	ce.Benefits = ce.Simulator.Benefits
}

// Simulate runs the drawdown for profile under cfg.
func (ce *CalculationEngine) Simulate(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig) (*domain.RunResult, error) {
	return ce.Simulator.Simulate(profile, cfg)
}

// DieWithZero returns the highest sustainable year-one budget.
func (ce *CalculationEngine) DieWithZero(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig, opts SolverOptions) (decimal.Decimal, error) {
	res, err := ce.SolveDetailed(profile, cfg, opts)
	if err != nil {
		return decimal.Zero, err
	}
	return res.Budget, nil
}

// SolveDetailed is DieWithZero with search diagnostics.
func (ce *CalculationEngine) SolveDetailed(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig, opts SolverOptions) (*domain.SolveResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	return ce.Solver.Solve(profile, cfg, opts)
}

// Summarize returns point-in-time household totals.
func (ce *CalculationEngine) Summarize(profile *domain.HouseholdProfile) domain.Summary {
	return Summarize(profile)
}

// EvaluateBenefits determines health coverage and SNAP from the profile's
// sandbox income.
func (ce *CalculationEngine) EvaluateBenefits(profile *domain.HouseholdProfile) (domain.BenefitDetermination, error) {
	if profile == nil {
		return domain.BenefitDetermination{}, fmt.Errorf("profile is required")
	}
	if err := ValidateProfile(profile); err != nil {
		return domain.BenefitDetermination{}, fmt.Errorf("invalid profile: %w", err)
	}
	return ce.Benefits.EvaluateBenefits(profile), nil
}

// CompareStrategies runs every strategy mode and returns the outcomes with
// the recommended mode.
func (ce *CalculationEngine) CompareStrategies(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig) ([]domain.StrategyOutcome, domain.StrategyMode, error) {
	outcomes, err := ce.Simulator.CompareStrategies(profile, cfg)
	if err != nil {
		return nil, "", err
	}
	best, _ := RecommendStrategy(outcomes)
	ce.Logger.Infof("recommended strategy: %s", best)
	return outcomes, best, nil
}
