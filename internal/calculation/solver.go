package calculation

import (
	"fmt"

	"github.com/fireplan/fire-calculator/internal/domain"
	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// SolverOptions bounds the die-with-zero search. Zero values take defaults:
// 50 iterations, $1 tolerance, lower bound 0 and an upper bound derived from
// the household's resources.
type SolverOptions struct {
	MaxIterations int
	Tolerance     decimal.Decimal
	Lower         decimal.Decimal
	Upper         decimal.Decimal
}

const defaultSolverIterations = 50

var (
	defaultSolverTolerance = decimal.NewFromInt(1)
	// budgetPrecision stops the search once the budget bracket is this narrow.
	budgetPrecision = decimal.NewFromFloat(0.01)
)

func (o SolverOptions) withDefaults() SolverOptions {
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultSolverIterations
	}
	if o.Tolerance.LessThanOrEqual(decimal.Zero) {
		o.Tolerance = defaultSolverTolerance
	}
	if o.Lower.IsNegative() {
		o.Lower = decimal.Zero
	}
	return o
}

// DieWithZeroSolver searches for the highest year-one budget that still ends
// the horizon solvent with net worth near zero.
type DieWithZeroSolver struct {
	sim    *Simulator
	Logger Logger
}

func NewDieWithZeroSolver(sim *Simulator, logger Logger) *DieWithZeroSolver {
	return &DieWithZeroSolver{sim: sim, Logger: withPrefix(logger, "solver")}
}

// upperBound is every drawable resource plus all gross income to the horizon.
func upperBound(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig) decimal.Decimal {
	l := newLedger(profile.Assets)
	years := cfg.Horizon() - profile.Assumptions.CurrentAge + 1
	income := decimal.Zero
	for _, s := range profile.IncomeStreams {
		income = income.Add(s.AnnualBase().Add(s.Bonus()))
	}
	income = income.Add(money.NewMoneyFromDecimal(profile.Assumptions.SSMonthly).Annual().Decimal)
	return l.liquid().Add(l.helocAvailable()).Add(income.Mul(decimal.NewFromInt(int64(years)))).Add(decimal.NewFromInt(1))
}

// Solve bisects over the manual budget override. A candidate is feasible when
// no year is insolvent and final net worth is not negative. It returns the
// best feasible budget found once net worth is within tolerance or the
// bracket collapses, and stops at the iteration cap without failing.
func (dz *DieWithZeroSolver) Solve(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig, opts SolverOptions) (*domain.SolveResult, error) {
	opts = opts.withDefaults()
	lo := opts.Lower
	hi := opts.Upper
	if hi.LessThanOrEqual(lo) {
		hi = upperBound(profile, cfg)
	}

	evaluate := func(budget decimal.Decimal) (bool, decimal.Decimal, error) {
		result, err := dz.sim.Simulate(profile, cfg.WithBudget(budget))
		if err != nil {
			return false, decimal.Zero, err
		}
		final := result.FinalNetWorth()
		return result.Solvent() && !final.IsNegative(), final, nil
	}

	feasible, final, err := evaluate(lo)
	if err != nil {
		return nil, fmt.Errorf("die-with-zero: %w", err)
	}
	if !feasible {
		dz.Logger.Warnf("lower bound %s is already infeasible", lo.StringFixed(2))
		return &domain.SolveResult{Budget: lo, FinalNetWorth: final, Iterations: 1, Converged: false}, nil
	}
	best := domain.SolveResult{Budget: lo, FinalNetWorth: final, Iterations: 1}

	feasible, final, err = evaluate(hi)
	if err != nil {
		return nil, fmt.Errorf("die-with-zero: %w", err)
	}
	if feasible {
		dz.Logger.Infof("upper bound %s is sustainable", hi.StringFixed(2))
		return &domain.SolveResult{Budget: hi.Truncate(2), FinalNetWorth: final, Iterations: 2, Converged: true}, nil
	}

	two := decimal.NewFromInt(2)
	for i := 0; i < opts.MaxIterations; i++ {
		mid := lo.Add(hi).Div(two)
		ok, nw, err := evaluate(mid)
		if err != nil {
			return nil, fmt.Errorf("die-with-zero: %w", err)
		}
		best.Iterations = i + 3
		dz.Logger.Debugf("iteration %d: budget %s feasible=%t final net worth %s", i+1, mid.StringFixed(2), ok, nw.StringFixed(2))

		if ok {
			lo = mid
			best.Budget = mid
			best.FinalNetWorth = nw
			if nw.LessThanOrEqual(opts.Tolerance) {
				best.Converged = true
				break
			}
		} else {
			hi = mid
		}

		if hi.Sub(lo).LessThan(budgetPrecision) {
			best.Converged = true
			break
		}
	}

	// Truncating keeps the budget feasible.
	best.Budget = best.Budget.Truncate(2)
	if !best.Converged {
		dz.Logger.Warnf("no convergence after %d iterations; returning best budget %s", opts.MaxIterations, best.Budget.StringFixed(2))
	}
	return &best, nil
}
