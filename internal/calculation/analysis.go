package calculation

import (
	"fmt"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareStrategies runs the profile under every strategy mode with the same
// configuration otherwise.
func (s *Simulator) CompareStrategies(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig) ([]domain.StrategyOutcome, error) {
	outcomes := make([]domain.StrategyOutcome, 0, len(domain.StrategyModes))
	for _, mode := range domain.StrategyModes {
		result, err := s.Simulate(profile, cfg.WithStrategy(mode))
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", mode, err)
		}
		outcomes = append(outcomes, outcomeOf(result))
	}
	return outcomes, nil
}

func outcomeOf(result *domain.RunResult) domain.StrategyOutcome {
	taxes := decimal.Zero
	snap := decimal.Zero
	for _, row := range result.Rows {
		taxes = taxes.Add(row.Taxes)
		snap = snap.Add(row.SnapBenefit)
	}
	return domain.StrategyOutcome{
		Strategy:           result.Strategy,
		FirstInsolvencyAge: result.FirstInsolvencyAge,
		FinalNetWorth:      result.FinalNetWorth(),
		TotalTaxes:         taxes,
		TotalSNAP:          snap,
		Result:             result,
	}
}

// RecommendStrategy picks the outcome that stays solvent longest, preferring
// higher final net worth on ties. Earlier entries win exact ties.
func RecommendStrategy(outcomes []domain.StrategyOutcome) (domain.StrategyMode, bool) {
	best := -1
	for i, o := range outcomes {
		if best < 0 || betterOutcome(o, outcomes[best]) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return outcomes[best].Strategy, true
}

func betterOutcome(a, b domain.StrategyOutcome) bool {
	switch {
	case a.FirstInsolvencyAge == nil && b.FirstInsolvencyAge != nil:
		return true
	case a.FirstInsolvencyAge != nil && b.FirstInsolvencyAge == nil:
		return false
	case a.FirstInsolvencyAge != nil && *a.FirstInsolvencyAge != *b.FirstInsolvencyAge:
		return *a.FirstInsolvencyAge > *b.FirstInsolvencyAge
	}
	return a.FinalNetWorth.GreaterThan(b.FinalNetWorth)
}
