package output

import (
	"github.com/fireplan/fire-calculator/internal/calculation"
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best strategy.
type Recommendation struct {
	Strategy           domain.StrategyMode
	FirstInsolvencyAge *int
	FinalNetWorth      decimal.Decimal
	// NetWorthAdvantage is the final net worth margin over the runner-up.
	NetWorthAdvantage decimal.Decimal
}

// AnalyzeComparison picks the best strategy and its margin over the next best.
func AnalyzeComparison(outcomes []domain.StrategyOutcome) Recommendation {
	best, ok := calculation.RecommendStrategy(outcomes)
	if !ok {
		return Recommendation{}
	}
	var winner domain.StrategyOutcome
	rest := make([]domain.StrategyOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Strategy == best && winner.Strategy == "" {
			winner = o
			continue
		}
		rest = append(rest, o)
	}
	rec := Recommendation{
		Strategy:           winner.Strategy,
		FirstInsolvencyAge: winner.FirstInsolvencyAge,
		FinalNetWorth:      winner.FinalNetWorth,
	}
	if second, ok := calculation.RecommendStrategy(rest); ok {
		for _, o := range rest {
			if o.Strategy == second {
				rec.NetWorthAdvantage = winner.FinalNetWorth.Sub(o.FinalNetWorth)
				break
			}
		}
	}
	return rec
}
