package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// SavingsAllocation is a savings line item's contribution for one year.
type SavingsAllocation struct {
	Name   string
	Target domain.AccountType
	Amount decimal.Decimal
}

// BudgetYear is the projected spending need and planned savings of one year.
type BudgetYear struct {
	Spending   decimal.Decimal
	Multiplier decimal.Decimal
	Savings    []SavingsAllocation
}

// TotalSavings sums the planned savings.
func (b BudgetYear) TotalSavings() decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Savings {
		total = total.Add(s.Amount)
	}
	return total
}

// BudgetProjector projects spending with inflation and spending phases.
type BudgetProjector struct {
	profile *domain.HouseholdProfile
	config  domain.DrawdownConfig
}

func NewBudgetProjector(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig) *BudgetProjector {
	return &BudgetProjector{profile: profile, config: cfg}
}

// PhaseMultiplier returns the multiplier of the first phase containing age,
// or 1 when no phase applies.
func PhaseMultiplier(phases []domain.SpendingPhase, age int) decimal.Decimal {
	for _, p := range phases {
		if p.Contains(age) && !p.Multiplier.IsZero() {
			return p.Multiplier
		}
	}
	return decimal.NewFromInt(1)
}

// Project returns the budget for the year yearsElapsed after the start.
//
// With a manual override the whole year-one amount is inflated and scaled by
// the phase multiplier. Otherwise expense line items are summed, dropping
// those that end at retirement; fixed items are inflated but not scaled.
func (bp *BudgetProjector) Project(yearsElapsed, age int) BudgetYear {
	a := bp.profile.Assumptions
	retired := bp.profile.IsRetired(age)
	inflation := compound(a.Inflation, yearsElapsed)
	multiplier := PhaseMultiplier(a.Phases, age)

	out := BudgetYear{Multiplier: multiplier}
	if bp.config.UsesOverride() {
		out.Spending = nonNegative(*bp.config.ManualBudgetOverride).Mul(inflation).Mul(multiplier)
	} else {
		for _, e := range bp.profile.Budget.Expenses {
			if retired && !e.SurvivesRetirement {
				continue
			}
			amount := e.Amount.Mul(inflation)
			if !e.Fixed {
				amount = amount.Mul(multiplier)
			}
			out.Spending = out.Spending.Add(amount)
		}
	}

	for _, s := range bp.profile.Budget.Savings {
		if retired && !s.SurvivesRetirement {
			continue
		}
		out.Savings = append(out.Savings, SavingsAllocation{
			Name:   s.Name,
			Target: s.Target,
			Amount: s.Amount.Mul(inflation),
		})
	}
	return out
}
