package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize computes point-in-time household totals: net worth, gross income,
// the year-one budget, planned savings and plan contributions.
func Summarize(profile *domain.HouseholdProfile) domain.Summary {
	if profile == nil {
		return domain.Summary{}
	}

	gross := decimal.Zero
	employer := decimal.Zero
	for _, s := range profile.IncomeStreams {
		gross = gross.Add(s.AnnualBase()).Add(s.Bonus())
		employer = employer.Add(s.EmployeeContribution()).Add(s.EmployerMatch())
	}

	budget := profile.Budget.TotalExpenses()
	if profile.Drawdown.UsesOverride() {
		budget = *profile.Drawdown.ManualBudgetOverride
	}

	return domain.Summary{
		NetWorth:             newLedger(profile.Assets).netWorth().Round(2),
		GrossIncome:          gross.Round(2),
		TotalBudget:          budget.Round(2),
		TotalSavings:         profile.Budget.TotalSavings().Round(2),
		EmployerContribution: employer.Round(2),
	}
}
