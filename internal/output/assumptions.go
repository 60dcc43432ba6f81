package output

import (
	"fmt"

	"github.com/fireplan/fire-calculator/internal/domain"
)

// DefaultAssumptions lists modeling rules that hold for every profile.
var DefaultAssumptions = []string{
	"Tax brackets: 2025 levels held constant (no inflation indexing)",
	"Poverty guidelines and SNAP tables: FY2025",
	"Early-withdrawal penalty: 10% on pre-tax and Roth earnings before age 60",
	"Health premiums: capped at $1,100/month above 400% FPL",
}

// GenerateAssumptions creates the assumptions list from the profile's values
// followed by DefaultAssumptions.
func GenerateAssumptions(p *domain.HouseholdProfile) []string {
	a := p.Assumptions
	g := a.Growth
	jurisdiction := domain.NormalizeJurisdiction(a.Jurisdiction)
	if jurisdiction == "" {
		jurisdiction = "none"
	}
	out := []string{
		fmt.Sprintf("Inflation: %s annually", FormatPercentage(a.Inflation)),
		fmt.Sprintf("Growth: taxable %s, pre-tax %s, Roth %s, cash %s",
			FormatPercentage(g.Taxable), FormatPercentage(g.PreTax), FormatPercentage(g.Roth), FormatPercentage(g.Cash)),
		fmt.Sprintf("Retirement at %d; Social Security %s/month from %d", a.RetirementAge, FormatCurrency(a.SSMonthly), a.SSClaimAge),
		fmt.Sprintf("Filing status %s in %s", a.FilingStatus.OrDefault(), jurisdiction),
		fmt.Sprintf("Strategy %s to age %d", p.Drawdown.Mode(), p.Drawdown.Horizon()),
	}
	return append(out, DefaultAssumptions...)
}
