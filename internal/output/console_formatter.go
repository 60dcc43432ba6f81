package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fireplan/fire-calculator/internal/domain"
)

// ConsoleFormatter renders the report as styled terminal tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, report)
	writeSummary(&buf, report)
	writeBenefits(&buf, report)
	writeSolve(&buf, report)
	if report.Run != nil {
		buf.WriteString(renderTable(runTable(report.Run)))
		buf.WriteString(runOutcome(report.Run))
		buf.WriteString("\n")
	}
	writeComparison(&buf, report)
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, r *domain.Report) {
	buf.WriteString(renderTitle("FIRE DRAWDOWN REPORT"))
	dollars := "nominal dollars"
	if r.RealDollars {
		dollars = "today's dollars"
	}
	pairs := [][2]string{}
	if r.Profile != "" {
		pairs = append(pairs, [2]string{"Profile", r.Profile})
	}
	pairs = append(pairs,
		[2]string{"Run", r.RunID},
		[2]string{"Generated", r.GeneratedAt},
		[2]string{"Amounts", dollars},
	)
	buf.WriteString(renderSection("", pairs))
}

func writeSummary(buf *bytes.Buffer, r *domain.Report) {
	if r.Summary == nil {
		return
	}
	s := r.Summary
	buf.WriteString(renderSection("HOUSEHOLD SUMMARY", [][2]string{
		{"Net worth", FormatCurrency(s.NetWorth)},
		{"Gross income", FormatCurrency(s.GrossIncome)},
		{"Annual budget", FormatCurrency(s.TotalBudget)},
		{"Annual savings", FormatCurrency(s.TotalSavings)},
		{"Plan contributions", FormatCurrency(s.EmployerContribution)},
	}))
}

func writeBenefits(buf *bytes.Buffer, r *domain.Report) {
	if r.Benefits == nil {
		return
	}
	b := r.Benefits
	premium := FormatCurrency(b.Health.MonthlyPremium) + "/month"
	if b.Health.AboveCliff {
		premium = warnStyle.Render(premium + " (above subsidy cliff)")
	}
	buf.WriteString(renderSection("BENEFIT ELIGIBILITY", [][2]string{
		{"Household size", intToString(b.HouseholdSize)},
		{"MAGI", FormatCurrency(b.MAGI)},
		{"Poverty line", FormatCurrency(b.Health.FPL)},
		{"FPL ratio", FormatPercentage(b.Health.Ratio)},
		{"Health tier", string(b.Health.Tier)},
		{"Premium", premium},
		{"Deductible", b.Health.Deductible},
		{"SNAP", FormatCurrency(b.SNAPMonthly) + "/month"},
	}))
}

func writeSolve(buf *bytes.Buffer, r *domain.Report) {
	if r.Solve == nil {
		return
	}
	s := r.Solve
	converged := goodStyle.Render("yes")
	if !s.Converged {
		converged = warnStyle.Render("no (best feasible budget shown)")
	}
	buf.WriteString(renderSection("DIE WITH ZERO", [][2]string{
		{"Sustainable budget", FormatCurrency(s.Budget) + "/year"},
		{"Final net worth", FormatCurrency(s.FinalNetWorth)},
		{"Iterations", intToString(s.Iterations)},
		{"Converged", converged},
	}))
}

func runTable(run *domain.RunResult) table {
	t := table{
		title:   fmt.Sprintf("YEAR BY YEAR (%s)", run.Strategy),
		headers: []string{"Age", "Year", "Budget", "Income", "Taxes", "Health", "SNAP", "Drawn", "Net Worth", "Status"},
	}
	for _, row := range run.Rows {
		t.rows = append(t.rows, []string{
			intToString(row.Age),
			intToString(row.Year),
			FormatWholeCurrency(row.Budget),
			FormatWholeCurrency(row.GrossIncome),
			FormatWholeCurrency(row.Taxes),
			FormatWholeCurrency(row.HealthPremium),
			FormatWholeCurrency(row.SnapBenefit),
			FormatWholeCurrency(row.TotalDrawn()),
			FormatWholeCurrency(row.NetWorth),
			row.Status,
		})
	}
	t.rowStyle = func(i int) *lipgloss.Style {
		switch {
		case run.Rows[i].Insolvent:
			return &badStyle
		case run.Rows[i].PastInsolvency:
			return &dimStyle
		}
		return nil
	}
	return t
}

func runOutcome(run *domain.RunResult) string {
	if run.FirstInsolvencyAge != nil {
		return badStyle.Render(fmt.Sprintf("Money runs out at age %d", *run.FirstInsolvencyAge)) + "\n"
	}
	last := 0
	if n := len(run.Rows); n > 0 {
		last = run.Rows[n-1].Age
	}
	return goodStyle.Render(fmt.Sprintf("Solvent through age %d; final net worth %s", last, FormatCurrency(run.FinalNetWorth()))) + "\n"
}

func writeComparison(buf *bytes.Buffer, r *domain.Report) {
	if len(r.Comparison) == 0 {
		return
	}
	t := table{
		title:   "STRATEGY COMPARISON",
		headers: []string{"Strategy", "Insolvent At", "Final Net Worth", "Total Taxes", "Total SNAP"},
	}
	for _, o := range r.Comparison {
		t.rows = append(t.rows, []string{
			string(o.Strategy),
			ageOrNever(o.FirstInsolvencyAge),
			FormatWholeCurrency(o.FinalNetWorth),
			FormatWholeCurrency(o.TotalTaxes),
			FormatWholeCurrency(o.TotalSNAP),
		})
	}
	t.rowStyle = func(i int) *lipgloss.Style {
		if r.Comparison[i].Strategy == r.Recommended {
			return &goodStyle
		}
		return nil
	}
	buf.WriteString(renderTable(t))

	rec := AnalyzeComparison(r.Comparison)
	if rec.Strategy != "" {
		fmt.Fprintf(buf, "Recommended: %s (insolvent at %s, %s ahead of the next best)\n\n",
			rec.Strategy, ageOrNever(rec.FirstInsolvencyAge), FormatCurrency(rec.NetWorthAdvantage))
	}
}
