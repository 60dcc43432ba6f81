package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fireplan/fire-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the console report followed by assumptions
// and a per-year breakdown of draws, balances and decision traces.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	base, err := ConsoleFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(base)

	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	buf.WriteString(headerStyle.Render("KEY ASSUMPTIONS"))
	buf.WriteString("\n")
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	buf.WriteString("\n")

	if report.Run != nil {
		writeYearDetail(&buf, report.Run)
	}
	return buf.Bytes(), nil
}

func writeYearDetail(buf *bytes.Buffer, run *domain.RunResult) {
	buf.WriteString(headerStyle.Render("YEAR DETAIL"))
	buf.WriteString("\n")
	for _, row := range run.Rows {
		heading := fmt.Sprintf("AGE %d (%d): %s", row.Age, row.Year, row.Status)
		switch {
		case row.Insolvent:
			heading = badStyle.Render(heading)
		case row.PastInsolvency:
			heading = dimStyle.Render(heading)
		}
		buf.WriteString(heading)
		buf.WriteString("\n")
		fmt.Fprintln(buf, strings.Repeat("-", 40))

		fmt.Fprintf(buf, "  Budget:          %s\n", FormatCurrency(row.Budget))
		fmt.Fprintf(buf, "  Health premium:  %s", FormatCurrency(row.HealthPremium))
		if row.Tier != "" {
			fmt.Fprintf(buf, " (%s)", row.Tier)
		}
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "  Gross income:    %s\n", FormatCurrency(row.GrossIncome))
		fmt.Fprintf(buf, "  Net income:      %s\n", FormatCurrency(row.NetIncome))
		fmt.Fprintf(buf, "  Contributions:   %s\n", FormatCurrency(row.Contributions))
		fmt.Fprintf(buf, "  MAGI:            %s\n", FormatCurrency(row.MAGI))
		fmt.Fprintf(buf, "  Taxes:           %s\n", FormatCurrency(row.Taxes))
		fmt.Fprintf(buf, "  SNAP:            %s\n", FormatCurrency(row.SnapBenefit))
		fmt.Fprintf(buf, "  Funding gap:     %s\n", FormatCurrency(row.Gap))
		if row.Unfunded.IsPositive() {
			fmt.Fprintf(buf, "  Unfunded:        %s\n", badStyle.Render(FormatCurrency(row.Unfunded)))
		}
		if row.HelocInterest.IsPositive() {
			fmt.Fprintf(buf, "  HELOC interest:  %s\n", FormatCurrency(row.HelocInterest))
		}
		fmt.Fprintf(buf, "  Household size:  %d\n", row.HouseholdSize)
		fmt.Fprintf(buf, "  Net worth:       %s\n", FormatCurrency(row.NetWorth))

		var draws []string
		for _, k := range domain.AllBuckets {
			if d := row.Draws[k]; d.IsPositive() {
				draws = append(draws, fmt.Sprintf("%s %s", k, FormatCurrency(d)))
			}
		}
		if len(draws) > 0 {
			fmt.Fprintf(buf, "  Draws:           %s\n", strings.Join(draws, ", "))
		}
		var balances []string
		for _, k := range domain.AllBuckets {
			if b := row.Balances[k]; b.IsPositive() {
				balances = append(balances, fmt.Sprintf("%s %s", k, FormatCurrency(b)))
			}
		}
		if len(balances) > 0 {
			fmt.Fprintf(buf, "  Balances:        %s\n", strings.Join(balances, ", "))
		}
		for _, line := range row.Trace {
			fmt.Fprintf(buf, "    > %s\n", line)
		}
		fmt.Fprintln(buf)
	}
}
