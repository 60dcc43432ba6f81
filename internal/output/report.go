package output

import (
	"fmt"
	"time"

	"github.com/fireplan/fire-calculator/internal/calculation"
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewReport starts a report for profile with a fresh run id. Assumptions
// and the point-in-time summary are filled from the profile.
func NewReport(profile *domain.HouseholdProfile, realDollars bool) *domain.Report {
	r := &domain.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		RealDollars: realDollars,
	}
	if profile != nil {
		r.Profile = profile.Name
		r.Assumptions = GenerateAssumptions(profile)
		s := calculation.Summarize(profile)
		r.Summary = &s
	}
	return r
}

// AttachRun adds a simulation, deflated to today's dollars when the report
// asks for real dollars.
func AttachRun(r *domain.Report, run *domain.RunResult, inflation decimal.Decimal) {
	if r.RealDollars {
		run = calculation.ToRealDollars(run, inflation)
	}
	r.Run = run
}

// AttachComparison adds strategy outcomes and the recommended mode.
func AttachComparison(r *domain.Report, outcomes []domain.StrategyOutcome, best domain.StrategyMode) {
	r.Comparison = outcomes
	r.Recommended = best
}

// GenerateReport writes report to a timestamped file in dir using format.
// "all" writes the verbose console and detailed CSV files.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if format == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, JSONFormatter{}} {
			name, err := WriteFormatted(f, report, dir)
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	name, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}
