package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fireplan/fire-calculator/internal/domain"
)

// CSVDetailedExporter provides every annual column, including per-bucket
// draws and balances. Comparison runs are written one strategy after another.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Strategy", "Age", "Year", "Budget", "HealthPremium", "Tier", "GrossIncome", "NetIncome", "Contributions", "MAGI", "SnapBenefit", "Taxes", "HelocInterest", "HouseholdSize", "NetWorth", "Gap", "Unfunded", "Status", "Insolvent", "PastInsolvency"}
	for _, k := range domain.AllBuckets {
		header = append(header, "Draw_"+string(k))
	}
	for _, k := range domain.AllBuckets {
		header = append(header, "Balance_"+string(k))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	var runs []*domain.RunResult
	if report.Run != nil {
		runs = append(runs, report.Run)
	}
	for _, o := range report.Comparison {
		if o.Result != nil {
			runs = append(runs, o.Result)
		}
	}

	for _, run := range runs {
		for _, row := range run.Rows {
			record := []string{
				string(run.Strategy),
				intToString(row.Age),
				intToString(row.Year),
				row.Budget.StringFixed(2),
				row.HealthPremium.StringFixed(2),
				string(row.Tier),
				row.GrossIncome.StringFixed(2),
				row.NetIncome.StringFixed(2),
				row.Contributions.StringFixed(2),
				row.MAGI.StringFixed(2),
				row.SnapBenefit.StringFixed(2),
				row.Taxes.StringFixed(2),
				row.HelocInterest.StringFixed(2),
				intToString(row.HouseholdSize),
				row.NetWorth.StringFixed(2),
				row.Gap.StringFixed(2),
				row.Unfunded.StringFixed(2),
				row.Status,
				boolToString(row.Insolvent),
				boolToString(row.PastInsolvency),
			}
			for _, k := range domain.AllBuckets {
				record = append(record, row.Draws[k].StringFixed(2))
			}
			for _, k := range domain.AllBuckets {
				record = append(record, row.Balances[k].StringFixed(2))
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
