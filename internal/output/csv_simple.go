package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fireplan/fire-calculator/internal/domain"
)

// CSVSummarizer writes one row per simulated year. Without a run it writes
// one row per compared strategy.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if report.Run == nil {
		if err := writeComparisonCSV(w, report.Comparison); err != nil {
			return nil, err
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	}

	header := []string{"Age", "Year", "Budget", "HealthPremium", "GrossIncome", "NetIncome", "MAGI", "SnapBenefit", "Taxes", "NetWorth", "Gap", "Status"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range report.Run.Rows {
		record := []string{
			intToString(row.Age),
			intToString(row.Year),
			row.Budget.StringFixed(2),
			row.HealthPremium.StringFixed(2),
			row.GrossIncome.StringFixed(2),
			row.NetIncome.StringFixed(2),
			row.MAGI.StringFixed(2),
			row.SnapBenefit.StringFixed(2),
			row.Taxes.StringFixed(2),
			row.NetWorth.StringFixed(2),
			row.Gap.StringFixed(2),
			row.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeComparisonCSV(w *csv.Writer, outcomes []domain.StrategyOutcome) error {
	if err := w.Write([]string{"Strategy", "FirstInsolvencyAge", "FinalNetWorth", "TotalTaxes", "TotalSNAP"}); err != nil {
		return err
	}
	for _, o := range outcomes {
		age := ""
		if o.FirstInsolvencyAge != nil {
			age = intToString(*o.FirstInsolvencyAge)
		}
		record := []string{
			string(o.Strategy),
			age,
			o.FinalNetWorth.StringFixed(2),
			o.TotalTaxes.StringFixed(2),
			o.TotalSNAP.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
