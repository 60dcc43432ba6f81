package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ToRealDollars returns a copy of result with every money column deflated to
// first-year dollars at the given annual inflation rate. The input is not
// modified.
func ToRealDollars(result *domain.RunResult, inflation decimal.Decimal) *domain.RunResult {
	if result == nil {
		return nil
	}
	out := &domain.RunResult{
		Strategy:           result.Strategy,
		FirstInsolvencyAge: result.FirstInsolvencyAge,
		Rows:               make([]domain.YearRow, len(result.Rows)),
	}
	for i, row := range result.Rows {
		factor := compound(inflation, i)
		if factor.LessThanOrEqual(decimal.Zero) {
			factor = decimal.NewFromInt(1)
		}
		deflate := func(d decimal.Decimal) decimal.Decimal { return d.Div(factor).Round(2) }

		r := row
		r.Budget = deflate(row.Budget)
		r.HealthPremium = deflate(row.HealthPremium)
		r.GrossIncome = deflate(row.GrossIncome)
		r.NetIncome = deflate(row.NetIncome)
		r.MAGI = deflate(row.MAGI)
		r.SnapBenefit = deflate(row.SnapBenefit)
		r.Taxes = deflate(row.Taxes)
		r.Contributions = deflate(row.Contributions)
		r.NetWorth = deflate(row.NetWorth)
		r.Gap = deflate(row.Gap)
		r.Unfunded = deflate(row.Unfunded)
		r.HelocInterest = deflate(row.HelocInterest)
		r.Draws = deflateMap(row.Draws, deflate)
		r.Balances = deflateMap(row.Balances, deflate)
		r.Trace = append([]string(nil), row.Trace...)
		out.Rows[i] = r
	}
	return out
}

func deflateMap(m map[domain.BucketKey]decimal.Decimal, f func(decimal.Decimal) decimal.Decimal) map[domain.BucketKey]decimal.Decimal {
	out := make(map[domain.BucketKey]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = f(v)
	}
	return out
}
