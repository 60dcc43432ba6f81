package output

import (
	"testing"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeComparison(t *testing.T) {
	tests := []struct {
		name        string
		outcomes    []domain.StrategyOutcome
		want        domain.StrategyMode
		advantage   int64
		description string
	}{
		{
			name:        "empty",
			want:        "",
			description: "no outcomes yields an empty recommendation",
		},
		{
			name: "solvent beats insolvent",
			outcomes: []domain.StrategyOutcome{
				{Strategy: domain.StrategyRaw, FirstInsolvencyAge: intPtr(80), FinalNetWorth: decimal.NewFromInt(50000)},
				{Strategy: domain.StrategyPlatinum, FinalNetWorth: decimal.NewFromInt(1000)},
			},
			want:        domain.StrategyPlatinum,
			advantage:   -49000,
			description: "the margin is against the runner-up even when negative",
		},
		{
			name: "net worth breaks ties",
			outcomes: []domain.StrategyOutcome{
				{Strategy: domain.StrategyRaw, FinalNetWorth: decimal.NewFromInt(10000)},
				{Strategy: domain.StrategySilver, FinalNetWorth: decimal.NewFromInt(25000)},
				{Strategy: domain.StrategyUnconstrained, FinalNetWorth: decimal.NewFromInt(20000)},
			},
			want:      domain.StrategySilver,
			advantage: 5000,
		},
		{
			name: "single outcome",
			outcomes: []domain.StrategyOutcome{
				{Strategy: domain.StrategyRaw, FinalNetWorth: decimal.NewFromInt(10000)},
			},
			want: domain.StrategyRaw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := AnalyzeComparison(tt.outcomes)
			assert.Equal(t, tt.want, rec.Strategy, tt.description)
			assert.True(t, rec.NetWorthAdvantage.Equal(decimal.NewFromInt(tt.advantage)), "advantage %s", rec.NetWorthAdvantage)
		})
	}
}
