package calculation

import (
	"testing"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestRecommendStrategy(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []domain.StrategyOutcome
		expected domain.StrategyMode
	}{
		{
			name: "Solvent beats insolvent",
			outcomes: []domain.StrategyOutcome{
				{Strategy: domain.StrategyRaw, FirstInsolvencyAge: intPtr(90), FinalNetWorth: dec(1000000)},
				{Strategy: domain.StrategySilver, FinalNetWorth: dec(10)},
			},
			expected: domain.StrategySilver,
		},
		{
			name: "Later insolvency wins",
			outcomes: []domain.StrategyOutcome{
				{Strategy: domain.StrategyRaw, FirstInsolvencyAge: intPtr(80)},
				{Strategy: domain.StrategyPlatinum, FirstInsolvencyAge: intPtr(85)},
			},
			expected: domain.StrategyPlatinum,
		},
		{
			name: "Tie broken by net worth",
			outcomes: []domain.StrategyOutcome{
				{Strategy: domain.StrategyRaw, FinalNetWorth: dec(100)},
				{Strategy: domain.StrategyUnconstrained, FinalNetWorth: dec(200)},
			},
			expected: domain.StrategyUnconstrained,
		},
		{
			name: "Exact tie keeps the first",
			outcomes: []domain.StrategyOutcome{
				{Strategy: domain.StrategyRaw, FinalNetWorth: dec(100)},
				{Strategy: domain.StrategySilver, FinalNetWorth: dec(100)},
			},
			expected: domain.StrategyRaw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RecommendStrategy(tt.outcomes)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, ok := RecommendStrategy(nil)
	assert.False(t, ok)
}

func TestCompareStrategies(t *testing.T) {
	engine := NewCalculationEngine()
	profile := retireeProfile(50, 100000, 20000)
	profile.Assumptions.Jurisdiction = "CA"
	cfg := domain.DrawdownConfig{Priority: []domain.BucketKey{domain.BucketCash}, HorizonAge: 55}

	outcomes, best, err := engine.CompareStrategies(profile, cfg)
	require.NoError(t, err)
	require.Len(t, outcomes, len(domain.StrategyModes))
	for i, mode := range domain.StrategyModes {
		assert.Equal(t, mode, outcomes[i].Strategy)
		require.NotNil(t, outcomes[i].Result)
		assert.Len(t, outcomes[i].Result.Rows, 6)
	}
	assert.True(t, outcomes[0].TotalSNAP.IsZero(), "RAW ignores SNAP")
	assert.True(t, outcomes[3].TotalSNAP.GreaterThan(dec(0)))
	assert.NotEqual(t, domain.StrategyRaw, best, "counting SNAP leaves more money at the horizon")
}
