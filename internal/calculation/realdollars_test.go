package calculation

import (
	"testing"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRealDollars(t *testing.T) {
	sim := NewSimulator(DefaultRules(), nil)
	profile := retireeProfile(60, 500000, 40000)
	profile.Assumptions.Inflation = dec(0.03)

	nominal, err := sim.Simulate(profile, rawConfig(70, domain.BucketCash))
	require.NoError(t, err)
	realRun := ToRealDollars(nominal, profile.Assumptions.Inflation)
	require.Len(t, realRun.Rows, len(nominal.Rows))

	for i, row := range realRun.Rows {
		assertDecimal(t, dec(40000), row.Budget, 0.02, "age %d budget in first-year dollars", row.Age)
		assert.Equal(t, nominal.Rows[i].Age, row.Age)
	}
	assert.True(t, nominal.Rows[5].Budget.GreaterThan(dec(40000)), "input is untouched")
	assert.True(t, realRun.Rows[5].NetWorth.LessThan(nominal.Rows[5].NetWorth))
	assert.True(t, realRun.Rows[5].Draws[domain.BucketCash].LessThan(nominal.Rows[5].Draws[domain.BucketCash]))

	assert.Nil(t, ToRealDollars(nil, dec(0.03)))
}
