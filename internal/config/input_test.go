package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalProfile = `
name: "Test household"
assets:
  accounts:
    - name: "Brokerage"
      type: "Taxable"
      value: 250000
      cost_basis: 150000
income_streams: []
budget:
  expenses:
    - name: "Living"
      amount: 40000
      survives_retirement: true
assumptions:
  current_age: 55
  retirement_age: 55
  filing_status: "single"
  jurisdiction: "TX"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	profile, err := parser.LoadFromFile(writeTemp(t, "profile.yaml", minimalProfile))

	require.NoError(t, err)
	assert.Equal(t, "Test household", profile.Name)
	require.Len(t, profile.Assets.Accounts, 1)
	assert.True(t, profile.Assets.Accounts[0].Value.Equal(decimal.NewFromInt(250000)))
	assert.Equal(t, domain.StrategyUnconstrained, profile.Drawdown.Strategy)
	assert.Equal(t, domain.DefaultPriority(), profile.Drawdown.Priority, "missing priority takes the default order")
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	profile, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, profile)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	parser := NewInputParser()
	profile, err := parser.LoadFromFile(writeTemp(t, "bad.yaml", "assets: [unclosed\n"))

	assert.Error(t, err)
	assert.Nil(t, profile)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_CoercesMalformedNumbers(t *testing.T) {
	doc := `
assets:
  accounts:
    - name: "Checking"
      type: "Cash"
      value: "$1,250.50"
      cost_basis: "n/a"
budget:
  expenses:
    - name: "Food"
      amount: "12,000"
      survives_retirement: yes
assumptions:
  current_age: "forty"
  retirement_age: 45
  inflation: "3%"
  years_worked: 12.7
drawdown:
  strategy: "silver"
  cash_reserve: ""
`
	profile, err := NewInputParser().Parse([]byte(doc))
	require.NoError(t, err)

	acct := profile.Assets.Accounts[0]
	assert.True(t, acct.Value.Equal(decimal.NewFromFloat(1250.50)), "currency string: %s", acct.Value)
	assert.True(t, acct.CostBasis.IsZero(), "unreadable value is zero")
	assert.True(t, profile.Budget.Expenses[0].Amount.Equal(decimal.NewFromInt(12000)))
	assert.True(t, profile.Budget.Expenses[0].SurvivesRetirement)
	assert.True(t, profile.Assumptions.Inflation.Equal(decimal.NewFromFloat(0.03)))
	assert.Equal(t, 0, profile.Assumptions.CurrentAge)
	assert.Equal(t, 12, profile.Assumptions.YearsWorked)
	assert.Equal(t, domain.StrategySilver, profile.Drawdown.Strategy)
	assert.True(t, profile.Drawdown.CashReserve.IsZero())
}

func TestParse_RetirementAgeCoercedBelowCurrentFails(t *testing.T) {
	doc := `
assumptions:
  current_age: 40
  retirement_age: "soon"
`
	_, err := NewInputParser().Parse([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRetirementBeforeCurrent)
}

func TestParse_ExplicitEmptyPriorityIsKept(t *testing.T) {
	doc := minimalProfile + `
drawdown:
  priority: []
`
	profile, err := NewInputParser().Parse([]byte(doc))
	require.NoError(t, err)
	assert.NotNil(t, profile.Drawdown.Priority)
	assert.Empty(t, profile.Drawdown.Priority)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		drawdown string
		wantErr  error
	}{
		{
			name:     "unknown bucket",
			drawdown: "drawdown:\n  priority: [cash, savings]\n",
			wantErr:  domain.ErrInvalidBucket,
		},
		{
			name:     "duplicate bucket",
			drawdown: "drawdown:\n  priority: [cash, cash]\n",
			wantErr:  domain.ErrDuplicateBucket,
		},
		{
			name:     "unknown strategy",
			drawdown: "drawdown:\n  strategy: gold\n",
			wantErr:  domain.ErrInvalidStrategy,
		},
		{
			name:     "horizon before current age",
			drawdown: "drawdown:\n  horizon_age: 50\n",
			wantErr:  domain.ErrHorizonBeforeCurrent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(minimalProfile + tt.drawdown))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateProfile_IncomeFrequency(t *testing.T) {
	parser := NewInputParser()
	p := parser.CreateExampleProfile()
	p.IncomeStreams[0].Frequency = "weekly"

	err := parser.ValidateProfile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frequency")
}

func TestValidateProfile_Nil(t *testing.T) {
	assert.Error(t, NewInputParser().ValidateProfile(nil))
}

func TestCreateExampleProfile(t *testing.T) {
	parser := NewInputParser()
	p := parser.CreateExampleProfile()

	require.NotNil(t, p)
	assert.NoError(t, parser.ValidateProfile(p))
	assert.Equal(t, 2, p.AdultCount())
	assert.Len(t, p.Assumptions.Phases, 3)
}

func TestSaveProfile_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := parser.CreateExampleProfile()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, parser.SaveProfile(original, path))
	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Drawdown.Priority, loaded.Drawdown.Priority)
	assert.Equal(t, original.Assumptions.Jurisdiction, loaded.Assumptions.Jurisdiction)
	require.Len(t, loaded.Assets.Accounts, len(original.Assets.Accounts))
	for i := range original.Assets.Accounts {
		assert.True(t, original.Assets.Accounts[i].Value.Equal(loaded.Assets.Accounts[i].Value))
	}
}

func TestLoadRulesFromFile_MergesOverDefaults(t *testing.T) {
	rules := `
ltcg_rate: 0.2
jurisdictions:
  zz:
    code: "ZZ"
    name: "Zedland"
    non_expansion: true
    state_tax:
      flat_rate: "4%"
`
	rs, err := NewInputParser().LoadRulesFromFile(writeTemp(t, "rules.yaml", rules))
	require.NoError(t, err)

	assert.True(t, rs.LTCGRate.Equal(decimal.NewFromFloat(0.2)))
	zz, ok := rs.Lookup("ZZ")
	require.True(t, ok)
	assert.False(t, zz.MedicaidExpansion())
	assert.True(t, zz.StateTax.FlatRate.Equal(decimal.NewFromFloat(0.04)))

	_, ok = rs.Lookup("CA")
	assert.True(t, ok, "built-in jurisdictions survive the merge")
	assert.NotEmpty(t, rs.Federal.Brackets)
}

func TestLoadRulesFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadRulesFromFile(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
