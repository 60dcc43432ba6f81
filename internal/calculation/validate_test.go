package calculation

import (
	"testing"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.HouseholdProfile)
		wantErr error
	}{
		{"Valid", func(*domain.HouseholdProfile) {}, nil},
		{"Negative claim age", func(p *domain.HouseholdProfile) { p.Assumptions.SSClaimAge = -67 }, domain.ErrNegativeAge},
		{"Unknown filing status", func(p *domain.HouseholdProfile) { p.Assumptions.FilingStatus = "joint" }, domain.ErrInvalidFilingStatus},
		{"Four phases", func(p *domain.HouseholdProfile) {
			p.Assumptions.Phases = make([]domain.SpendingPhase, MaxSpendingPhases+1)
		}, domain.ErrTooManyPhases},
		{"Unknown account type", func(p *domain.HouseholdProfile) {
			p.Assets.Accounts = append(p.Assets.Accounts, domain.InvestmentAccount{Name: "x", Type: "Annuity"})
		}, domain.ErrInvalidAccountType},
		{"Negative account value", func(p *domain.HouseholdProfile) {
			p.Assets.Accounts[0].Value = dec(-1)
		}, domain.ErrNegativeAmount},
		{"Negative expense", func(p *domain.HouseholdProfile) {
			p.Budget.Expenses[0].Amount = dec(-100)
		}, domain.ErrNegativeAmount},
		{"Savings into unknown account", func(p *domain.HouseholdProfile) {
			p.Budget.Savings = []domain.SavingsItem{{Name: "x", Target: "Mattress", Amount: dec(1)}}
		}, domain.ErrInvalidAccountType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := retireeProfile(50, 1000, 1000)
			tt.mutate(p)
			err := ValidateProfile(p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	override := dec(-5)

	tests := []struct {
		name       string
		cfg        domain.DrawdownConfig
		currentAge int
		wantErr    error
	}{
		{"Empty config", domain.DrawdownConfig{}, 50, nil},
		{"Subset priority", domain.DrawdownConfig{Priority: []domain.BucketKey{domain.BucketCash}}, 50, nil},
		{"Past default horizon", domain.DrawdownConfig{}, 101, domain.ErrHorizonBeforeCurrent},
		{"Negative reserve", domain.DrawdownConfig{CashReserve: dec(-1)}, 50, domain.ErrNegativeAmount},
		{"Negative SNAP target", domain.DrawdownConfig{SnapPreserve: dec(-1)}, 50, domain.ErrNegativeAmount},
		{"Negative override", domain.DrawdownConfig{ManualBudgetOverride: &override}, 50, domain.ErrNegativeAmount},
		{"Lower-case strategy", domain.DrawdownConfig{Strategy: "raw"}, 50, domain.ErrInvalidStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg, tt.currentAge)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
