package calculation

import (
	"fmt"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxSpendingPhases is the number of age-banded spending phases supported.
const MaxSpendingPhases = 3

// ValidateProfile reports the first caller-input error in a profile.
func ValidateProfile(p *domain.HouseholdProfile) error {
	a := p.Assumptions
	if a.CurrentAge < 0 {
		return fmt.Errorf("current_age %d: %w", a.CurrentAge, domain.ErrNegativeAge)
	}
	if a.RetirementAge < 0 {
		return fmt.Errorf("retirement_age %d: %w", a.RetirementAge, domain.ErrNegativeAge)
	}
	if a.SSClaimAge < 0 {
		return fmt.Errorf("ss_claim_age %d: %w", a.SSClaimAge, domain.ErrNegativeAge)
	}
	if a.RetirementAge < a.CurrentAge {
		return fmt.Errorf("retirement_age %d < current_age %d: %w", a.RetirementAge, a.CurrentAge, domain.ErrRetirementBeforeCurrent)
	}
	if a.FilingStatus != "" && !a.FilingStatus.Valid() {
		return fmt.Errorf("filing_status %q: %w", a.FilingStatus, domain.ErrInvalidFilingStatus)
	}
	if len(a.Phases) > MaxSpendingPhases {
		return fmt.Errorf("%d phases: %w", len(a.Phases), domain.ErrTooManyPhases)
	}
	for i, ph := range a.Phases {
		if ph.StartAge < 0 || ph.EndAge < 0 {
			return fmt.Errorf("phase %d: %w", i, domain.ErrNegativeAge)
		}
		if ph.Multiplier.IsNegative() {
			return fmt.Errorf("phase %d multiplier: %w", i, domain.ErrNegativeAmount)
		}
	}

	for _, acct := range p.Assets.Accounts {
		if !acct.Type.Valid() {
			return fmt.Errorf("account %q type %q: %w", acct.Name, acct.Type, domain.ErrInvalidAccountType)
		}
		if err := nonNegativeField("account "+acct.Name+" value", acct.Value); err != nil {
			return err
		}
		if err := nonNegativeField("account "+acct.Name+" cost_basis", acct.CostBasis); err != nil {
			return err
		}
	}
	for _, s := range p.Budget.Savings {
		if !s.Target.Valid() {
			return fmt.Errorf("savings %q target %q: %w", s.Name, s.Target, domain.ErrInvalidAccountType)
		}
		if err := nonNegativeField("savings "+s.Name, s.Amount); err != nil {
			return err
		}
	}
	for _, e := range p.Budget.Expenses {
		if err := nonNegativeField("expense "+e.Name, e.Amount); err != nil {
			return err
		}
	}
	for _, s := range p.IncomeStreams {
		if err := nonNegativeField("income "+s.Name, s.Amount); err != nil {
			return err
		}
	}
	for _, h := range p.Assets.HELOCs {
		if err := nonNegativeField("heloc "+h.Name+" limit", h.Limit); err != nil {
			return err
		}
		if err := nonNegativeField("heloc "+h.Name+" balance", h.Balance); err != nil {
			return err
		}
	}
	return nil
}

// ValidateConfig reports the first caller-input error in a drawdown config.
func ValidateConfig(cfg domain.DrawdownConfig, currentAge int) error {
	if cfg.Strategy != "" && !isCanonicalMode(cfg.Strategy) {
		return fmt.Errorf("strategy %q: %w", cfg.Strategy, domain.ErrInvalidStrategy)
	}
	seen := make(map[domain.BucketKey]bool, len(cfg.Priority))
	for _, k := range cfg.Priority {
		if !k.Valid() {
			return fmt.Errorf("priority %q: %w", k, domain.ErrInvalidBucket)
		}
		if seen[k] {
			return fmt.Errorf("priority %q: %w", k, domain.ErrDuplicateBucket)
		}
		seen[k] = true
	}
	if cfg.HorizonAge != 0 && cfg.HorizonAge < currentAge {
		return fmt.Errorf("horizon_age %d < current_age %d: %w", cfg.HorizonAge, currentAge, domain.ErrHorizonBeforeCurrent)
	}
	if cfg.HorizonAge == 0 && domain.DefaultHorizonAge < currentAge {
		return fmt.Errorf("current_age %d beyond default horizon: %w", currentAge, domain.ErrHorizonBeforeCurrent)
	}
	if err := nonNegativeField("cash_reserve", cfg.CashReserve); err != nil {
		return err
	}
	if err := nonNegativeField("snap_preserve", cfg.SnapPreserve); err != nil {
		return err
	}
	if cfg.ManualBudgetOverride != nil {
		if err := nonNegativeField("manual_budget_override", *cfg.ManualBudgetOverride); err != nil {
			return err
		}
	}
	return nil
}

func isCanonicalMode(m domain.StrategyMode) bool {
	for _, known := range domain.StrategyModes {
		if m == known {
			return true
		}
	}
	return false
}

func nonNegativeField(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%s %s: %w", field, d.String(), domain.ErrNegativeAmount)
	}
	return nil
}
