package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BucketKey names a funding source the simulator can liquidate.
type BucketKey string

const (
	BucketCash         BucketKey = "cash"
	BucketTaxable      BucketKey = "taxable"
	BucketPreTax       BucketKey = "pretax"
	BucketRothBasis    BucketKey = "roth_basis"
	BucketRothEarnings BucketKey = "roth_earnings"
	BucketCrypto       BucketKey = "crypto"
	BucketMetals       BucketKey = "metals"
	BucketHSA          BucketKey = "hsa"
	BucketHELOC        BucketKey = "heloc"
	BucketEquity       BucketKey = "equity"
)

// AllBuckets is the fixed bucket set in its canonical order.
var AllBuckets = []BucketKey{
	BucketCash, BucketTaxable, BucketPreTax, BucketRothBasis, BucketRothEarnings,
	BucketCrypto, BucketMetals, BucketHSA, BucketHELOC, BucketEquity,
}

// DefaultPriority is a conventional drawdown order: cash and taxable first,
// tax-advantaged accounts last, credit as a last resort.
func DefaultPriority() []BucketKey {
	return []BucketKey{
		BucketCash, BucketTaxable, BucketCrypto, BucketMetals, BucketEquity,
		BucketRothBasis, BucketPreTax, BucketHSA, BucketRothEarnings, BucketHELOC,
	}
}

// Valid reports whether k is part of the fixed bucket set.
func (k BucketKey) Valid() bool {
	for _, b := range AllBuckets {
		if k == b {
			return true
		}
	}
	return false
}

// ParseBucketKey normalises user input ("Roth Basis", "roth-basis") to a key.
func ParseBucketKey(s string) (BucketKey, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	switch n {
	case "pre_tax", "401k", "ira":
		n = string(BucketPreTax)
	}
	k := BucketKey(n)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBucket, s)
	}
	return k, nil
}

// StrategyMode selects how public benefits influence bucket choice.
type StrategyMode string

const (
	// StrategyRaw ignores public benefits and draws buckets strictly in order.
	StrategyRaw StrategyMode = "RAW"
	// StrategyPlatinum keeps MAGI inside the full-coverage (Medicaid) band when it can.
	StrategyPlatinum StrategyMode = "PLATINUM"
	// StrategySilver keeps MAGI inside the enhanced-subsidy band when it can.
	StrategySilver StrategyMode = "SILVER"
	// StrategyUnconstrained counts benefits but never reorders draws for them.
	StrategyUnconstrained StrategyMode = "UNCONSTRAINED"
)

// StrategyModes lists every mode.
var StrategyModes = []StrategyMode{StrategyRaw, StrategyPlatinum, StrategySilver, StrategyUnconstrained}

// ParseStrategyMode accepts any casing; empty input means UNCONSTRAINED.
func ParseStrategyMode(s string) (StrategyMode, error) {
	n := StrategyMode(strings.ToUpper(strings.TrimSpace(s)))
	if n == "" {
		return StrategyUnconstrained, nil
	}
	for _, m := range StrategyModes {
		if n == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// CountsBenefits reports whether SNAP and health premiums enter the funding gap.
func (m StrategyMode) CountsBenefits() bool {
	return m != StrategyRaw
}

// DefaultHorizonAge is the last simulated age when none is configured.
const DefaultHorizonAge = 100

// DrawdownConfig controls a simulation run. SnapPreserve is a monthly SNAP
// amount the benefit-preserving strategies try to keep.
type DrawdownConfig struct {
	Strategy             StrategyMode     `yaml:"strategy" json:"strategy"`
	Priority             []BucketKey      `yaml:"priority" json:"priority"`
	CashReserve          decimal.Decimal  `yaml:"cash_reserve" json:"cash_reserve"`
	SnapPreserve         decimal.Decimal  `yaml:"snap_preserve" json:"snap_preserve"`
	UseSync              bool             `yaml:"use_sync" json:"use_sync"`
	RealDollars          bool             `yaml:"real_dollars" json:"real_dollars"`
	ManualBudgetOverride *decimal.Decimal `yaml:"manual_budget_override,omitempty" json:"manual_budget_override,omitempty"`
	HorizonAge           int              `yaml:"horizon_age,omitempty" json:"horizon_age,omitempty"`
}

// Horizon returns the configured horizon age or the default.
func (c DrawdownConfig) Horizon() int {
	if c.HorizonAge <= 0 {
		return DefaultHorizonAge
	}
	return c.HorizonAge
}

// Mode returns the strategy, defaulting to UNCONSTRAINED.
func (c DrawdownConfig) Mode() StrategyMode {
	if c.Strategy == "" {
		return StrategyUnconstrained
	}
	return c.Strategy
}

// UsesOverride reports whether the manual year-one budget replaces line items.
func (c DrawdownConfig) UsesOverride() bool {
	return !c.UseSync && c.ManualBudgetOverride != nil
}

// WithBudget returns a copy that pins the year-one budget to amount.
func (c DrawdownConfig) WithBudget(amount decimal.Decimal) DrawdownConfig {
	out := c.Clone()
	out.UseSync = false
	out.ManualBudgetOverride = &amount
	return out
}

// WithStrategy returns a copy using mode.
func (c DrawdownConfig) WithStrategy(mode StrategyMode) DrawdownConfig {
	out := c.Clone()
	out.Strategy = mode
	return out
}

// Clone deep-copies the priority slice and budget override.
func (c DrawdownConfig) Clone() DrawdownConfig {
	out := c
	out.Priority = append([]BucketKey(nil), c.Priority...)
	if c.ManualBudgetOverride != nil {
		v := *c.ManualBudgetOverride
		out.ManualBudgetOverride = &v
	}
	return out
}
