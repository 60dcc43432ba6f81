package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxBracket is one marginal rate band. A zero Max marks the top bracket.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// FederalTaxConfig holds federal ordinary-income tables by filing status.
type FederalTaxConfig struct {
	StandardDeduction           map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	AdditionalStandardDeduction decimal.Decimal                  `yaml:"additional_standard_deduction_65_plus" json:"additional_standard_deduction_65_plus"`
	Brackets                    map[FilingStatus][]TaxBracket    `yaml:"brackets" json:"brackets"`
}

// StateTaxConfig is either a flat rate or bracket tables by filing status.
// Brackets win when present for the filing status.
type StateTaxConfig struct {
	FlatRate decimal.Decimal               `yaml:"flat_rate" json:"flat_rate"`
	Brackets map[FilingStatus][]TaxBracket `yaml:"brackets,omitempty" json:"brackets,omitempty"`
}

// FICATaxConfig holds payroll tax parameters.
type FICATaxConfig struct {
	SocialSecurityWageBase decimal.Decimal                  `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	SocialSecurityRate     decimal.Decimal                  `yaml:"social_security_rate" json:"social_security_rate"`
	MedicareRate           decimal.Decimal                  `yaml:"medicare_rate" json:"medicare_rate"`
	AdditionalMedicareRate decimal.Decimal                  `yaml:"additional_medicare_rate" json:"additional_medicare_rate"`
	AdditionalThreshold    map[FilingStatus]decimal.Decimal `yaml:"additional_threshold" json:"additional_threshold"`
}

// MedicareConfig holds Part B premium and IRMAA surcharges.
type MedicareConfig struct {
	EligibilityAge  int                      `yaml:"eligibility_age" json:"eligibility_age"`
	BasePremium     decimal.Decimal          `yaml:"base_premium" json:"base_premium"`
	IRMAAThresholds []MedicareIRMAAThreshold `yaml:"irmaa_thresholds" json:"irmaa_thresholds"`
}

// MedicareIRMAAThreshold adds MonthlySurcharge per person once MAGI exceeds the threshold.
type MedicareIRMAAThreshold struct {
	IncomeThresholdSingle decimal.Decimal `yaml:"income_threshold_single" json:"income_threshold_single"`
	IncomeThresholdJoint  decimal.Decimal `yaml:"income_threshold_joint" json:"income_threshold_joint"`
	MonthlySurcharge      decimal.Decimal `yaml:"monthly_surcharge" json:"monthly_surcharge"`
}

// PovertyRegion selects the HHS poverty guideline table.
type PovertyRegion string

const (
	RegionContiguous PovertyRegion = "contiguous"
	RegionAlaska     PovertyRegion = "alaska"
	RegionHawaii     PovertyRegion = "hawaii"
)

// Jurisdiction describes one state (or district) for tax and benefit rules.
type Jurisdiction struct {
	Code             string          `yaml:"code" json:"code"`
	Name             string          `yaml:"name" json:"name"`
	NonExpansion     bool            `yaml:"non_expansion" json:"non_expansion"`
	Region           PovertyRegion   `yaml:"region,omitempty" json:"region,omitempty"`
	StateTax         StateTaxConfig  `yaml:"state_tax" json:"state_tax"`
	SNAPScale        decimal.Decimal `yaml:"snap_scale,omitempty" json:"snap_scale,omitempty"`
	UtilityAllowance decimal.Decimal `yaml:"utility_allowance,omitempty" json:"utility_allowance,omitempty"`
}

// MedicaidExpansion reports whether the jurisdiction expanded Medicaid.
func (j Jurisdiction) MedicaidExpansion() bool {
	return !j.NonExpansion
}

// RuleSet is the pluggable jurisdictional data the engine runs on.
type RuleSet struct {
	Federal       FederalTaxConfig        `yaml:"federal" json:"federal"`
	FICA          FICATaxConfig           `yaml:"fica" json:"fica"`
	Medicare      MedicareConfig          `yaml:"medicare" json:"medicare"`
	LTCGRate      decimal.Decimal         `yaml:"ltcg_rate" json:"ltcg_rate"`
	Jurisdictions map[string]Jurisdiction `yaml:"jurisdictions" json:"jurisdictions"`
}

// NormalizeJurisdiction upper-cases and trims a jurisdiction code.
func NormalizeJurisdiction(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup returns the jurisdiction for code. Unknown codes get an expansion
// jurisdiction with no state income tax and ok=false.
func (r *RuleSet) Lookup(code string) (Jurisdiction, bool) {
	n := NormalizeJurisdiction(code)
	if j, ok := r.Jurisdictions[n]; ok {
		if j.Code == "" {
			j.Code = n
		}
		return j, true
	}
	return Jurisdiction{Code: n, Name: n, Region: RegionContiguous}, false
}

// Merge overlays other on r. Non-empty tables in other replace those in r;
// jurisdictions are merged by code.
func (r RuleSet) Merge(other RuleSet) RuleSet {
	out := r
	if len(other.Federal.Brackets) > 0 {
		out.Federal.Brackets = other.Federal.Brackets
	}
	if len(other.Federal.StandardDeduction) > 0 {
		out.Federal.StandardDeduction = other.Federal.StandardDeduction
	}
	if !other.Federal.AdditionalStandardDeduction.IsZero() {
		out.Federal.AdditionalStandardDeduction = other.Federal.AdditionalStandardDeduction
	}
	if !other.FICA.SocialSecurityWageBase.IsZero() {
		out.FICA = other.FICA
	}
	if !other.Medicare.BasePremium.IsZero() {
		out.Medicare = other.Medicare
	}
	if !other.LTCGRate.IsZero() {
		out.LTCGRate = other.LTCGRate
	}
	out.Jurisdictions = make(map[string]Jurisdiction, len(r.Jurisdictions)+len(other.Jurisdictions))
	for k, v := range r.Jurisdictions {
		out.Jurisdictions[k] = v
	}
	for k, v := range other.Jurisdictions {
		out.Jurisdictions[NormalizeJurisdiction(k)] = v
	}
	return out
}
