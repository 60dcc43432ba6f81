package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DEFAULT RULE TABLES
//
// Federal: 2025 brackets and standard deductions, not indexed for future years.
// FICA: 2025 wage base ($176,100).
// Medicare: 2025 Part B base premium and IRMAA tiers.
// States: bracket tables for CA and NY; every other state is a flat rate
// (the statutory rate for flat-tax states, otherwise an approximation near
// the typical marginal rate of a middle-income retiree). Override through a
// rules file when precision matters.
// Medicaid expansion: status as of 2025.

func bracket(min, max int64, rate float64) domain.TaxBracket {
	return domain.TaxBracket{Min: decimal.NewFromInt(min), Max: decimal.NewFromInt(max), Rate: decimal.NewFromFloat(rate)}
}

func federalBrackets2025() map[domain.FilingStatus][]domain.TaxBracket {
	return map[domain.FilingStatus][]domain.TaxBracket{
		domain.FilingSingle: {
			bracket(0, 11925, 0.10),
			bracket(11925, 48475, 0.12),
			bracket(48475, 103350, 0.22),
			bracket(103350, 197300, 0.24),
			bracket(197300, 250525, 0.32),
			bracket(250525, 626350, 0.35),
			bracket(626350, 0, 0.37),
		},
		domain.FilingMarriedJoint: {
			bracket(0, 23850, 0.10),
			bracket(23850, 96950, 0.12),
			bracket(96950, 206700, 0.22),
			bracket(206700, 394600, 0.24),
			bracket(394600, 501050, 0.32),
			bracket(501050, 751600, 0.35),
			bracket(751600, 0, 0.37),
		},
		domain.FilingHeadOfHousehold: {
			bracket(0, 17000, 0.10),
			bracket(17000, 64850, 0.12),
			bracket(64850, 103350, 0.22),
			bracket(103350, 197300, 0.24),
			bracket(197300, 250500, 0.32),
			bracket(250500, 626350, 0.35),
			bracket(626350, 0, 0.37),
		},
	}
}

func flat(code, name string, rate float64) domain.Jurisdiction {
	return domain.Jurisdiction{Code: code, Name: name, Region: domain.RegionContiguous, StateTax: domain.StateTaxConfig{FlatRate: decimal.NewFromFloat(rate)}}
}

func nonExpansion(j domain.Jurisdiction) domain.Jurisdiction {
	j.NonExpansion = true
	return j
}

func defaultJurisdictions() map[string]domain.Jurisdiction {
	list := []domain.Jurisdiction{
		nonExpansion(flat("AL", "Alabama", 0.05)),
		flat("AR", "Arkansas", 0.039),
		flat("AZ", "Arizona", 0.025),
		flat("CO", "Colorado", 0.044),
		flat("CT", "Connecticut", 0.05),
		flat("DC", "District of Columbia", 0.06),
		flat("DE", "Delaware", 0.055),
		nonExpansion(flat("FL", "Florida", 0)),
		nonExpansion(flat("GA", "Georgia", 0.0539)),
		flat("IA", "Iowa", 0.038),
		flat("ID", "Idaho", 0.05695),
		flat("IL", "Illinois", 0.0495),
		flat("IN", "Indiana", 0.03),
		nonExpansion(flat("KS", "Kansas", 0.0558)),
		flat("KY", "Kentucky", 0.04),
		flat("LA", "Louisiana", 0.03),
		flat("MA", "Massachusetts", 0.05),
		flat("MD", "Maryland", 0.0475),
		flat("ME", "Maine", 0.0675),
		flat("MI", "Michigan", 0.0425),
		flat("MN", "Minnesota", 0.068),
		flat("MO", "Missouri", 0.047),
		nonExpansion(flat("MS", "Mississippi", 0.044)),
		flat("MT", "Montana", 0.059),
		flat("NC", "North Carolina", 0.0425),
		flat("ND", "North Dakota", 0.0195),
		flat("NE", "Nebraska", 0.052),
		flat("NH", "New Hampshire", 0),
		flat("NJ", "New Jersey", 0.0553),
		flat("NM", "New Mexico", 0.049),
		flat("NV", "Nevada", 0),
		flat("OH", "Ohio", 0.035),
		flat("OK", "Oklahoma", 0.0475),
		flat("OR", "Oregon", 0.0875),
		flat("PA", "Pennsylvania", 0.0307),
		flat("RI", "Rhode Island", 0.0475),
		nonExpansion(flat("SC", "South Carolina", 0.062)),
		flat("SD", "South Dakota", 0),
		nonExpansion(flat("TN", "Tennessee", 0)),
		nonExpansion(flat("TX", "Texas", 0)),
		flat("UT", "Utah", 0.0455),
		flat("VA", "Virginia", 0.0575),
		flat("VT", "Vermont", 0.066),
		flat("WA", "Washington", 0),
		nonExpansion(flat("WI", "Wisconsin", 0.053)),
		flat("WV", "West Virginia", 0.0482),
		nonExpansion(flat("WY", "Wyoming", 0)),
		{
			Code: "AK", Name: "Alaska", Region: domain.RegionAlaska,
			SNAPScale: decimal.NewFromFloat(1.25),
		},
		{
			Code: "HI", Name: "Hawaii", Region: domain.RegionHawaii,
			SNAPScale: decimal.NewFromFloat(1.15),
			StateTax:  domain.StateTaxConfig{FlatRate: decimal.NewFromFloat(0.0725)},
		},
		{
			Code: "CA", Name: "California", Region: domain.RegionContiguous,
			StateTax: domain.StateTaxConfig{Brackets: map[domain.FilingStatus][]domain.TaxBracket{
				domain.FilingSingle: {
					bracket(0, 10756, 0.01),
					bracket(10756, 25499, 0.02),
					bracket(25499, 40245, 0.04),
					bracket(40245, 55866, 0.06),
					bracket(55866, 70606, 0.08),
					bracket(70606, 360659, 0.093),
					bracket(360659, 432787, 0.103),
					bracket(432787, 721314, 0.113),
					bracket(721314, 0, 0.123),
				},
				domain.FilingMarriedJoint: {
					bracket(0, 21512, 0.01),
					bracket(21512, 50998, 0.02),
					bracket(50998, 80490, 0.04),
					bracket(80490, 111732, 0.06),
					bracket(111732, 141212, 0.08),
					bracket(141212, 721318, 0.093),
					bracket(721318, 865574, 0.103),
					bracket(865574, 1442628, 0.113),
					bracket(1442628, 0, 0.123),
				},
			}},
		},
		{
			Code: "NY", Name: "New York", Region: domain.RegionContiguous,
			StateTax: domain.StateTaxConfig{Brackets: map[domain.FilingStatus][]domain.TaxBracket{
				domain.FilingSingle: {
					bracket(0, 8500, 0.04),
					bracket(8500, 11700, 0.045),
					bracket(11700, 13900, 0.0525),
					bracket(13900, 80650, 0.055),
					bracket(80650, 215400, 0.06),
					bracket(215400, 1077550, 0.0685),
					bracket(1077550, 5000000, 0.0965),
					bracket(5000000, 25000000, 0.103),
					bracket(25000000, 0, 0.109),
				},
				domain.FilingMarriedJoint: {
					bracket(0, 17150, 0.04),
					bracket(17150, 23600, 0.045),
					bracket(23600, 27900, 0.0525),
					bracket(27900, 161550, 0.055),
					bracket(161550, 323200, 0.06),
					bracket(323200, 2155350, 0.0685),
					bracket(2155350, 5000000, 0.0965),
					bracket(5000000, 25000000, 0.103),
					bracket(25000000, 0, 0.109),
				},
			}},
		},
	}

	out := make(map[string]domain.Jurisdiction, len(list))
	for _, j := range list {
		out[j.Code] = j
	}
	return out
}

// DefaultRules returns the built-in rule set. Each call returns fresh maps.
func DefaultRules() domain.RuleSet {
	return domain.RuleSet{
		Federal: domain.FederalTaxConfig{
			StandardDeduction: map[domain.FilingStatus]decimal.Decimal{
				domain.FilingSingle:          decimal.NewFromInt(15000),
				domain.FilingMarriedJoint:    decimal.NewFromInt(30000),
				domain.FilingHeadOfHousehold: decimal.NewFromInt(22500),
			},
			AdditionalStandardDeduction: decimal.NewFromInt(1600),
			Brackets:                    federalBrackets2025(),
		},
		FICA: domain.FICATaxConfig{
			SocialSecurityWageBase: decimal.NewFromInt(176100),
			SocialSecurityRate:     decimal.NewFromFloat(0.062),
			MedicareRate:           decimal.NewFromFloat(0.0145),
			AdditionalMedicareRate: decimal.NewFromFloat(0.009),
			AdditionalThreshold: map[domain.FilingStatus]decimal.Decimal{
				domain.FilingSingle:          decimal.NewFromInt(200000),
				domain.FilingMarriedJoint:    decimal.NewFromInt(250000),
				domain.FilingHeadOfHousehold: decimal.NewFromInt(200000),
			},
		},
		Medicare: domain.MedicareConfig{
			EligibilityAge: 65,
			BasePremium:    decimal.NewFromFloat(185.00),
			IRMAAThresholds: []domain.MedicareIRMAAThreshold{
				{IncomeThresholdSingle: decimal.NewFromInt(106000), IncomeThresholdJoint: decimal.NewFromInt(212000), MonthlySurcharge: decimal.NewFromFloat(74.00)},
				{IncomeThresholdSingle: decimal.NewFromInt(133000), IncomeThresholdJoint: decimal.NewFromInt(266000), MonthlySurcharge: decimal.NewFromFloat(185.00)},
				{IncomeThresholdSingle: decimal.NewFromInt(167000), IncomeThresholdJoint: decimal.NewFromInt(334000), MonthlySurcharge: decimal.NewFromFloat(295.90)},
				{IncomeThresholdSingle: decimal.NewFromInt(200000), IncomeThresholdJoint: decimal.NewFromInt(400000), MonthlySurcharge: decimal.NewFromFloat(406.90)},
				{IncomeThresholdSingle: decimal.NewFromInt(500000), IncomeThresholdJoint: decimal.NewFromInt(750000), MonthlySurcharge: decimal.NewFromFloat(443.90)},
			},
		},
		LTCGRate:      decimal.NewFromFloat(0.15),
		Jurisdictions: defaultJurisdictions(),
	}
}
