package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// 2024 HHS poverty guidelines, annual.
var povertyGuidelines = map[domain.PovertyRegion]struct{ base, perPerson int64 }{
	domain.RegionContiguous: {15060, 5380},
	domain.RegionAlaska:     {18810, 6730},
	domain.RegionHawaii:     {17310, 6190},
}

// RegionFor maps a jurisdiction code to its poverty guideline table.
func RegionFor(jurisdiction string) domain.PovertyRegion {
	switch domain.NormalizeJurisdiction(jurisdiction) {
	case "AK":
		return domain.RegionAlaska
	case "HI":
		return domain.RegionHawaii
	}
	return domain.RegionContiguous
}

// PovertyLine returns the annual federal poverty guideline for a household of
// size in jurisdiction. Sizes below one return zero.
func PovertyLine(size int, jurisdiction string) decimal.Decimal {
	return PovertyLineForRegion(size, RegionFor(jurisdiction))
}

// PovertyLineForRegion is PovertyLine for an explicit guideline table.
func PovertyLineForRegion(size int, region domain.PovertyRegion) decimal.Decimal {
	if size <= 0 {
		return decimal.Zero
	}
	g, ok := povertyGuidelines[region]
	if !ok {
		g = povertyGuidelines[domain.RegionContiguous]
	}
	return decimal.NewFromInt(g.base + int64(size-1)*g.perPerson)
}
