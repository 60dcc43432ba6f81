package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

const snapCeilingIterations = 40

// magiCeiling is the MAGI a benefit-preserving strategy tries to stay under
// for one year. ok is false when the strategy imposes no cap.
type magiCeiling struct {
	limit  decimal.Decimal
	reason string
	ok     bool
}

func (c magiCeiling) tighter(limit decimal.Decimal, reason string) magiCeiling {
	if !c.ok || limit.LessThan(c.limit) {
		return magiCeiling{limit: limit, reason: reason, ok: true}
	}
	return c
}

// headroom is how much more MAGI the year may take before crossing the ceiling.
func (c magiCeiling) headroom(magi decimal.Decimal) decimal.Decimal {
	return nonNegative(c.limit.Sub(magi))
}

// strategyCeiling resolves the MAGI ceiling for a benefit-preserving mode.
// PLATINUM targets the Medicaid limit when the household has a Medicaid
// pathway, otherwise the enhanced-subsidy band; SILVER targets the
// enhanced-subsidy band. Health ceilings only apply to retired years before
// Medicare. A SNAP preservation target adds the highest MAGI that still
// yields that monthly benefit.
func (s *Simulator) strategyCeiling(mode domain.StrategyMode, req BenefitRequest, working bool, snapPreserve decimal.Decimal) magiCeiling {
	var c magiCeiling
	if mode != domain.StrategyPlatinum && mode != domain.StrategySilver {
		return c
	}

	if !working && !s.Benefits.MedicareCalc.IsEligible(req.Age) {
		j, _ := s.Rules.Lookup(req.Jurisdiction)
		fpl := PovertyLineForRegion(req.HouseholdSize, regionOf(j))
		pathway := j.MedicaidExpansion() || req.Profile.Pregnant || req.Profile.Disabled
		switch {
		case fpl.IsZero():
		case mode == domain.StrategyPlatinum && pathway:
			c = c.tighter(fpl.Mul(MedicaidLimitRatio(req.Profile.Pregnant)), "full coverage")
		default:
			c = c.tighter(EnhancedSubsidyCeiling(fpl), "enhanced subsidy")
		}
	}

	if snapPreserve.GreaterThan(decimal.Zero) {
		if limit, ok := s.snapCeiling(req, snapPreserve); ok {
			c = c.tighter(limit, "snap preservation")
		}
	}
	return c
}

// snapCeiling bisects for the highest annual MAGI whose SNAP benefit is at
// least target. Earned income is held at the request's level.
func (s *Simulator) snapCeiling(req BenefitRequest, target decimal.Decimal) (decimal.Decimal, bool) {
	snapAt := func(magi decimal.Decimal) decimal.Decimal {
		r := req
		r.MAGI = magi
		return s.Benefits.Determine(r).SNAPMonthly
	}
	lo := nonNegative(req.MAGI)
	if snapAt(lo).LessThan(target) {
		return decimal.Zero, false
	}
	hi := PovertyLine(req.HouseholdSize, req.Jurisdiction).Mul(decimal.NewFromInt(4)).Add(lo)
	if snapAt(hi).GreaterThanOrEqual(target) {
		return hi, true
	}
	two := decimal.NewFromInt(2)
	for i := 0; i < snapCeilingIterations; i++ {
		mid := lo.Add(hi).Div(two)
		if snapAt(mid).GreaterThanOrEqual(target) {
			lo = mid
		} else {
			hi = mid
		}
		if hi.Sub(lo).LessThan(grossUpTolerance) {
			break
		}
	}
	return lo, true
}
