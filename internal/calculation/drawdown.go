package calculation

import (
	"fmt"

	"github.com/fireplan/fire-calculator/internal/domain"
	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// maxBenefitPasses bounds how often a year's benefits are re-evaluated after
// draws raise MAGI. Past it the residual is drawn at the last evaluation.
const maxBenefitPasses = 25

// insolvencyTolerance is the residual gap treated as fully funded.
var insolvencyTolerance = decimal.NewFromFloat(0.01)

// Simulator runs the year-by-year drawdown.
type Simulator struct {
	Rules    domain.RuleSet
	Benefits *BenefitEligibilityEngine
	Logger   Logger
}

// NewSimulator creates a simulator over rules. A nil logger discards output.
func NewSimulator(rules domain.RuleSet, logger Logger) *Simulator {
	return &Simulator{
		Rules:    rules,
		Benefits: NewBenefitEligibilityEngine(rules),
		Logger:   withPrefix(logger, "drawdown"),
	}
}

// run holds the private state of one simulation.
type run struct {
	profile *domain.HouseholdProfile
	cfg     domain.DrawdownConfig
	mode    domain.StrategyMode
	status  domain.FilingStatus
	tax     *TaxCalculator
	income  *IncomeProjector
	budget  *BudgetProjector
	ledger  *ledger
	reserve decimal.Decimal
}

// simYear holds the mutable state of one simulated year.
type simYear struct {
	*run
	age   int
	state YearTaxState
	draws map[domain.BucketKey]decimal.Decimal
	trace []string
}

func (y *simYear) tracef(format string, args ...any) {
	y.trace = append(y.trace, fmt.Sprintf(format, args...))
}

// Simulate projects the household from its current age through the horizon
// age. Inputs are validated and never modified; identical inputs produce
// identical rows.
func (s *Simulator) Simulate(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig) (*domain.RunResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if err := ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if err := ValidateConfig(cfg, profile.Assumptions.CurrentAge); err != nil {
		return nil, fmt.Errorf("invalid drawdown config: %w", err)
	}

	p := profile.Clone()
	cfg = cfg.Clone()
	a := p.Assumptions

	j, known := s.Rules.Lookup(a.Jurisdiction)
	if !known {
		s.Logger.Warnf("unknown jurisdiction %q: assuming Medicaid expansion and no state income tax", a.Jurisdiction)
	}
	if len(cfg.Priority) == 0 {
		s.Logger.Warnf("empty bucket priority: any funding gap is insolvent")
	}

	r := &run{
		profile: p,
		cfg:     cfg,
		mode:    cfg.Mode(),
		status:  a.FilingStatus.OrDefault(),
		tax:     NewTaxCalculator(s.Rules, j, a.FilingStatus.OrDefault(), a.LTCGRate),
		income:  NewIncomeProjector(p),
		budget:  NewBudgetProjector(p, cfg),
		ledger:  newLedger(p.Assets),
		reserve: nonNegative(cfg.CashReserve),
	}

	first := startYear(a.StartYear)
	horizon := cfg.Horizon()
	result := &domain.RunResult{Strategy: r.mode, Rows: make([]domain.YearRow, 0, horizon-a.CurrentAge+1)}
	past := false

	for age := a.CurrentAge; age <= horizon; age++ {
		elapsed := age - a.CurrentAge
		row := s.simulateYear(r, elapsed, age, first+elapsed)
		if row.Insolvent {
			if !past {
				firstAge := age
				result.FirstInsolvencyAge = &firstAge
				s.Logger.Infof("first insolvency at age %d (%d), unfunded %s", age, row.Year, money.FormatCurrency(row.Unfunded))
			}
			past = true
		}
		row.PastInsolvency = past
		s.Logger.Debugf("age %d: budget %s drawn %s net worth %s status %s",
			age, row.Budget.StringFixed(2), row.TotalDrawn().StringFixed(2), row.NetWorth.StringFixed(2), row.Status)
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func (s *Simulator) simulateYear(r *run, elapsed, age, calendarYear int) domain.YearRow {
	p := r.profile
	working := !p.IsRetired(age)
	inc := r.income.Project(elapsed, age, calendarYear)
	bud := r.budget.Project(elapsed, age)

	y := &simYear{run: r, age: age, draws: make(map[domain.BucketKey]decimal.Decimal, len(domain.AllBuckets))}
	seniors := 0
	if age >= 65 {
		seniors = p.AdultCount()
	}
	y.state = YearTaxState{
		Wages:          inc.Wages,
		OrdinaryOther:  inc.OtherTaxable,
		SocialSecurity: inc.SocialSecurity,
		NonTaxable:     inc.NonTaxable,
		Seniors:        seniors,
	}
	baseTax := r.tax.Calculate(y.state).Total
	netIncome := inc.Cash().Sub(baseTax)
	interest := r.ledger.accrueHELOCInterest()

	size := p.HouseholdSize(calendarYear)
	req := BenefitRequest{
		Year:          calendarYear,
		Age:           age,
		HouseholdSize: size,
		Adults:        p.AdultCount(),
		FilingStatus:  r.status,
		Jurisdiction:  p.Assumptions.Jurisdiction,
		EarnedIncome:  inc.Wages,
		Profile:       p.Benefits,
	}
	var ceiling magiCeiling
	if r.mode.CountsBenefits() {
		req.MAGI = y.state.MAGI()
		ceiling = s.strategyCeiling(r.mode, req, working, r.cfg.SnapPreserve)
	}

	y.tracef("age %d (%d): budget %s, net income %s", age, calendarYear,
		money.FormatCurrency(bud.Spending), money.FormatCurrency(netIncome))
	if ceiling.ok {
		y.tracef("%s: MAGI ceiling %s (%s)", r.mode, money.FormatCurrency(ceiling.limit), ceiling.reason)
	}

	var (
		det       domain.BenefitDetermination
		premium   decimal.Decimal
		snap      decimal.Decimal
		gap       decimal.Decimal
		remaining decimal.Decimal
		drawnNet  = decimal.Zero
		exhausted bool
	)
	for pass := 0; ; pass++ {
		req.MAGI = y.state.MAGI()
		det = s.Benefits.Determine(req)
		premium, snap = r.charges(det, working)
		gap = bud.Spending.Add(premium).Sub(netIncome).Sub(snap)
		remaining = gap.Sub(drawnNet)
		if remaining.LessThanOrEqual(insolvencyTolerance) || exhausted {
			break
		}
		if pass == maxBenefitPasses {
			got := y.liquidate(remaining, magiCeiling{})
			drawnNet = drawnNet.Add(got)
			remaining = remaining.Sub(got)
			exhausted = remaining.GreaterThan(insolvencyTolerance)
			y.tracef("benefits held after %d passes; drew %s uncapped", pass, money.FormatCurrency(got))
			break
		}
		if pass == 0 {
			y.tracef("gap %s (premium %s, snap %s)", money.FormatCurrency(gap), money.FormatCurrency(premium), money.FormatCurrency(snap))
		} else {
			y.tracef("benefits re-evaluated at MAGI %s: premium %s, snap %s", money.FormatCurrency(req.MAGI),
				money.FormatCurrency(premium), money.FormatCurrency(snap))
		}
		got := y.liquidate(remaining, ceiling)
		drawnNet = drawnNet.Add(got)
		// Only a short draw from the priority buckets can leave the year unfunded.
		exhausted = remaining.Sub(got).GreaterThan(insolvencyTolerance)
	}

	unfunded := decimal.Zero
	if exhausted && remaining.GreaterThan(insolvencyTolerance) {
		unfunded = remaining
	}
	insolvent := unfunded.GreaterThan(decimal.Zero)

	saved := decimal.Zero
	if remaining.IsNegative() {
		saved = y.fundSurplus(remaining.Neg(), bud.Savings)
	}
	if contrib := inc.Contributions(); contrib.GreaterThan(decimal.Zero) {
		r.ledger.deposit(domain.AccountPreTax, contrib)
		y.tracef("plan contributions %s to pretax", money.FormatCurrency(contrib))
	}

	r.ledger.applyGrowth(p.Assumptions.Growth)
	r.ledger.capitaliseHELOCInterest(interest)
	helocInterest := decimal.Zero
	for _, i := range interest {
		helocInterest = helocInterest.Add(i)
	}
	if helocInterest.GreaterThan(decimal.Zero) {
		y.tracef("heloc interest %s capitalised", money.FormatCurrency(helocInterest))
	}

	tier := det.Health.Tier
	status := string(tier)
	switch {
	case working:
		tier = domain.TierEmployer
		status = domain.StatusWorking
	case !r.mode.CountsBenefits():
		status = domain.StatusSolvent
	}
	if insolvent {
		status = domain.StatusInsolvent
		y.tracef("INSOLVENT: %s unfunded after exhausting priority", money.FormatCurrency(unfunded))
	}

	draws := make(map[domain.BucketKey]decimal.Decimal, len(domain.AllBuckets))
	for _, k := range domain.AllBuckets {
		draws[k] = y.draws[k].Round(2)
	}

	return domain.YearRow{
		Age:           age,
		Year:          calendarYear,
		Budget:        bud.Spending.Round(2),
		HealthPremium: premium.Round(2),
		GrossIncome:   inc.Gross.Round(2),
		NetIncome:     netIncome.Round(2),
		MAGI:          y.state.MAGI().Round(2),
		SnapBenefit:   snap.Round(2),
		Taxes:         r.tax.Calculate(y.state).Total.Round(2),
		Contributions: inc.Contributions().Add(saved).Round(2),
		Draws:         draws,
		Balances:      r.ledger.snapshot(),
		NetWorth:      r.ledger.netWorth().Round(2),
		Gap:           gap.Round(2),
		Unfunded:      unfunded.Round(2),
		HelocInterest: helocInterest.Round(2),
		HouseholdSize: size,
		Tier:          tier,
		Status:        status,
		Insolvent:     insolvent,
		Trace:         y.trace,
	}
}

// charges returns the annual health premium and SNAP that enter the gap.
// RAW ignores both; employer coverage costs nothing while working.
func (r *run) charges(det domain.BenefitDetermination, working bool) (premium, snap decimal.Decimal) {
	if !r.mode.CountsBenefits() {
		return decimal.Zero, decimal.Zero
	}
	if !working {
		premium = det.Health.AnnualPremium()
	}
	return premium, det.SNAPAnnual()
}

// liquidate covers need from the priority buckets and returns the net amount
// raised. With a MAGI ceiling, MAGI-raising sources are first limited to the
// headroom; what is still short is then drawn without the cap.
func (y *simYear) liquidate(need decimal.Decimal, ceiling magiCeiling) decimal.Decimal {
	if !ceiling.ok {
		return y.drawInOrder(need, nil)
	}
	got := y.drawInOrder(need, &ceiling)
	if need.Sub(got).LessThanOrEqual(insolvencyTolerance) {
		return got
	}
	y.tracef("MAGI ceiling reached with %s still needed: drawing without cap", money.FormatCurrency(need.Sub(got)))
	return got.Add(y.drawInOrder(need.Sub(got), nil))
}

func (y *simYear) drawInOrder(need decimal.Decimal, ceiling *magiCeiling) decimal.Decimal {
	got := decimal.Zero
	for _, key := range y.cfg.Priority {
		for _, src := range y.ledger.sources(key, y.reserve, y.age) {
			if need.Sub(got).LessThanOrEqual(insolvencyTolerance) {
				return got
			}
			got = got.Add(y.draw(src, need.Sub(got), ceiling))
		}
	}
	return got
}

// draw grosses up one source for its own tax and returns the net raised.
func (y *simYear) draw(src source, need decimal.Decimal, ceiling *magiCeiling) decimal.Decimal {
	available := src.available
	if ceiling != nil && src.magiRate.GreaterThan(decimal.Zero) {
		room := ceiling.headroom(y.state.MAGI()).Div(src.magiRate)
		available = decimal.Min(available, room)
	}
	if available.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	base := y.state
	taxOn := func(gross decimal.Decimal) decimal.Decimal {
		with := base
		src.apply(&with, gross)
		return y.tax.IncrementalTax(base, with)
	}
	gross, tax := GrossUp(need, available, taxOn)
	if gross.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	src.apply(&y.state, gross)
	src.take(gross)
	y.draws[src.key] = y.draws[src.key].Add(gross)
	if tax.IsZero() {
		y.tracef("drew %s from %s", money.FormatCurrency(gross), src.label)
	} else {
		y.tracef("drew %s from %s (tax %s)", money.FormatCurrency(gross), src.label, money.FormatCurrency(tax))
	}
	return gross.Sub(tax)
}

// fundSurplus saves a surplus into savings line items in order, then cash.
// It returns the amount placed in savings items.
func (y *simYear) fundSurplus(surplus decimal.Decimal, items []SavingsAllocation) decimal.Decimal {
	saved := decimal.Zero
	left := surplus
	for _, item := range items {
		if left.LessThanOrEqual(decimal.Zero) {
			break
		}
		amount := decimal.Min(item.Amount, left)
		if amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		y.ledger.deposit(item.Target, amount)
		saved = saved.Add(amount)
		left = left.Sub(amount)
		y.tracef("saved %s to %s (%s)", money.FormatCurrency(amount), item.Target, item.Name)
	}
	if left.GreaterThan(decimal.Zero) {
		y.ledger.deposit(domain.AccountCash, left)
		y.tracef("surplus %s to cash", money.FormatCurrency(left))
	}
	return saved
}
