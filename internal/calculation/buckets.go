package calculation

import (
	"github.com/fireplan/fire-calculator/internal/domain"
	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

type equityLot struct {
	name      string
	shares    decimal.Decimal
	strike    decimal.Decimal
	fairValue decimal.Decimal
	growth    decimal.Decimal
	longTerm  bool
}

func (l *equityLot) spread() decimal.Decimal {
	return nonNegative(l.fairValue.Sub(l.strike))
}

func (l *equityLot) value() decimal.Decimal {
	return l.shares.Mul(l.spread())
}

type helocLine struct {
	name    string
	balance decimal.Decimal
	limit   decimal.Decimal
	rate    decimal.Decimal
}

func (h *helocLine) available() decimal.Decimal {
	return nonNegative(h.limit.Sub(h.balance))
}

// ledger is the simulator's private copy of every balance.
type ledger struct {
	cash, taxable, pretax, hsa, crypto, metals decimal.Decimal
	rothBasis, rothEarnings                    decimal.Decimal
	taxableBasis, cryptoBasis, metalsBasis     decimal.Decimal

	equity     []*equityLot
	helocs     []*helocLine
	realEstate []domain.RealEstate
	other      []domain.OtherAsset
	debts      decimal.Decimal
}

func newLedger(assets domain.Assets) *ledger {
	l := &ledger{}
	var rothValue, rothBasis decimal.Decimal
	for _, a := range assets.Accounts {
		v := nonNegative(a.Value)
		b := nonNegative(a.CostBasis)
		switch a.Type {
		case domain.AccountCash:
			l.cash = l.cash.Add(v)
		case domain.AccountTaxable:
			l.taxable = l.taxable.Add(v)
			l.taxableBasis = l.taxableBasis.Add(b)
		case domain.AccountPreTax:
			l.pretax = l.pretax.Add(v)
		case domain.AccountRoth:
			rothValue = rothValue.Add(v)
			rothBasis = rothBasis.Add(b)
		case domain.AccountCrypto:
			l.crypto = l.crypto.Add(v)
			l.cryptoBasis = l.cryptoBasis.Add(b)
		case domain.AccountMetals:
			l.metals = l.metals.Add(v)
			l.metalsBasis = l.metalsBasis.Add(b)
		case domain.AccountHSA:
			l.hsa = l.hsa.Add(v)
		}
	}
	l.setRoth(rothValue, rothBasis)

	for _, g := range assets.Equity {
		l.equity = append(l.equity, &equityLot{
			name: g.Name, shares: nonNegative(g.Shares), strike: g.Strike,
			fairValue: g.FairValue, growth: g.GrowthRate, longTerm: g.LongTerm,
		})
	}
	for _, h := range assets.HELOCs {
		l.helocs = append(l.helocs, &helocLine{name: h.Name, balance: nonNegative(h.Balance), limit: h.Limit, rate: h.InterestRate})
	}
	l.realEstate = append(l.realEstate, assets.RealEstate...)
	l.other = append(l.other, assets.Other...)
	for _, d := range assets.Debts {
		l.debts = l.debts.Add(d.Balance)
	}
	return l
}

// setRoth splits a Roth total into basis (never above the value) and earnings.
func (l *ledger) setRoth(value, basis decimal.Decimal) {
	l.rothBasis = decimal.Min(basis, value)
	l.rothEarnings = value.Sub(l.rothBasis)
}

func (l *ledger) equityValue() decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.equity {
		total = total.Add(lot.value())
	}
	return total
}

func (l *ledger) helocAvailable() decimal.Decimal {
	total := decimal.Zero
	for _, h := range l.helocs {
		total = total.Add(h.available())
	}
	return total
}

func (l *ledger) helocBalance() decimal.Decimal {
	total := decimal.Zero
	for _, h := range l.helocs {
		total = total.Add(h.balance)
	}
	return total
}

// balance returns a bucket's drawable amount. For the HELOC bucket that is
// undrawn credit.
func (l *ledger) balance(key domain.BucketKey) decimal.Decimal {
	switch key {
	case domain.BucketCash:
		return l.cash
	case domain.BucketTaxable:
		return l.taxable
	case domain.BucketPreTax:
		return l.pretax
	case domain.BucketRothBasis:
		return l.rothBasis
	case domain.BucketRothEarnings:
		return l.rothEarnings
	case domain.BucketCrypto:
		return l.crypto
	case domain.BucketMetals:
		return l.metals
	case domain.BucketHSA:
		return l.hsa
	case domain.BucketHELOC:
		return l.helocAvailable()
	case domain.BucketEquity:
		return l.equityValue()
	}
	return decimal.Zero
}

// liquid is every drawable asset balance, excluding credit.
func (l *ledger) liquid() decimal.Decimal {
	total := decimal.Zero
	for _, k := range domain.AllBuckets {
		if k != domain.BucketHELOC {
			total = total.Add(l.balance(k))
		}
	}
	return total
}

func (l *ledger) netWorth() decimal.Decimal {
	nw := l.liquid()
	for _, re := range l.realEstate {
		nw = nw.Add(re.Value).Sub(re.Mortgage)
	}
	for _, o := range l.other {
		nw = nw.Add(o.Value).Sub(o.Loan)
	}
	return nw.Sub(l.debts).Sub(l.helocBalance())
}

func (l *ledger) snapshot() map[domain.BucketKey]decimal.Decimal {
	out := make(map[domain.BucketKey]decimal.Decimal, len(domain.AllBuckets))
	for _, k := range domain.AllBuckets {
		out[k] = l.balance(k).Round(2)
	}
	return out
}

// deposit adds savings to the bucket backing an account type. Contributions
// to basis-tracked buckets add to basis.
func (l *ledger) deposit(target domain.AccountType, amount decimal.Decimal) {
	switch target {
	case domain.AccountTaxable:
		l.taxable = l.taxable.Add(amount)
		l.taxableBasis = l.taxableBasis.Add(amount)
	case domain.AccountPreTax:
		l.pretax = l.pretax.Add(amount)
	case domain.AccountRoth:
		l.rothBasis = l.rothBasis.Add(amount)
	case domain.AccountCrypto:
		l.crypto = l.crypto.Add(amount)
		l.cryptoBasis = l.cryptoBasis.Add(amount)
	case domain.AccountMetals:
		l.metals = l.metals.Add(amount)
		l.metalsBasis = l.metalsBasis.Add(amount)
	case domain.AccountHSA:
		l.hsa = l.hsa.Add(amount)
	default:
		l.cash = l.cash.Add(amount)
	}
}

func grow(d, rate decimal.Decimal) decimal.Decimal {
	return money.NewMoneyFromDecimal(d).Grow(rate).Decimal
}

// accrueHELOCInterest returns a year of interest on each line's opening
// balance. It is capitalised after the year's draws.
func (l *ledger) accrueHELOCInterest() []decimal.Decimal {
	out := make([]decimal.Decimal, len(l.helocs))
	for i, h := range l.helocs {
		out[i] = h.balance.Mul(h.rate)
	}
	return out
}

func (l *ledger) capitaliseHELOCInterest(interest []decimal.Decimal) {
	for i, h := range l.helocs {
		if i < len(interest) {
			h.balance = h.balance.Add(interest[i])
		}
	}
}

// applyGrowth grows every asset one year. Balances floor at zero; Roth growth
// accrues to earnings.
func (l *ledger) applyGrowth(g domain.GrowthRates) {
	l.cash = grow(l.cash, g.Cash)
	l.taxable = grow(l.taxable, g.Taxable)
	l.pretax = grow(l.pretax, g.PreTax)
	l.crypto = grow(l.crypto, g.Crypto)
	l.metals = grow(l.metals, g.Metals)
	l.hsa = grow(l.hsa, g.HSA)
	l.setRoth(grow(l.rothBasis.Add(l.rothEarnings), g.Roth), l.rothBasis)

	for _, lot := range l.equity {
		lot.fairValue = grow(lot.fairValue, lot.growth)
	}
	for i := range l.realEstate {
		l.realEstate[i].Value = grow(l.realEstate[i].Value, g.RealEstate)
	}
	for i := range l.other {
		l.other[i].Value = grow(l.other[i].Value, g.Other)
	}
}

// source is one drawable unit of a bucket: the whole bucket, or a single
// equity grant or HELOC line.
type source struct {
	key       domain.BucketKey
	label     string
	available decimal.Decimal
	// magiRate is the MAGI increase per gross dollar drawn.
	magiRate decimal.Decimal
	apply    func(st *YearTaxState, gross decimal.Decimal)
	take     func(gross decimal.Decimal)
}

func gainFraction(value, basis decimal.Decimal) decimal.Decimal {
	if value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	f := value.Sub(basis).Div(value)
	if f.IsNegative() {
		return decimal.Zero
	}
	return f
}

// proportional returns a source that sells part of a basis-tracked holding;
// the gain share of each dollar is long-term gain.
func proportional(key domain.BucketKey, value, basis *decimal.Decimal) source {
	frac := gainFraction(*value, *basis)
	return source{
		key:       key,
		label:     string(key),
		available: *value,
		magiRate:  frac,
		apply: func(st *YearTaxState, gross decimal.Decimal) {
			st.LongTermGains = st.LongTermGains.Add(gross.Mul(frac))
		},
		take: func(gross decimal.Decimal) {
			if value.IsZero() {
				return
			}
			*basis = basis.Sub(basis.Mul(gross.Div(*value)))
			*value = nonNegative(value.Sub(gross))
			if value.IsZero() {
				*basis = decimal.Zero
			}
		},
	}
}

func untaxed(key domain.BucketKey, available decimal.Decimal, bal *decimal.Decimal) source {
	return source{
		key:       key,
		label:     string(key),
		available: nonNegative(available),
		magiRate:  decimal.Zero,
		apply:     func(*YearTaxState, decimal.Decimal) {},
		take:      func(gross decimal.Decimal) { *bal = nonNegative(bal.Sub(gross)) },
	}
}

func ordinary(key domain.BucketKey, bal *decimal.Decimal, penalised bool) source {
	one := decimal.NewFromInt(1)
	return source{
		key:       key,
		label:     string(key),
		available: *bal,
		magiRate:  one,
		apply: func(st *YearTaxState, gross decimal.Decimal) {
			st.OrdinaryOther = st.OrdinaryOther.Add(gross)
			if penalised {
				st.PenaltyBase = st.PenaltyBase.Add(gross)
			}
		},
		take: func(gross decimal.Decimal) { *bal = nonNegative(bal.Sub(gross)) },
	}
}

// sources expands a bucket into drawable units for a household of age.
func (l *ledger) sources(key domain.BucketKey, cashReserve decimal.Decimal, age int) []source {
	early := age < PenaltyFreeAge
	switch key {
	case domain.BucketCash:
		return []source{untaxed(key, l.cash.Sub(cashReserve), &l.cash)}
	case domain.BucketRothBasis:
		return []source{untaxed(key, l.rothBasis, &l.rothBasis)}
	case domain.BucketHSA:
		return []source{untaxed(key, l.hsa, &l.hsa)}
	case domain.BucketRothEarnings:
		if early {
			return []source{ordinary(key, &l.rothEarnings, true)}
		}
		return []source{untaxed(key, l.rothEarnings, &l.rothEarnings)}
	case domain.BucketPreTax:
		return []source{ordinary(key, &l.pretax, early)}
	case domain.BucketTaxable:
		return []source{proportional(key, &l.taxable, &l.taxableBasis)}
	case domain.BucketCrypto:
		return []source{proportional(key, &l.crypto, &l.cryptoBasis)}
	case domain.BucketMetals:
		return []source{proportional(key, &l.metals, &l.metalsBasis)}
	case domain.BucketEquity:
		out := make([]source, 0, len(l.equity))
		for _, lot := range l.equity {
			out = append(out, equitySource(lot))
		}
		return out
	case domain.BucketHELOC:
		out := make([]source, 0, len(l.helocs))
		for _, h := range l.helocs {
			h := h
			out = append(out, source{
				key:       key,
				label:     "heloc " + h.name,
				available: h.available(),
				magiRate:  decimal.Zero,
				apply:     func(*YearTaxState, decimal.Decimal) {},
				take:      func(gross decimal.Decimal) { h.balance = h.balance.Add(gross) },
			})
		}
		return out
	}
	return nil
}

// equitySource sells shares of one grant. The whole spread is gain: long-term
// when the grant is flagged so, otherwise ordinary.
func equitySource(lot *equityLot) source {
	return source{
		key:       domain.BucketEquity,
		label:     "equity " + lot.name,
		available: lot.value(),
		magiRate:  decimal.NewFromInt(1),
		apply: func(st *YearTaxState, gross decimal.Decimal) {
			if lot.longTerm {
				st.LongTermGains = st.LongTermGains.Add(gross)
			} else {
				st.ShortTermGains = st.ShortTermGains.Add(gross)
			}
		},
		take: func(gross decimal.Decimal) {
			spread := lot.spread()
			if spread.IsZero() {
				return
			}
			lot.shares = nonNegative(lot.shares.Sub(gross.Div(spread)))
		},
	}
}
