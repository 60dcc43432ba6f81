package calculation

import (
	"testing"

	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_RothSplitAndDeposit(t *testing.T) {
	l := newLedger(domain.Assets{Accounts: []domain.InvestmentAccount{
		{Name: "roth", Type: domain.AccountRoth, Value: dec(100), CostBasis: dec(150)},
	}})
	assertDecimal(t, dec(100), l.rothBasis, 0.001, "basis is capped at value")
	assert.True(t, l.rothEarnings.IsZero())

	l.applyGrowth(domain.GrowthRates{Roth: dec(0.5)})
	assertDecimal(t, dec(100), l.rothBasis, 0.001)
	assertDecimal(t, dec(50), l.rothEarnings, 0.001, "growth accrues to earnings")

	l.deposit(domain.AccountRoth, dec(10))
	assertDecimal(t, dec(110), l.rothBasis, 0.001)
}

func TestLedger_ProportionalSale(t *testing.T) {
	l := newLedger(domain.Assets{Accounts: []domain.InvestmentAccount{
		{Name: "brokerage", Type: domain.AccountTaxable, Value: dec(1000), CostBasis: dec(400)},
	}})
	srcs := l.sources(domain.BucketTaxable, dec(0), 50)
	require.Len(t, srcs, 1)
	src := srcs[0]
	assertDecimal(t, dec(0.6), src.magiRate, 0.0001)

	var st YearTaxState
	src.apply(&st, dec(500))
	src.take(dec(500))
	assertDecimal(t, dec(300), st.LongTermGains, 0.001)
	assertDecimal(t, dec(500), l.taxable, 0.001)
	assertDecimal(t, dec(200), l.taxableBasis, 0.001)
}

func TestLedger_ZeroBasisIsAllGain(t *testing.T) {
	assertDecimal(t, dec(1), gainFraction(dec(1000), dec(0)), 0.0001)
	assertDecimal(t, dec(0), gainFraction(dec(1000), dec(2000)), 0.0001)
	assertDecimal(t, dec(0), gainFraction(dec(0), dec(0)), 0.0001)
}

func TestLedger_EquitySources(t *testing.T) {
	l := newLedger(domain.Assets{Equity: []domain.EquityGrant{
		{Name: "iso", Shares: dec(100), Strike: dec(10), FairValue: dec(30), LongTerm: true},
		{Name: "nso", Shares: dec(50), Strike: dec(40), FairValue: dec(30)},
		{Name: "rsu", Shares: dec(10), FairValue: dec(100)},
	}})
	assertDecimal(t, dec(3000), l.equityValue(), 0.001, "underwater grants are worth nothing")

	srcs := l.sources(domain.BucketEquity, dec(0), 50)
	require.Len(t, srcs, 3)

	var st YearTaxState
	srcs[0].apply(&st, dec(1000))
	srcs[0].take(dec(1000))
	srcs[2].apply(&st, dec(500))
	srcs[2].take(dec(500))
	assertDecimal(t, dec(1000), st.LongTermGains, 0.001)
	assertDecimal(t, dec(500), st.ShortTermGains, 0.001)
	assertDecimal(t, dec(1500), l.equityValue(), 0.001)
}

func TestLedger_PenaltyByAge(t *testing.T) {
	l := newLedger(domain.Assets{Accounts: []domain.InvestmentAccount{
		{Name: "roth", Type: domain.AccountRoth, Value: dec(1000), CostBasis: dec(400)},
	}})

	var early YearTaxState
	l.sources(domain.BucketRothEarnings, dec(0), PenaltyFreeAge-1)[0].apply(&early, dec(100))
	assertDecimal(t, dec(100), early.PenaltyBase, 0.001)
	assertDecimal(t, dec(100), early.OrdinaryOther, 0.001)

	var late YearTaxState
	l.sources(domain.BucketRothEarnings, dec(0), PenaltyFreeAge)[0].apply(&late, dec(100))
	assert.True(t, late.PenaltyBase.IsZero())
	assert.True(t, late.MAGI().IsZero())
}
