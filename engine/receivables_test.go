package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kopi/venture-engine/engine"
	"github.com/kopi/venture-engine/scenario"
)

func TestReceivables_CashOnlyCollectsEverythingInMonth(t *testing.T) {
	// Property: under CashOnly, total collected over the window equals
	// total revenue - no fee, no loss, no timing shift.
	res, err := engine.Simulate(
		cashDecision(engine.LocationBeachfront, engine.MarketingAggressive, engine.ReceiveCashOnly,
			[engine.HorizonMonths]int{60, 90, 100}),
		scenario.Classic(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totalRevenue := decimal.Zero
	totalCollected := decimal.Zero
	for i := 0; i < engine.HorizonMonths; i++ {
		if !res.Series[i].ReceivablesCollected.Equal(res.Series[i].Revenue) {
			t.Errorf("month %d collected %s != revenue %s",
				i+1, res.Series[i].ReceivablesCollected, res.Series[i].Revenue)
		}
		totalRevenue = totalRevenue.Add(res.Series[i].Revenue)
		totalCollected = totalCollected.Add(res.Series[i].ReceivablesCollected)
	}
	if !totalCollected.Equal(totalRevenue) {
		t.Errorf("total collected %s != total revenue %s", totalCollected, totalRevenue)
	}
}

func TestReceivables_CardDefersExactShareWithFee(t *testing.T) {
	// Property: exactly cardShare of each month's revenue is deferred by
	// one month and reduced by the card fee; the rest lands same-month.
	p := scenario.Classic()
	res, err := engine.Simulate(
		cashDecision(engine.LocationHillside, engine.MarketingConservative, engine.ReceiveCard,
			[engine.HorizonMonths]int{100, 100, 100}),
		p,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	one := decimal.NewFromInt(1)
	for i := 0; i < engine.HorizonMonths; i++ {
		rev := res.Series[i].Revenue
		sameMonth := rev.Mul(one.Sub(p.CardShare))
		expected := sameMonth
		if i > 0 {
			prior := res.Series[i-1].Revenue
			expected = expected.Add(prior.Mul(p.CardShare).Mul(one.Sub(p.CardFeeRate)))
		}
		if !res.Series[i].ReceivablesCollected.Equal(expected) {
			t.Errorf("month %d collected %s, want %s",
				i+1, res.Series[i].ReceivablesCollected, expected)
		}
	}
}

func TestReceivables_BilledTruncatesBeyondHorizon(t *testing.T) {
	// The billed share splits into thirds landing 1, 2 and 3 months after
	// the sale. Everything scheduled past month 3 must be explicitly
	// dropped: month-1 sales collect two of three installments in-window,
	// month-2 sales one, month-3 sales none.
	p := scenario.Classic()
	res, err := engine.Simulate(
		cashDecision(engine.LocationHillside, engine.MarketingConservative, engine.ReceiveBilled,
			[engine.HorizonMonths]int{100, 100, 100}),
		p,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	one := decimal.NewFromInt(1)
	installment := func(i int) decimal.Decimal {
		return res.Series[i].Revenue.Mul(p.BilledShare).Div(decimal.NewFromInt(3)).Mul(one.Sub(p.DefaultRate))
	}

	totalCollected := decimal.Zero
	for i := 0; i < engine.HorizonMonths; i++ {
		totalCollected = totalCollected.Add(res.Series[i].ReceivablesCollected)
	}

	// Expected in-window total: all same-month shares, card shares of
	// months 1-2, and exactly three billed installments (m1 x2, m2 x1).
	expected := decimal.Zero
	for i := 0; i < engine.HorizonMonths; i++ {
		expected = expected.Add(res.Series[i].Revenue.Mul(one.Sub(p.CardShare).Sub(p.BilledShare)))
	}
	for i := 0; i < 2; i++ {
		expected = expected.Add(res.Series[i].Revenue.Mul(p.CardShare).Mul(one.Sub(p.CardFeeRate)))
	}
	expected = expected.Add(installment(0)).Add(installment(0)).Add(installment(1))

	diff := totalCollected.Sub(expected).Abs()
	if diff.GreaterThan(dec("0.01")) {
		t.Errorf("in-window collections %s, want %s", totalCollected, expected)
	}

	// And the truncated remainder is strictly positive: the window never
	// collects everything under the billed policy.
	totalRevenue := decimal.Zero
	for i := 0; i < engine.HorizonMonths; i++ {
		totalRevenue = totalRevenue.Add(res.Series[i].Revenue)
	}
	if !totalCollected.LessThan(totalRevenue) {
		t.Errorf("billed policy should leave money uncollected in-window: %s >= %s",
			totalCollected, totalRevenue)
	}
}
