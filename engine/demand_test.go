package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kopi/venture-engine/engine"
	"github.com/kopi/venture-engine/scenario"
)

func demandOf(t *testing.T, loc engine.Location, mkt engine.MarketingPlan, pol engine.ReceivablesPolicy) []int {
	t.Helper()
	res, err := engine.Simulate(
		cashDecision(loc, mkt, pol, [engine.HorizonMonths]int{1000, 1000, 1000}),
		scenario.Classic(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := make([]int, engine.HorizonMonths)
	for i := range res.Series {
		out[i] = res.Series[i].Demand
	}
	return out
}

func TestDemand_BaseTablePerLocation(t *testing.T) {
	// Cash-only, conservative: month 1 is the raw base share of the
	// 100-unit market, months 2-3 lifted by 1.1.
	cases := []struct {
		loc  engine.Location
		want []int
	}{
		{engine.LocationHillside, []int{20, 44, 66}},
		{engine.LocationBeachfront, []int{60, 77, 88}},
	}
	for _, c := range cases {
		got := demandOf(t, c.loc, engine.MarketingConservative, engine.ReceiveCashOnly)
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Errorf("%s demand = %v, want %v", c.loc, got, c.want)
				break
			}
		}
	}
}

func TestDemand_MarketingLiftSkipsMonthOne(t *testing.T) {
	conservative := demandOf(t, engine.LocationHillside, engine.MarketingConservative, engine.ReceiveCashOnly)
	aggressive := demandOf(t, engine.LocationHillside, engine.MarketingAggressive, engine.ReceiveCashOnly)

	if aggressive[0] != conservative[0] {
		t.Errorf("month 1 must be unaffected by marketing: %d vs %d", aggressive[0], conservative[0])
	}
	for i := 1; i < engine.HorizonMonths; i++ {
		if aggressive[i] <= conservative[i] {
			t.Errorf("month %d aggressive demand %d should exceed conservative %d",
				i+1, aggressive[i], conservative[i])
		}
	}
	// 1.2 lift on the hillside curve: 40*1.2=48, 60*1.2=72.
	if aggressive[1] != 48 || aggressive[2] != 72 {
		t.Errorf("aggressive hillside demand = %v, want [20 48 72]", aggressive)
	}
}

func TestDemand_ReceivablesLiftAppliesToAllMonths(t *testing.T) {
	billed := demandOf(t, engine.LocationHillside, engine.MarketingConservative, engine.ReceiveBilled)
	// 20*1.15=23, 44*1.15=50.6->51, 66*1.15=75.9->76.
	want := []int{23, 51, 76}
	for i := range want {
		if billed[i] != want[i] {
			t.Errorf("billed demand = %v, want %v", billed, want)
			break
		}
	}
}

func TestDemand_RoundsHalfAwayFromZero(t *testing.T) {
	// 0.25 share x 100 x 0.9 lift = 22.5, which must round to 23 under
	// the engine's fixed half-away-from-zero rule (not 22 as banker's
	// rounding would give).
	p := scenario.Classic()
	shares := p.BaseShares[engine.LocationHillside]
	shares[0] = decimal.RequireFromString("0.25")
	p.BaseShares[engine.LocationHillside] = shares
	p.DemandLift[engine.ReceiveCashOnly] = decimal.RequireFromString("0.9")

	res, err := engine.Simulate(
		cashDecision(engine.LocationHillside, engine.MarketingConservative, engine.ReceiveCashOnly,
			[engine.HorizonMonths]int{100, 100, 100}),
		p,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Series[0].Demand; got != 23 {
		t.Errorf("demand at .5 boundary = %d, want 23", got)
	}
}
