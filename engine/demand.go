package engine

import "github.com/shopspring/decimal"

// demandSeries converts the three categorical choices into expected sales
// units per month:
//
//	units[i] = round(baseShare[loc][i] * marketSize * marketingLift[i] * demandLift)
//
// The marketing lift applies to months 2 and 3 only; campaigns take a month
// to show effect, so month 1 is never lifted. The receivables lift scales
// all three months uniformly. Rounding is half away from zero
// (decimal.Round) and is a fixed, tested contract of the engine.
//
// Inputs are already-validated enumerations, so there is no failure path.
func demandSeries(p Parameters, d Decision) [HorizonMonths]int {
	base := p.BaseShares[d.Location]
	lift := p.MarketingLift[d.Marketing]
	policy := p.DemandLift[d.Receivables]
	market := decimal.NewFromInt(int64(p.MarketSize))

	var units [HorizonMonths]int
	for i := 0; i < HorizonMonths; i++ {
		expected := base[i].Mul(market).Mul(policy)
		if i > 0 {
			expected = expected.Mul(lift)
		}
		units[i] = int(expected.Round(0).IntPart())
	}
	return units
}
