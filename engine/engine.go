/*
engine.go - the simulation entry point

PURPOSE:
  Simulate is the one public operation of the core: it takes a validated
  Decision plus immutable Parameters and runs the stage pipeline

    demand -> inventory & sales -> receivables -> payables -> cash -> narrative

  strictly left to right. Each stage is a pure function of the prior
  stages' outputs; nothing is shared between runs, so concurrent runs
  need no locking.

SEE ALSO:
  - normalize.go: building a Decision from raw form input
  - scenario:     parameter presets and the JSON factory
*/
package engine

// Simulate runs the full three-month simulation for one decision. The
// returned Result is freshly allocated and owned by the caller.
//
// Decision values produced by ParseDecision are always acceptable;
// Simulate re-validates enum membership and quantities anyway so that
// hand-built decisions fail loudly instead of producing zero-filled
// nonsense.
func Simulate(d Decision, p Parameters) (*Result, error) {
	if err := validateDecision(p, d); err != nil {
		return nil, err
	}

	demand := demandSeries(p, d)
	inv := resolveInventory(p, d, demand)
	rec := scheduleReceivables(p, d.Receivables, inv.Sold)
	pay := schedulePayables(p, d)
	cash := runCashflow(p, d, rec, pay)

	var series MonthlySeries
	for i := 0; i < HorizonMonths; i++ {
		series[i] = MonthResult{
			Month:                Month(i + 1),
			Demand:               demand[i],
			UnitsSold:            inv.Sold[i],
			ClosingInventory:     inv.Closing[i],
			Revenue:              rec.Revenue[i],
			UnitCost:             inv.UnitCost[i],
			PurchaseValue:        inv.PurchaseValue[i],
			InventoryValue:       inv.InventoryValue[i],
			CostOfGoodsSold:      inv.CostOfGoodsSold[i],
			PayablesDue:          pay.Total[i],
			ReceivablesCollected: rec.Collected[i],
			FixedOutflow:         cash.FixedOutflow[i],
			Depreciation:         cash.Depreciation,
			NetCashFlow:          cash.NetCashFlow[i],
			OverdraftInterest:    cash.Interest[i],
			ClosingCash:          cash.ClosingCash[i],
		}
	}

	lines := buildNarrative(narrativeContext{
		p:      p,
		d:      d,
		demand: demand,
		inv:    inv,
		rec:    rec,
		pay:    pay,
		cash:   cash,
	})

	return &Result{Series: series, Lines: lines}, nil
}

// validateDecision rejects enum values outside the closed sets, negative
// quantities, and a month-1 advance purchase when the scenario forbids it.
func validateDecision(p Parameters, d Decision) error {
	switch d.Location {
	case LocationHillside, LocationBeachfront:
	default:
		return &InvalidChoiceError{Field: "location", Input: string(d.Location)}
	}
	switch d.Marketing {
	case MarketingConservative, MarketingAggressive:
	default:
		return &InvalidChoiceError{Field: "marketing", Input: string(d.Marketing)}
	}
	switch d.Receivables {
	case ReceiveCashOnly, ReceiveCard, ReceiveBilled:
	default:
		return &InvalidChoiceError{Field: "receivables", Input: string(d.Receivables)}
	}
	for i, order := range d.Purchases {
		if order.Quantity < 0 {
			return &InvalidQuantityError{Month: Month(i + 1), Quantity: order.Quantity}
		}
		switch order.Term {
		case PayCash, PayInstallment, PayAdvance:
		default:
			return &InvalidChoiceError{Field: "payment term", Input: string(order.Term)}
		}
	}
	if !p.AllowMonthOneAdvance && d.Purchases[0].Term == PayAdvance {
		return &InvalidChoiceError{Field: "month 1 payment term", Input: string(PayAdvance)}
	}
	return nil
}
