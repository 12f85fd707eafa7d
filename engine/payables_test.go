package engine_test

import (
	"testing"

	"github.com/kopi/venture-engine/engine"
	"github.com/kopi/venture-engine/scenario"
)

func TestPayables_AdvanceIsPaidTheMonthBeforeDelivery(t *testing.T) {
	// GIVEN: a cash purchase in month 1 and an advance purchase in month 2
	// THEN:  the advance is debited in month 1 (one month ahead of the
	//        goods), while the month-2 outflow is only the logistics fee
	//        of the arriving batch
	d := engine.Decision{
		Location:    engine.LocationHillside,
		Marketing:   engine.MarketingConservative,
		Receivables: engine.ReceiveCashOnly,
		Purchases: [engine.HorizonMonths]engine.PurchaseOrder{
			{Quantity: 100, Term: engine.PayCash},
			{Quantity: 60, Term: engine.PayAdvance},
			{Quantity: 0, Term: engine.PayCash},
		},
	}
	res, err := engine.Simulate(d, scenario.Classic())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100x2500 cash + 100x500 logistics + 60x2250 advance for month 2.
	eqMoney(t, "month 1 payables", "435000", res.Series[0].PayablesDue)
	// Only the logistics fee of the advance-paid batch.
	eqMoney(t, "month 2 payables", "30000", res.Series[1].PayablesDue)
	eqMoney(t, "month 3 payables", "0", res.Series[2].PayablesDue)
}

func TestPayables_InstallmentThirdsStartNextMonthAndTruncate(t *testing.T) {
	// A month-1 installment purchase of 90 units at the surcharged price
	// (2700/unit = 243000) pays 81000 in months 2 and 3; the third
	// installment falls past the window and is dropped.
	d := engine.Decision{
		Location:    engine.LocationHillside,
		Marketing:   engine.MarketingConservative,
		Receivables: engine.ReceiveCashOnly,
		Purchases: [engine.HorizonMonths]engine.PurchaseOrder{
			{Quantity: 90, Term: engine.PayInstallment},
			{Quantity: 0, Term: engine.PayCash},
			{Quantity: 0, Term: engine.PayCash},
		},
	}
	res, err := engine.Simulate(d, scenario.Classic())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Month 1 pays logistics only: 90x500.
	eqMoney(t, "month 1 payables", "45000", res.Series[0].PayablesDue)
	eqMoney(t, "month 2 payables", "81000", res.Series[1].PayablesDue)
	eqMoney(t, "month 3 payables", "81000", res.Series[2].PayablesDue)
}

func TestPayables_MonthOneAdvanceChargesNothingInWindow(t *testing.T) {
	// An advance purchase delivered in month 1 was paid before the window
	// opened: within the window only the logistics fee is debited, but the
	// goods still carry the discounted unit cost.
	d := engine.Decision{
		Location:    engine.LocationHillside,
		Marketing:   engine.MarketingConservative,
		Receivables: engine.ReceiveCashOnly,
		Purchases: [engine.HorizonMonths]engine.PurchaseOrder{
			{Quantity: 40, Term: engine.PayAdvance},
			{Quantity: 0, Term: engine.PayCash},
			{Quantity: 0, Term: engine.PayCash},
		},
	}
	res, err := engine.Simulate(d, scenario.Classic())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	eqMoney(t, "month 1 payables", "20000", res.Series[0].PayablesDue)
	eqMoney(t, "month 2 payables", "0", res.Series[1].PayablesDue)
	eqMoney(t, "month 3 payables", "0", res.Series[2].PayablesDue)
	// Landed unit cost = 2500x0.9 discount + 500 logistics.
	eqMoney(t, "month 1 unit cost", "2750", res.Series[0].UnitCost)
}
