/*
payables.go - procurement cost and supplier payment schedule

PURPOSE:
  Lays out when supplier money actually leaves the account. Three terms:

    Cash         full supplier cost paid in the purchase month.
    Advance      supplier cost x discount factor, paid one month BEFORE
                 delivery. A month-1 advance purchase was therefore paid
                 before the simulation window opens and is never charged
                 to in-window cash.
    Installment  supplier cost x surcharge factor, split into three equal
                 payments beginning the month after purchase. Payments
                 falling beyond month 3 are outside the window.

  The logistics fee (import duties and freight) is paid in cash in the
  shipment month regardless of term, and is never part of an installment
  split.
*/
package engine

import "github.com/shopspring/decimal"

// payablesResult breaks monthly supplier outflow down by origin, indexed
// by zero-based month.
type payablesResult struct {
	CashPaid        [HorizonMonths]decimal.Decimal // cash-term purchases, same month
	AdvancePaid     [HorizonMonths]decimal.Decimal // paid this month for next month's goods
	InstallmentPaid [HorizonMonths]decimal.Decimal // installments due this month
	Logistics       [HorizonMonths]decimal.Decimal // freight and duties, always cash
	Total           [HorizonMonths]decimal.Decimal
	Truncated       decimal.Decimal // installments scheduled beyond month 3
}

// schedulePayables computes the supplier payment timeline for the three
// purchase batches.
func schedulePayables(p Parameters, d Decision) payablesResult {
	var r payablesResult
	r.Truncated = decimal.Zero

	for i := 0; i < HorizonMonths; i++ {
		qty := decimal.NewFromInt(int64(d.Purchases[i].Quantity))
		r.Logistics[i] = p.LogisticsFeePerUnit.Mul(qty)

		supplierCost := supplierUnitCost(p, d.Purchases[i].Term).Mul(qty)

		switch d.Purchases[i].Term {
		case PayCash:
			r.CashPaid[i] = r.CashPaid[i].Add(supplierCost)

		case PayAdvance:
			// Payment precedes delivery by one month. Month 1's advance
			// falls before the window and charges nothing in-window.
			if i >= 1 {
				r.AdvancePaid[i-1] = r.AdvancePaid[i-1].Add(supplierCost)
			}

		case PayInstallment:
			installment := supplierCost.Div(three)
			for offset := 1; offset <= 3; offset++ {
				due := i + offset
				if due >= HorizonMonths {
					r.Truncated = r.Truncated.Add(installment)
					continue
				}
				r.InstallmentPaid[due] = r.InstallmentPaid[due].Add(installment)
			}
		}
	}

	for i := 0; i < HorizonMonths; i++ {
		r.Total[i] = r.CashPaid[i].
			Add(r.AdvancePaid[i]).
			Add(r.InstallmentPaid[i]).
			Add(r.Logistics[i])
	}
	return r
}
