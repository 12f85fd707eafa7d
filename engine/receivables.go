/*
receivables.go - revenue recognition and collection schedule

PURPOSE:
  Revenue is sale price x units sold. How that revenue turns into cash
  depends on the receivables policy:

    CashOnly  everything collected in the sale month, no deductions.
    Card      (1 - cardShare) collected in the sale month; the card share
              lands one month later net of the processor fee.
    Billed    (1 - cardShare - billedShare) in the sale month; the card
              share as above; the billed share splits into three equal
              installments landing one, two and three months after the
              sale, each net of the default rate.

  The horizon is three months: any installment scheduled beyond month 3
  is not collected inside the window. That truncation is explicit - the
  amounts accumulate in Truncated rather than vanishing into slice
  bounds - so tests can assert exactly what was left on the table.

  The demand uplift from the receivables choice is applied in the demand
  model; this file only moves cash in time.
*/
package engine

import "github.com/shopspring/decimal"

var three = decimal.NewFromInt(3)

// receivablesResult breaks monthly collections down by origin, indexed by
// zero-based month.
type receivablesResult struct {
	Revenue      [HorizonMonths]decimal.Decimal
	SameMonth    [HorizonMonths]decimal.Decimal // collected in the sale month
	CardInflow   [HorizonMonths]decimal.Decimal // prior-month card sales, net of fee
	BilledInflow [HorizonMonths]decimal.Decimal // prior-month billed installments, net of defaults
	Collected    [HorizonMonths]decimal.Decimal // total cash in per month
	Truncated    decimal.Decimal                // scheduled beyond month 3, never collected
}

// scheduleReceivables lays out when each month's revenue is actually
// collected.
func scheduleReceivables(p Parameters, policy ReceivablesPolicy, sold [HorizonMonths]int) receivablesResult {
	var r receivablesResult
	r.Truncated = decimal.Zero

	for i := 0; i < HorizonMonths; i++ {
		r.Revenue[i] = p.SalePrice.Mul(decimal.NewFromInt(int64(sold[i])))
	}

	one := decimal.NewFromInt(1)

	for sale := 0; sale < HorizonMonths; sale++ {
		rev := r.Revenue[sale]

		switch policy {
		case ReceiveCashOnly:
			r.SameMonth[sale] = rev

		case ReceiveCard:
			r.SameMonth[sale] = rev.Mul(one.Sub(p.CardShare))
			deposit(&r, sale+1, rev.Mul(p.CardShare).Mul(one.Sub(p.CardFeeRate)), &r.CardInflow)

		case ReceiveBilled:
			r.SameMonth[sale] = rev.Mul(one.Sub(p.CardShare).Sub(p.BilledShare))
			deposit(&r, sale+1, rev.Mul(p.CardShare).Mul(one.Sub(p.CardFeeRate)), &r.CardInflow)

			installment := rev.Mul(p.BilledShare).Div(three).Mul(one.Sub(p.DefaultRate))
			for offset := 1; offset <= 3; offset++ {
				deposit(&r, sale+offset, installment, &r.BilledInflow)
			}
		}
	}

	for i := 0; i < HorizonMonths; i++ {
		r.Collected[i] = r.SameMonth[i].Add(r.CardInflow[i]).Add(r.BilledInflow[i])
	}
	return r
}

// deposit credits amount to bucket[month], or to Truncated when the month
// falls outside the window.
func deposit(r *receivablesResult, month int, amount decimal.Decimal, bucket *[HorizonMonths]decimal.Decimal) {
	if amount.IsZero() {
		return
	}
	if month >= HorizonMonths {
		r.Truncated = r.Truncated.Add(amount)
		return
	}
	bucket[month] = bucket[month].Add(amount)
}
