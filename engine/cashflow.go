/*
cashflow.go - fixed costs, net cash flow and the overdraft cascade

PURPOSE:
  Aggregates every monthly cash movement into net cash flow and runs the
  closing-balance state machine:

    closing[0] = startingCapital + net[0]
    closing[i] = closing[i-1] + net[i]        (i = 1, 2)

  After each month, if the pre-interest closing balance is strictly
  negative, overdraft interest of balance x rate is charged and the
  balance that carries forward becomes balance x (1 + rate). The charge
  is independent per month; there is no cross-month compounding beyond
  the adjusted balance carrying forward.
*/
package engine

import "github.com/shopspring/decimal"

// cashflowResult holds the monthly cash aggregation, indexed by zero-based
// month.
type cashflowResult struct {
	FixedOutflow         [HorizonMonths]decimal.Decimal // rent + furniture installment + marketing
	MarketingSpend       [HorizonMonths]decimal.Decimal
	FurnitureInstallment decimal.Decimal // one of three equal furniture payments
	Depreciation         decimal.Decimal // straight line, per month
	NetCashFlow          [HorizonMonths]decimal.Decimal
	Interest             [HorizonMonths]decimal.Decimal // negative when charged
	ClosingCash          [HorizonMonths]decimal.Decimal // after interest
}

// runCashflow folds collections and payments into the closing cash series.
func runCashflow(p Parameters, d Decision, rec receivablesResult, pay payablesResult) cashflowResult {
	var r cashflowResult

	site := p.Sites[d.Location]
	r.FurnitureInstallment = site.FurnitureInvestment.Div(three)
	r.Depreciation = site.FurnitureInvestment.Div(decimal.NewFromInt(int64(site.FurnitureLifeMonths)))

	for i := 0; i < HorizonMonths; i++ {
		r.MarketingSpend[i] = p.MarketingMonthly
		if i == 0 && d.Marketing == MarketingAggressive {
			r.MarketingSpend[i] = r.MarketingSpend[i].Add(p.AggressiveSurcharge)
		}
		r.FixedOutflow[i] = site.MonthlyRent.
			Add(r.FurnitureInstallment).
			Add(r.MarketingSpend[i])

		r.NetCashFlow[i] = rec.Collected[i].
			Sub(pay.Total[i]).
			Sub(r.FixedOutflow[i])
	}

	balance := p.StartingCapital
	one := decimal.NewFromInt(1)
	for i := 0; i < HorizonMonths; i++ {
		balance = balance.Add(r.NetCashFlow[i])
		if balance.IsNegative() {
			r.Interest[i] = balance.Mul(p.OverdraftRate)
			balance = balance.Mul(one.Add(p.OverdraftRate))
		}
		r.ClosingCash[i] = balance
	}

	return r
}
