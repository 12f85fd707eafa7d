/*
narrative.go - statement-of-accounts generation

PURPOSE:
  Renders every computed monetary event as a numbered, human-readable
  sentence, grouped by month. The line inventory is a declarative table
  of (month, condition, render) entries evaluated once per run, in a
  fixed order. A line whose condition does not hold is dropped BEFORE
  numbering, so sequence numbers are always contiguous from 1 with no
  gaps no matter how many conditional lines are suppressed.

LINE CHECKLIST PER MONTH:
  January   capital contribution, rent, marketing, furniture acquisition,
            purchase, sales, furniture installment, advance payment
  February  rent, marketing, prior-sale collections, purchase, sales,
            furniture installment, advance payment, supplier installment
  March     rent, marketing, prior-sale collections, purchase, sales,
            furniture installment, supplier installment

  Conditional lines: collections appear only for Card/Billed policies,
  the advance line only when the NEXT month's batch is paid in advance,
  and the supplier installment line only when an installment actually
  falls due that month.
*/
package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// narrativeContext bundles everything the render functions may reference.
type narrativeContext struct {
	p      Parameters
	d      Decision
	demand [HorizonMonths]int
	inv    inventoryResult
	rec    receivablesResult
	pay    payablesResult
	cash   cashflowResult
}

type lineSpec struct {
	month Month
	when  func(narrativeContext) bool
	text  func(narrativeContext) string
}

func always(narrativeContext) bool { return true }

// buildNarrative evaluates the line table and numbers the surviving lines.
func buildNarrative(ctx narrativeContext) []NarrativeLine {
	var lines []NarrativeLine
	seq := 1
	for _, spec := range narrativeTable() {
		if !spec.when(ctx) {
			continue
		}
		text := strings.TrimSpace(spec.text(ctx))
		if text == "" {
			continue
		}
		lines = append(lines, NarrativeLine{Seq: seq, Month: spec.month, Text: text})
		seq++
	}
	return lines
}

// narrativeTable is the full ordered checklist for the three months.
func narrativeTable() []lineSpec {
	specs := []lineSpec{
		{January, always, capitalLine},
		{January, always, rentLine(January)},
		{January, always, marketingLine(January)},
		{January, always, furnitureAcquisitionLine},
		{January, always, purchaseLine(January)},
		{January, always, salesLine(January)},
		{January, always, furnitureInstallmentLine(January)},
		{January, advanceDueNextMonth(January), advanceLine(January)},
	}
	for _, m := range []Month{February, March} {
		specs = append(specs,
			lineSpec{m, always, rentLine(m)},
			lineSpec{m, always, marketingLine(m)},
			lineSpec{m, hasDeferredCollections, collectionLine(m)},
			lineSpec{m, always, purchaseLine(m)},
			lineSpec{m, always, salesLine(m)},
			lineSpec{m, always, furnitureInstallmentLine(m)},
		)
		if m != March {
			specs = append(specs, lineSpec{m, advanceDueNextMonth(m), advanceLine(m)})
		}
		specs = append(specs, lineSpec{m, supplierInstallmentDue(m), supplierInstallmentLine(m)})
	}
	return specs
}

// =============================================================================
// CONDITIONS
// =============================================================================

func hasDeferredCollections(ctx narrativeContext) bool {
	return ctx.d.Receivables != ReceiveCashOnly
}

func advanceDueNextMonth(m Month) func(narrativeContext) bool {
	return func(ctx narrativeContext) bool {
		next := m.idx() + 1
		return next < HorizonMonths && ctx.d.Purchases[next].Term == PayAdvance
	}
}

func supplierInstallmentDue(m Month) func(narrativeContext) bool {
	return func(ctx narrativeContext) bool {
		return ctx.pay.InstallmentPaid[m.idx()].IsPositive()
	}
}

// =============================================================================
// RENDERERS
// =============================================================================

func capitalLine(ctx narrativeContext) string {
	return fmt.Sprintf("In January, the share capital of R$ %s was paid in by bank deposit.",
		FormatMoney(ctx.p.StartingCapital))
}

func rentLine(m Month) func(narrativeContext) string {
	return func(ctx narrativeContext) string {
		rent := ctx.p.Sites[ctx.d.Location].MonthlyRent
		return fmt.Sprintf("In %s, the monthly rent of R$ %s was paid for the use of the premises.",
			m.Name(), FormatMoney(rent))
	}
}

func marketingLine(m Month) func(narrativeContext) string {
	return func(ctx narrativeContext) string {
		return fmt.Sprintf("In %s, R$ %s was spent on marketing.",
			m.Name(), FormatMoney(ctx.cash.MarketingSpend[m.idx()]))
	}
}

func furnitureAcquisitionLine(ctx narrativeContext) string {
	site := ctx.p.Sites[ctx.d.Location]
	return fmt.Sprintf("In January, furniture with a useful life of %d months was acquired for a total of R$ %s, payable in three monthly installments due at the end of each month starting in January.",
		site.FurnitureLifeMonths, FormatMoney(site.FurnitureInvestment))
}

func furnitureInstallmentLine(m Month) func(narrativeContext) string {
	ordinals := map[Month]string{January: "first", February: "second", March: "third"}
	return func(ctx narrativeContext) string {
		return fmt.Sprintf("In %s, R$ %s was paid as the %s furniture installment.",
			m.Name(), FormatMoney(ctx.cash.FurnitureInstallment), ordinals[m])
	}
}

func purchaseLine(m Month) func(narrativeContext) string {
	return func(ctx narrativeContext) string {
		i := m.idx()
		order := ctx.d.Purchases[i]
		qty := decimal.NewFromInt(int64(order.Quantity))
		supplier := supplierUnitCost(ctx.p, order.Term).Mul(qty)
		logistics := ctx.p.LogisticsFeePerUnit.Mul(qty)

		var terms string
		switch order.Term {
		case PayCash:
			terms = "paid in cash"
		case PayInstallment:
			terms = "payable in three monthly installments"
		case PayAdvance:
			if m == January {
				terms = "paid in advance"
			} else {
				terms = "offset against the advance paid the previous month"
			}
		}

		return fmt.Sprintf("In %s, %d packages of civet coffee were acquired: R$ %s %s, plus R$ %s paid in cash for freight and non-recoverable import duties.",
			m.Name(), order.Quantity, FormatMoney(supplier), terms, FormatMoney(logistics))
	}
}

func salesLine(m Month) func(narrativeContext) string {
	return func(ctx narrativeContext) string {
		i := m.idx()
		return fmt.Sprintf("In %s, %d packages of civet coffee were sold for a total of R$ %s. Payment terms: %s.%s",
			m.Name(), ctx.inv.Sold[i], FormatMoney(ctx.rec.Revenue[i]),
			policyDescription(ctx.p, ctx.d.Receivables),
			policyDeductions(ctx.p, ctx.d.Receivables))
	}
}

func collectionLine(m Month) func(narrativeContext) string {
	return func(ctx narrativeContext) string {
		i := m.idx()
		card := fmt.Sprintf("In %s, R$ %s was collected from the previous month's credit-card sales",
			m.Name(), FormatMoney(ctx.rec.CardInflow[i]))
		if ctx.d.Receivables == ReceiveBilled {
			return fmt.Sprintf("%s, and R$ %s from billed installments of earlier sales.",
				card, FormatMoney(ctx.rec.BilledInflow[i]))
		}
		return card + "."
	}
}

func advanceLine(m Month) func(narrativeContext) string {
	return func(ctx narrativeContext) string {
		next := m.idx() + 1
		qty := decimal.NewFromInt(int64(ctx.d.Purchases[next].Quantity))
		amount := ctx.p.PurchasePrice.Mul(ctx.p.AdvanceDiscount).Mul(qty)
		return fmt.Sprintf("In %s, R$ %s was advanced to the supplier for goods not yet delivered.",
			m.Name(), FormatMoney(amount))
	}
}

func supplierInstallmentLine(m Month) func(narrativeContext) string {
	return func(ctx narrativeContext) string {
		return fmt.Sprintf("In %s, R$ %s was paid to the supplier for goods delivered in earlier months.",
			m.Name(), FormatMoney(ctx.pay.InstallmentPaid[m.idx()]))
	}
}

// policyDescription explains the customer payment mix; the percentages come
// from the scenario parameters, not hard-coded copy.
func policyDescription(p Parameters, policy ReceivablesPolicy) string {
	one := decimal.NewFromInt(1)
	switch policy {
	case ReceiveCard:
		return fmt.Sprintf("%s%% collected in cash and %s%% by credit card, collected the following month",
			FormatPercent(one.Sub(p.CardShare)), FormatPercent(p.CardShare))
	case ReceiveBilled:
		return fmt.Sprintf("%s%% collected in cash, %s%% by credit card and %s%% by billing slip in three equal monthly installments, interest free",
			FormatPercent(one.Sub(p.CardShare).Sub(p.BilledShare)),
			FormatPercent(p.CardShare), FormatPercent(p.BilledShare))
	default:
		return "the full amount collected in cash"
	}
}

func policyDeductions(p Parameters, policy ReceivablesPolicy) string {
	switch policy {
	case ReceiveCard:
		return fmt.Sprintf(" The card processor charges a %s%% fee on card sales.",
			FormatPercent(p.CardFeeRate))
	case ReceiveBilled:
		return fmt.Sprintf(" The card processor charges a %s%% fee on card sales, and billed receivables carry a %s%% default risk.",
			FormatPercent(p.CardFeeRate), FormatPercent(p.DefaultRate))
	default:
		return ""
	}
}

// =============================================================================
// STATEMENT RENDERING
// =============================================================================

// Statement renders the full email/statement body: a header with the
// student's name and the numbered lines grouped under month subtitles.
func Statement(studentName string, lines []NarrativeLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Student: %s\n", studentName)
	b.WriteString("You chose the following operations:\n")

	current := Month(0)
	for _, line := range lines {
		if line.Month != current {
			current = line.Month
			fmt.Fprintf(&b, "\n%s operations\n", current.Name())
		}
		fmt.Fprintf(&b, "%d. %s\n", line.Seq, line.Text)
	}
	return b.String()
}
