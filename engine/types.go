/*
Package engine implements the financial simulation core.

PURPOSE:
  Turns one set of strategic decisions (site, marketing intensity,
  receivables policy, three monthly purchase batches) into a three-month
  series of demand, sales, inventory valuation, receivables, payables and
  cash position, plus a numbered narrative statement of every cash
  movement. The whole computation is a pure function: fresh Decision and
  Parameters in, fresh Result out, no shared state between runs.

KEY CONCEPTS IN THIS FILE (types.go):
  - Decision:    the choices one student submits for a run
  - Parameters:  the immutable scenario configuration (prices, rates, tables)
  - MonthResult: every computed figure for one month
  - MonthlySeries: the ordered three-month sequence

DESIGN PRINCIPLES:
  1. Precision: money is decimal.Decimal, never float64
  2. Immutability: Decision and Parameters are value types, consumed once
  3. Determinism: same inputs always produce the same series and statement

SEE ALSO:
  - engine.go:    Simulate, the single entry point
  - normalize.go: free-form input to canonical enum values
  - narrative.go: statement line generation
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// HorizonMonths is the fixed length of the simulation window.
const HorizonMonths = 3

// Month indexes the simulation window, 1-based.
type Month int

const (
	January  Month = 1
	February Month = 2
	March    Month = 3
)

func (m Month) Name() string {
	switch m {
	case January:
		return "January"
	case February:
		return "February"
	case March:
		return "March"
	}
	return "unknown"
}

// idx converts a Month to a zero-based series index.
func (m Month) idx() int { return int(m) - 1 }

// =============================================================================
// CATEGORICAL CHOICES
// =============================================================================

// Location is where the store operates. Rent and furniture investment
// differ per site; so does the base demand curve.
type Location string

const (
	LocationHillside   Location = "hillside"
	LocationBeachfront Location = "beachfront"
)

// MarketingPlan sets the promotion intensity for the quarter.
type MarketingPlan string

const (
	MarketingConservative MarketingPlan = "conservative"
	MarketingAggressive   MarketingPlan = "aggressive"
)

// ReceivablesPolicy determines how customers may pay, which shifts demand
// up and spreads collections across later months.
type ReceivablesPolicy string

const (
	ReceiveCashOnly ReceivablesPolicy = "cash_only"
	ReceiveCard     ReceivablesPolicy = "card"
	ReceiveBilled   ReceivablesPolicy = "billed"
)

// PaymentTerm is how a monthly purchase batch is paid to the supplier.
type PaymentTerm string

const (
	PayCash        PaymentTerm = "cash"
	PayInstallment PaymentTerm = "installment"
	PayAdvance     PaymentTerm = "advance"
)

// =============================================================================
// DECISION - one student's submitted choices
// =============================================================================

// PurchaseOrder is one monthly batch: how many units and on what term.
type PurchaseOrder struct {
	Quantity int
	Term     PaymentTerm
}

// Decision is the full set of choices for one simulation run. It is built
// from validated input (see normalize.go) and never mutated afterwards.
type Decision struct {
	Location    Location
	Marketing   MarketingPlan
	Receivables ReceivablesPolicy
	Purchases   [HorizonMonths]PurchaseOrder
}

// =============================================================================
// PARAMETERS - immutable scenario configuration
// =============================================================================

// ProrationMode selects how the month-3 inventory proration denominator is
// computed. The source material this simulation reproduces reuses the
// month-2 purchase quantity in month 3's denominator; Faithful keeps that
// behavior so existing graded outputs stay stable, Corrected uses the
// month-3 quantity.
type ProrationMode string

const (
	ProrationFaithful  ProrationMode = "faithful"
	ProrationCorrected ProrationMode = "corrected"
)

// SiteProfile holds the per-location fixed cost structure.
type SiteProfile struct {
	MonthlyRent         decimal.Decimal
	FurnitureInvestment decimal.Decimal
	FurnitureLifeMonths int
}

// Parameters is the complete scenario configuration. One instance per
// scenario variant; values differ across variants but the shape is fixed.
// Parameters are never mutated by a run.
type Parameters struct {
	Name string

	// Unit economics.
	SalePrice            decimal.Decimal // per unit, sold to customers
	PurchasePrice        decimal.Decimal // per unit, cash term
	AdvanceDiscount      decimal.Decimal // multiplicative factor, e.g. 0.9
	InstallmentSurcharge decimal.Decimal // multiplicative factor, e.g. 1.08
	LogisticsFeePerUnit  decimal.Decimal // import/transport, always cash

	// Per-site fixed costs.
	Sites map[Location]SiteProfile

	// Receivables mix and deductions.
	CardShare   decimal.Decimal // fraction of revenue paid by card
	BilledShare decimal.Decimal // fraction of revenue paid by billing slip
	CardFeeRate decimal.Decimal // processor fee on card collections
	DefaultRate decimal.Decimal // loss rate on billed collections

	// Financing.
	StartingCapital decimal.Decimal
	OverdraftRate   decimal.Decimal

	// Marketing spend.
	MarketingMonthly    decimal.Decimal
	AggressiveSurcharge decimal.Decimal // one-time, month 1 only

	// Demand model tables. BaseShares are market-share fractions per month,
	// scaled by MarketSize. MarketingLift applies to months 2 and 3 only.
	// DemandLift scales all three months uniformly per receivables policy.
	MarketSize    int
	BaseShares    map[Location][HorizonMonths]decimal.Decimal
	MarketingLift map[MarketingPlan]decimal.Decimal
	DemandLift    map[ReceivablesPolicy]decimal.Decimal

	// Variant switches.
	Proration            ProrationMode
	AllowMonthOneAdvance bool
}

// =============================================================================
// RESULTS
// =============================================================================

// MonthResult carries every computed figure for one month.
type MonthResult struct {
	Month Month

	// Units.
	Demand           int
	UnitsSold        int
	ClosingInventory int

	// Money.
	Revenue              decimal.Decimal
	UnitCost             decimal.Decimal // supplier cost + logistics, per unit
	PurchaseValue        decimal.Decimal // UnitCost x quantity purchased
	InventoryValue       decimal.Decimal // closing, weighted average
	CostOfGoodsSold      decimal.Decimal
	PayablesDue          decimal.Decimal // supplier + logistics cash out this month
	ReceivablesCollected decimal.Decimal
	FixedOutflow         decimal.Decimal // rent + furniture installment + marketing
	Depreciation         decimal.Decimal // furniture, straight line
	NetCashFlow          decimal.Decimal
	OverdraftInterest    decimal.Decimal // negative when charged
	ClosingCash          decimal.Decimal // after interest
}

// MonthlySeries is the ordered three-month result sequence. It is owned by
// exactly one run and never mutated after Simulate returns.
type MonthlySeries [HorizonMonths]MonthResult

// At returns the result for a month.
func (s *MonthlySeries) At(m Month) MonthResult { return s[m.idx()] }

// FinalCash is the quarter's terminal cash position.
func (s *MonthlySeries) FinalCash() decimal.Decimal {
	return s[HorizonMonths-1].ClosingCash
}

// NarrativeLine is one numbered sentence of the statement of accounts.
// Sequence numbers are contiguous from 1 across the whole run.
type NarrativeLine struct {
	Seq   int
	Month Month
	Text  string
}

// Result bundles the computed series with its narrative.
type Result struct {
	Series MonthlySeries
	Lines  []NarrativeLine
}
