/*
Package scenario provides the parameter configurations the engine runs
against.

PURPOSE:
  The simulation constants exist in several historical variants. Rather
  than baking one table into the engine, each variant is an explicit,
  immutable engine.Parameters preset defined here (or parsed from JSON via
  the factory). Nothing in this package is mutable module state: every
  call returns a fresh value.

PRESETS:
  Classic  the original constant table, month-1 advance allowed, the
           faithful month-3 proration formula.
  Strict   same numbers, but month-1 advance purchases are rejected and
           the corrected proration formula is used.

SEE ALSO:
  - factory.go:  JSON -> Parameters for variants stored in config files
  - validate.go: the parameter invariants
*/
package scenario

import (
	"github.com/shopspring/decimal"

	"github.com/kopi/venture-engine/engine"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Classic returns the original scenario: a civet-coffee import venture
// with a 100-unit monthly market.
func Classic() engine.Parameters {
	return engine.Parameters{
		Name: "classic",

		SalePrice:            dec("4000"),
		PurchasePrice:        dec("2500"),
		AdvanceDiscount:      dec("0.9"),
		InstallmentSurcharge: dec("1.08"),
		LogisticsFeePerUnit:  dec("500"),

		Sites: map[engine.Location]engine.SiteProfile{
			engine.LocationHillside: {
				MonthlyRent:         dec("10000"),
				FurnitureInvestment: dec("60000"),
				FurnitureLifeMonths: 120,
			},
			engine.LocationBeachfront: {
				MonthlyRent:         dec("50000"),
				FurnitureInvestment: dec("100000"),
				FurnitureLifeMonths: 120,
			},
		},

		CardShare:   dec("0.3"),
		BilledShare: dec("0.4"),
		CardFeeRate: dec("0.01"),
		DefaultRate: dec("0.1"),

		StartingCapital: dec("50000"),
		OverdraftRate:   dec("0.15"),

		MarketingMonthly:    dec("5000"),
		AggressiveSurcharge: dec("10000"),

		MarketSize: 100,
		BaseShares: map[engine.Location][engine.HorizonMonths]decimal.Decimal{
			engine.LocationHillside:   {dec("0.2"), dec("0.4"), dec("0.6")},
			engine.LocationBeachfront: {dec("0.6"), dec("0.7"), dec("0.8")},
		},
		MarketingLift: map[engine.MarketingPlan]decimal.Decimal{
			engine.MarketingConservative: dec("1.1"),
			engine.MarketingAggressive:   dec("1.2"),
		},
		DemandLift: map[engine.ReceivablesPolicy]decimal.Decimal{
			engine.ReceiveCashOnly: dec("1"),
			engine.ReceiveCard:     dec("1.1"),
			engine.ReceiveBilled:   dec("1.15"),
		},

		Proration:            engine.ProrationFaithful,
		AllowMonthOneAdvance: true,
	}
}

// Strict is Classic with the stricter rules some course editions used:
// no advance purchase for month 1 (there is no month zero to pay it in)
// and the corrected month-3 inventory proration.
func Strict() engine.Parameters {
	p := Classic()
	p.Name = "strict"
	p.AllowMonthOneAdvance = false
	p.Proration = engine.ProrationCorrected
	return p
}

// All lists every built-in preset.
func All() []engine.Parameters {
	return []engine.Parameters{Classic(), Strict()}
}

// ByName looks up a built-in preset.
func ByName(name string) (engine.Parameters, bool) {
	for _, p := range All() {
		if p.Name == name {
			return p, true
		}
	}
	return engine.Parameters{}, false
}
