/*
factory.go - JSON to Parameters conversion

PURPOSE:
  Lets scenario variants live outside the binary - in a config file or a
  database row - without code changes. A course instructor edits numbers
  in JSON; ParseParameters turns the document into a validated
  engine.Parameters value.

JSON SCHEMA (all prices/rates as numbers, locations keyed by name):
  {
    "name": "classic-2024",
    "sale_price": 4000,
    "purchase_price": 2500,
    "advance_discount": 0.9,
    "installment_surcharge": 1.08,
    "logistics_fee": 500,
    "card_share": 0.3,
    "billed_share": 0.4,
    "card_fee_rate": 0.01,
    "default_rate": 0.1,
    "starting_capital": 50000,
    "overdraft_rate": 0.15,
    "marketing_monthly": 5000,
    "aggressive_surcharge": 10000,
    "market_size": 100,
    "sites": {
      "hillside":   {"rent": 10000, "furniture": 60000, "furniture_life_months": 120},
      "beachfront": {"rent": 50000, "furniture": 100000, "furniture_life_months": 120}
    },
    "base_shares":   {"hillside": [0.2, 0.4, 0.6], "beachfront": [0.6, 0.7, 0.8]},
    "marketing_lift": {"conservative": 1.1, "aggressive": 1.2},
    "demand_lift":    {"cash_only": 1.0, "card": 1.1, "billed": 1.15},
    "proration": "faithful",
    "allow_month_one_advance": true
  }

DEFAULTS:
  market_size 100, proration "faithful", allow_month_one_advance true.
  Location/plan/policy keys accept the same aliases the submission form
  accepts ("serra", "avista", ...).
*/
package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kopi/venture-engine/engine"
)

// SiteJSON is the per-location block of a scenario document.
type SiteJSON struct {
	Rent                float64 `json:"rent"`
	Furniture           float64 `json:"furniture"`
	FurnitureLifeMonths int     `json:"furniture_life_months"`
}

// ParametersJSON is the JSON representation of a scenario variant.
type ParametersJSON struct {
	Name                 string  `json:"name"`
	SalePrice            float64 `json:"sale_price"`
	PurchasePrice        float64 `json:"purchase_price"`
	AdvanceDiscount      float64 `json:"advance_discount"`
	InstallmentSurcharge float64 `json:"installment_surcharge"`
	LogisticsFee         float64 `json:"logistics_fee"`
	CardShare            float64 `json:"card_share"`
	BilledShare          float64 `json:"billed_share"`
	CardFeeRate          float64 `json:"card_fee_rate"`
	DefaultRate          float64 `json:"default_rate"`
	StartingCapital      float64 `json:"starting_capital"`
	OverdraftRate        float64 `json:"overdraft_rate"`
	MarketingMonthly     float64 `json:"marketing_monthly"`
	AggressiveSurcharge  float64 `json:"aggressive_surcharge"`

	MarketSize    int                            `json:"market_size,omitempty"`
	Sites         map[string]SiteJSON            `json:"sites"`
	BaseShares    map[string][engine.HorizonMonths]float64 `json:"base_shares"`
	MarketingLift map[string]float64             `json:"marketing_lift"`
	DemandLift    map[string]float64             `json:"demand_lift"`

	Proration            string `json:"proration,omitempty"`
	AllowMonthOneAdvance *bool  `json:"allow_month_one_advance,omitempty"`
}

// ParseParameters converts a JSON scenario document into validated
// Parameters.
func ParseParameters(doc string) (engine.Parameters, error) {
	var j ParametersJSON
	if err := json.Unmarshal([]byte(doc), &j); err != nil {
		return engine.Parameters{}, fmt.Errorf("parse scenario JSON: %w", err)
	}
	if j.Name == "" {
		return engine.Parameters{}, &engine.ParameterError{Field: "name", Reason: "required"}
	}

	p := engine.Parameters{
		Name:                 j.Name,
		SalePrice:            decimal.NewFromFloat(j.SalePrice),
		PurchasePrice:        decimal.NewFromFloat(j.PurchasePrice),
		AdvanceDiscount:      decimal.NewFromFloat(j.AdvanceDiscount),
		InstallmentSurcharge: decimal.NewFromFloat(j.InstallmentSurcharge),
		LogisticsFeePerUnit:  decimal.NewFromFloat(j.LogisticsFee),
		CardShare:            decimal.NewFromFloat(j.CardShare),
		BilledShare:          decimal.NewFromFloat(j.BilledShare),
		CardFeeRate:          decimal.NewFromFloat(j.CardFeeRate),
		DefaultRate:          decimal.NewFromFloat(j.DefaultRate),
		StartingCapital:      decimal.NewFromFloat(j.StartingCapital),
		OverdraftRate:        decimal.NewFromFloat(j.OverdraftRate),
		MarketingMonthly:     decimal.NewFromFloat(j.MarketingMonthly),
		AggressiveSurcharge:  decimal.NewFromFloat(j.AggressiveSurcharge),

		MarketSize:    100,
		Sites:         make(map[engine.Location]engine.SiteProfile),
		BaseShares:    make(map[engine.Location][engine.HorizonMonths]decimal.Decimal),
		MarketingLift: make(map[engine.MarketingPlan]decimal.Decimal),
		DemandLift:    make(map[engine.ReceivablesPolicy]decimal.Decimal),

		Proration:            engine.ProrationFaithful,
		AllowMonthOneAdvance: true,
	}
	if j.MarketSize != 0 {
		p.MarketSize = j.MarketSize
	}
	if j.Proration != "" {
		p.Proration = engine.ProrationMode(j.Proration)
	}
	if j.AllowMonthOneAdvance != nil {
		p.AllowMonthOneAdvance = *j.AllowMonthOneAdvance
	}

	for key, site := range j.Sites {
		loc, err := engine.ParseLocation(key)
		if err != nil {
			return engine.Parameters{}, err
		}
		p.Sites[loc] = engine.SiteProfile{
			MonthlyRent:         decimal.NewFromFloat(site.Rent),
			FurnitureInvestment: decimal.NewFromFloat(site.Furniture),
			FurnitureLifeMonths: site.FurnitureLifeMonths,
		}
	}
	for key, shares := range j.BaseShares {
		loc, err := engine.ParseLocation(key)
		if err != nil {
			return engine.Parameters{}, err
		}
		var curve [engine.HorizonMonths]decimal.Decimal
		for i, s := range shares {
			curve[i] = decimal.NewFromFloat(s)
		}
		p.BaseShares[loc] = curve
	}
	for key, lift := range j.MarketingLift {
		plan, err := engine.ParseMarketing(key)
		if err != nil {
			return engine.Parameters{}, err
		}
		p.MarketingLift[plan] = decimal.NewFromFloat(lift)
	}
	for key, lift := range j.DemandLift {
		policy, err := engine.ParseReceivables(key)
		if err != nil {
			return engine.Parameters{}, err
		}
		p.DemandLift[policy] = decimal.NewFromFloat(lift)
	}

	if err := Validate(p); err != nil {
		return engine.Parameters{}, err
	}
	return p, nil
}
