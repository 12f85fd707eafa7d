package scenario

import (
	"github.com/shopspring/decimal"

	"github.com/kopi/venture-engine/engine"
)

var one = decimal.NewFromInt(1)

// Validate checks the parameter invariants: every rate in [0,1], every
// monetary field non-negative, every multiplicative factor positive, and
// both locations fully configured. Presets are validated in tests; the
// JSON factory validates every parse.
func Validate(p engine.Parameters) error {
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"card_share", p.CardShare},
		{"billed_share", p.BilledShare},
		{"card_fee_rate", p.CardFeeRate},
		{"default_rate", p.DefaultRate},
		{"overdraft_rate", p.OverdraftRate},
	}
	for _, r := range rates {
		if r.value.IsNegative() || r.value.GreaterThan(one) {
			return &engine.ParameterError{Field: r.name, Reason: "rate must be within [0,1]"}
		}
	}
	if p.CardShare.Add(p.BilledShare).GreaterThan(one) {
		return &engine.ParameterError{Field: "card_share+billed_share", Reason: "shares must not exceed 1"}
	}

	money := []struct {
		name  string
		value decimal.Decimal
	}{
		{"sale_price", p.SalePrice},
		{"purchase_price", p.PurchasePrice},
		{"logistics_fee", p.LogisticsFeePerUnit},
		{"starting_capital", p.StartingCapital},
		{"marketing_monthly", p.MarketingMonthly},
		{"aggressive_surcharge", p.AggressiveSurcharge},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			return &engine.ParameterError{Field: m.name, Reason: "monetary value must be non-negative"}
		}
	}

	if !p.AdvanceDiscount.IsPositive() {
		return &engine.ParameterError{Field: "advance_discount", Reason: "factor must be positive"}
	}
	if !p.InstallmentSurcharge.IsPositive() {
		return &engine.ParameterError{Field: "installment_surcharge", Reason: "factor must be positive"}
	}
	if p.MarketSize <= 0 {
		return &engine.ParameterError{Field: "market_size", Reason: "must be positive"}
	}

	for _, loc := range []engine.Location{engine.LocationHillside, engine.LocationBeachfront} {
		site, ok := p.Sites[loc]
		if !ok {
			return &engine.ParameterError{Field: "sites", Reason: "missing profile for " + string(loc)}
		}
		if site.MonthlyRent.IsNegative() || site.FurnitureInvestment.IsNegative() {
			return &engine.ParameterError{Field: "sites", Reason: "monetary value must be non-negative for " + string(loc)}
		}
		if site.FurnitureLifeMonths <= 0 {
			return &engine.ParameterError{Field: "sites", Reason: "furniture life must be positive for " + string(loc)}
		}

		shares, ok := p.BaseShares[loc]
		if !ok {
			return &engine.ParameterError{Field: "base_shares", Reason: "missing curve for " + string(loc)}
		}
		for _, s := range shares {
			if s.IsNegative() || s.GreaterThan(one) {
				return &engine.ParameterError{Field: "base_shares", Reason: "share must be within [0,1]"}
			}
		}
	}

	for _, plan := range []engine.MarketingPlan{engine.MarketingConservative, engine.MarketingAggressive} {
		lift, ok := p.MarketingLift[plan]
		if !ok || !lift.IsPositive() {
			return &engine.ParameterError{Field: "marketing_lift", Reason: "missing or non-positive lift for " + string(plan)}
		}
	}
	for _, policy := range []engine.ReceivablesPolicy{engine.ReceiveCashOnly, engine.ReceiveCard, engine.ReceiveBilled} {
		lift, ok := p.DemandLift[policy]
		if !ok || !lift.IsPositive() {
			return &engine.ParameterError{Field: "demand_lift", Reason: "missing or non-positive lift for " + string(policy)}
		}
	}

	switch p.Proration {
	case engine.ProrationFaithful, engine.ProrationCorrected:
	default:
		return &engine.ParameterError{Field: "proration", Reason: "unknown mode " + string(p.Proration)}
	}

	return nil
}
