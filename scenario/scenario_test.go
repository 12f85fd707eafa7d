package scenario_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopi/venture-engine/engine"
	"github.com/kopi/venture-engine/scenario"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBuiltinPresetsValidate(t *testing.T) {
	for _, p := range scenario.All() {
		assert.NoError(t, scenario.Validate(p), "preset %q", p.Name)
	}
}

func TestByName(t *testing.T) {
	classic, ok := scenario.ByName("classic")
	require.True(t, ok)
	assert.Equal(t, engine.ProrationFaithful, classic.Proration)
	assert.True(t, classic.AllowMonthOneAdvance)

	strict, ok := scenario.ByName("strict")
	require.True(t, ok)
	assert.Equal(t, engine.ProrationCorrected, strict.Proration)
	assert.False(t, strict.AllowMonthOneAdvance)

	_, ok = scenario.ByName("deluxe")
	assert.False(t, ok)
}

func TestPresetsAreIsolatedValues(t *testing.T) {
	// Mutating a returned preset must not leak into later calls.
	a := scenario.Classic()
	a.Sites[engine.LocationHillside] = engine.SiteProfile{}
	b := scenario.Classic()
	assert.False(t, b.Sites[engine.LocationHillside].MonthlyRent.IsZero(),
		"Classic() must return a fresh value each call")
}

const classicJSON = `{
  "name": "classic-2026",
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
  "sites": {
    "hillside":   {"rent": 10000, "furniture": 60000, "furniture_life_months": 120},
    "beachfront": {"rent": 50000, "furniture": 100000, "furniture_life_months": 120}
  },
  "base_shares":   {"hillside": [0.2, 0.4, 0.6], "beachfront": [0.6, 0.7, 0.8]},
  "marketing_lift": {"conservative": 1.1, "aggressive": 1.2},
  "demand_lift":    {"cash_only": 1.0, "card": 1.1, "billed": 1.15}
}`

func TestParseParameters_FullDocument(t *testing.T) {
	p, err := scenario.ParseParameters(classicJSON)
	require.NoError(t, err)

	assert.Equal(t, "classic-2026", p.Name)
	assert.True(t, p.SalePrice.Equal(dec("4000")))
	assert.True(t, p.Sites[engine.LocationBeachfront].FurnitureInvestment.Equal(dec("100000")))
	assert.True(t, p.DemandLift[engine.ReceiveBilled].Equal(dec("1.15")))

	// Omitted fields take the documented defaults.
	assert.Equal(t, 100, p.MarketSize)
	assert.Equal(t, engine.ProrationFaithful, p.Proration)
	assert.True(t, p.AllowMonthOneAdvance)
}

func TestParseParameters_AcceptsSubmissionAliases(t *testing.T) {
	// Location and policy keys go through the same normalizer the
	// submission form uses, so Portuguese spellings work.
	doc := `{
  "name": "aliased",
  "sale_price": 4000, "purchase_price": 2500,
  "advance_discount": 0.9, "installment_surcharge": 1.08,
  "logistics_fee": 500,
  "card_share": 0.3, "billed_share": 0.4,
  "card_fee_rate": 0.01, "default_rate": 0.1,
  "starting_capital": 50000, "overdraft_rate": 0.15,
  "marketing_monthly": 5000, "aggressive_surcharge": 10000,
  "sites": {
    "Serra":          {"rent": 10000, "furniture": 60000, "furniture_life_months": 120},
    "Praia do Canto": {"rent": 50000, "furniture": 100000, "furniture_life_months": 120}
  },
  "base_shares":   {"serra": [0.2, 0.4, 0.6], "praia do canto": [0.6, 0.7, 0.8]},
  "marketing_lift": {"conservador": 1.1, "agressivo": 1.2},
  "demand_lift":    {"à vista": 1.0, "cartão": 1.1, "boleto": 1.15}
}`
	p, err := scenario.ParseParameters(doc)
	require.NoError(t, err)
	assert.True(t, p.Sites[engine.LocationHillside].MonthlyRent.Equal(dec("10000")))
	assert.True(t, p.DemandLift[engine.ReceiveCard].Equal(dec("1.1")))
}

func TestParseParameters_RejectsInvalidDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"malformed JSON", `{"name": `},
		{"missing name", `{"sale_price": 4000}`},
		{"unknown location key", `{"name": "x", "sites": {"downtown": {}}}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := scenario.ParseParameters(c.doc)
			assert.Error(t, err)
		})
	}
}

func TestParseParameters_ValidatesNumbers(t *testing.T) {
	// A share above 1 survives JSON decoding but must fail validation.
	doc := `{
  "name": "broken",
  "sale_price": 4000, "purchase_price": 2500,
  "advance_discount": 0.9, "installment_surcharge": 1.08,
  "logistics_fee": 500,
  "card_share": 1.3, "billed_share": 0.4,
  "card_fee_rate": 0.01, "default_rate": 0.1,
  "starting_capital": 50000, "overdraft_rate": 0.15,
  "marketing_monthly": 5000, "aggressive_surcharge": 10000,
  "sites": {
    "hillside":   {"rent": 10000, "furniture": 60000, "furniture_life_months": 120},
    "beachfront": {"rent": 50000, "furniture": 100000, "furniture_life_months": 120}
  },
  "base_shares":   {"hillside": [0.2, 0.4, 0.6], "beachfront": [0.6, 0.7, 0.8]},
  "marketing_lift": {"conservative": 1.1, "aggressive": 1.2},
  "demand_lift":    {"cash_only": 1.0, "card": 1.1, "billed": 1.15}
}`
	_, err := scenario.ParseParameters(doc)
	require.Error(t, err)

	var perr *engine.ParameterError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "card_share", perr.Field)
	assert.True(t, errors.Is(err, engine.ErrInvalidParameters))
}
