/*
normalize.go - case/accent-insensitive canonicalization of categorical input

PURPOSE:
  The submission form is free text at the edges: "À vista", "a Vista" and
  "avista" must all resolve to the same canonical value. Canonicalize
  strips diacritics (NFD, drop combining marks), lower-cases and removes
  all whitespace; the Parse* functions then match against a closed alias
  table. Anything that does not match fails with ErrInvalidChoice before
  any computation happens.

  Canonicalize is idempotent and every alias the original form offered
  (Portuguese labels included) maps to exactly one enumeration member.
*/
package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Canonicalize returns the lower-cased, accent-free, whitespace-free form
// of s. Safe to apply twice.
func Canonicalize(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		stripped = s
	}
	stripped = strings.ToLower(stripped)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, stripped)
}

// Alias tables. Keys are canonical forms; the Portuguese entries cover the
// labels of the original submission form.
var (
	locationAliases = map[string]Location{
		"hillside":     LocationHillside,
		"serra":        LocationHillside,
		"beachfront":   LocationBeachfront,
		"praiadocanto": LocationBeachfront,
	}

	marketingAliases = map[string]MarketingPlan{
		"conservative": MarketingConservative,
		"conservador":  MarketingConservative,
		"aggressive":   MarketingAggressive,
		"agressivo":    MarketingAggressive,
	}

	receivablesAliases = map[string]ReceivablesPolicy{
		"cashonly":  ReceiveCashOnly,
		"cash_only": ReceiveCashOnly,
		"cash":      ReceiveCashOnly,
		"avista":    ReceiveCashOnly,
		"card":      ReceiveCard,
		"cartao":    ReceiveCard,
		"billed":    ReceiveBilled,
		"boleto":    ReceiveBilled,
	}

	termAliases = map[string]PaymentTerm{
		"cash":        PayCash,
		"avista":      PayCash,
		"installment": PayInstallment,
		"parcelado":   PayInstallment,
		"advance":     PayAdvance,
		"adiantado":   PayAdvance,
	}
)

// ParseLocation resolves a free-form location choice.
func ParseLocation(s string) (Location, error) {
	if v, ok := locationAliases[Canonicalize(s)]; ok {
		return v, nil
	}
	return "", &InvalidChoiceError{Field: "location", Input: s}
}

// ParseMarketing resolves a free-form marketing strategy choice.
func ParseMarketing(s string) (MarketingPlan, error) {
	if v, ok := marketingAliases[Canonicalize(s)]; ok {
		return v, nil
	}
	return "", &InvalidChoiceError{Field: "marketing", Input: s}
}

// ParseReceivables resolves a free-form receivables policy choice.
func ParseReceivables(s string) (ReceivablesPolicy, error) {
	if v, ok := receivablesAliases[Canonicalize(s)]; ok {
		return v, nil
	}
	return "", &InvalidChoiceError{Field: "receivables", Input: s}
}

// ParsePaymentTerm resolves a free-form supplier payment term choice.
func ParsePaymentTerm(s string) (PaymentTerm, error) {
	if v, ok := termAliases[Canonicalize(s)]; ok {
		return v, nil
	}
	return "", &InvalidChoiceError{Field: "payment term", Input: s}
}

// =============================================================================
// DECISION ASSEMBLY
// =============================================================================

// PurchaseInput is the raw form of one monthly purchase batch.
type PurchaseInput struct {
	Quantity int
	Term     string
}

// DecisionInput is the raw, unvalidated form of a submission.
type DecisionInput struct {
	Location    string
	Marketing   string
	Receivables string
	Purchases   [HorizonMonths]PurchaseInput
}

// ParseDecision validates and canonicalizes raw input into a Decision.
// Every categorical field must resolve against its alias table and every
// quantity must be non-negative.
func ParseDecision(in DecisionInput) (Decision, error) {
	var d Decision
	var err error

	if d.Location, err = ParseLocation(in.Location); err != nil {
		return Decision{}, err
	}
	if d.Marketing, err = ParseMarketing(in.Marketing); err != nil {
		return Decision{}, err
	}
	if d.Receivables, err = ParseReceivables(in.Receivables); err != nil {
		return Decision{}, err
	}
	for i, p := range in.Purchases {
		if p.Quantity < 0 {
			return Decision{}, &InvalidQuantityError{Month: Month(i + 1), Quantity: p.Quantity}
		}
		term, err := ParsePaymentTerm(p.Term)
		if err != nil {
			return Decision{}, err
		}
		d.Purchases[i] = PurchaseOrder{Quantity: p.Quantity, Term: term}
	}
	return d, nil
}
