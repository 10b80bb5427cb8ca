// Package patterns holds the versioned, ordered rule sets used to pull
// provider, amount and date candidates out of recognized receipt text.
// Rules target German receipts: day-first dates, comma decimals, German
// provider vocabulary. All matching runs on uppercased text.
package patterns

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/carelog/receipt-extract/constants"
)

// Version identifies the rule set; bump when rules or weights change so
// recorded confidences stay interpretable.
const Version = "2025.2"

// ProviderRule maps a text pattern to a provider category. The pattern's
// first capture group is the provider name candidate.
type ProviderRule struct {
	Pattern  *regexp.Regexp
	Category constants.ProviderCategory
	Weight   float64
}

// AmountRule captures one decimal-looking token per match (comma or dot
// decimal separator).
type AmountRule struct {
	Pattern *regexp.Regexp
}

// DateRule captures three digit groups; the position of the 4-digit group
// decides whether the match reads day-first or year-first.
type DateRule struct {
	Pattern *regexp.Regexp
}

// BonusRule adds a flat confidence bonus when its keyword occurs anywhere
// in the text.
type BonusRule struct {
	Keyword string
	Bonus   float64
}

// InstitutionRule is the override rule: when its keyword occurs, provider
// name and category are replaced unconditionally, whatever the provider
// rules matched before.
type InstitutionRule struct {
	Keyword  string
	Name     string
	Category constants.ProviderCategory
	Bonus    float64
}

// Library is an ordered collection of extraction rules. Order matters for
// Provider (first match wins) and Date (first accepted candidate wins);
// Amount rules are all tried and the maximum plausible value wins.
type Library struct {
	Version     string
	Provider    []ProviderRule
	Amount      []AmountRule
	Date        []DateRule
	Bonus       []BonusRule
	Institution []InstitutionRule

	// AmountWeight and DateWeight are the flat confidence contributions
	// of a set amount/date field.
	AmountWeight float64
	DateWeight   float64
}

// Plausibility bounds for amount candidates; values outside are OCR
// artifacts or unrelated numbers (invoice ids, postal codes).
var (
	MinPlausibleAmount = decimal.RequireFromString("0.01")
	MaxPlausibleAmount = decimal.RequireFromString("10000.00")
)

// Accepted year window for date candidates.
const (
	MinYear = 2020
	MaxYear = 2030
)

// Default returns the built-in German rule set.
func Default() *Library {
	return &Library{
		Version: Version,
		Provider: []ProviderRule{
			// Most specific first: specialist vocabulary beats the generic
			// physician line patterns.
			{regexp.MustCompile(`(?m)^\s*([^\n]*(?:FACHARZT|ZAHNARZT|ORTHOPÄDIE|RADIOLOGIE|DERMATOLOGIE)[^\n]*)`), constants.Specialist, 0.5},
			{regexp.MustCompile(`(?m)^\s*(DR\.\s*MED\.[^\n]+)`), constants.Physician, 0.5},
			{regexp.MustCompile(`(?m)^\s*([^\n]*(?:ARZTPRAXIS|PRAXIS|HAUSARZT)[^\n]*)`), constants.Physician, 0.5},
			{regexp.MustCompile(`(?m)^\s*([^\n]*APOTHEKE[^\n]*)`), constants.Pharmacy, 0.5},
			{regexp.MustCompile(`(?m)^\s*([^\n]*(?:KRANKENHAUS|KLINIKUM|KLINIK)[^\n]*)`), constants.Hospital, 0.5},
		},
		Amount: []AmountRule{
			{regexp.MustCompile(`(?:SUMME|GESAMTBETRAG|GESAMT|BETRAG|TOTAL|ZU ZAHLEN)\s*:?\s*(\d{1,5}[.,]\d{2})`)},
			{regexp.MustCompile(`(\d{1,5}[.,]\d{2})\s*(?:€|EUR)`)},
			{regexp.MustCompile(`(?:€|EUR)\s*(\d{1,5}[.,]\d{2})`)},
			{regexp.MustCompile(`\b(\d{1,5}[.,]\d{2})\b`)},
		},
		Date: []DateRule{
			// Day-first, local convention: 15.03.2024 or 15/03/2024.
			{regexp.MustCompile(`\b(\d{1,2})[./](\d{1,2})[./](\d{4})\b`)},
			// ISO: 2024-03-15.
			{regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)},
		},
		Bonus: []BonusRule{
			{Keyword: "REZEPT", Bonus: 0.2},
			{Keyword: "QUITTUNG", Bonus: 0.2},
			{Keyword: "BELEG", Bonus: 0.2},
			{Keyword: "ZUZAHLUNG", Bonus: 0.2},
			{Keyword: "PATIENT", Bonus: 0.2},
			{Keyword: "GEBÜHR", Bonus: 0.2},
		},
		Institution: []InstitutionRule{
			{Keyword: "MALTESER", Name: "MALTESER HILFSDIENST", Category: constants.Hospital, Bonus: 0.9},
		},
		AmountWeight: 0.5,
		DateWeight:   0.4,
	}
}
