package patterns

import (
	"strings"

	"github.com/carelog/receipt-extract/constants"
)

// minProviderNameLen rejects matches that are too short to be a real
// provider name after whitespace normalization (stray OCR fragments).
const minProviderNameLen = 4

// ProviderMatch is one accepted provider candidate.
type ProviderMatch struct {
	Name     string
	Category constants.ProviderCategory
	Weight   float64
}

// MatchProvider tries the provider rules in declaration order against the
// uppercased text and returns the first plausible match. A rule whose
// captured name normalizes to fewer than four characters counts as no match
// and falls through to the next rule.
func (l *Library) MatchProvider(upper string) (ProviderMatch, bool) {
	for _, rule := range l.Provider {
		m := rule.Pattern.FindStringSubmatch(upper)
		if len(m) < 2 {
			continue
		}
		name := normalizeName(m[1])
		if len([]rune(name)) < minProviderNameLen {
			continue
		}
		return ProviderMatch{Name: name, Category: rule.Category, Weight: rule.Weight}, true
	}
	return ProviderMatch{}, false
}

// MatchInstitution checks the institution override rules. Evaluated after
// MatchProvider; a hit replaces name and category unconditionally.
func (l *Library) MatchInstitution(upper string) (InstitutionRule, bool) {
	for _, rule := range l.Institution {
		if strings.Contains(upper, rule.Keyword) {
			return rule, true
		}
	}
	return InstitutionRule{}, false
}

// BonusFor sums the flat bonuses of all context keywords present in the text.
func (l *Library) BonusFor(upper string) float64 {
	var total float64
	for _, rule := range l.Bonus {
		if strings.Contains(upper, rule.Keyword) {
			total += rule.Bonus
		}
	}
	return total
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
