package constants

import (
	"strings"
)

// ProviderCategory is the closed set of provider kinds a receipt can be
// attributed to. The empty string means "not determined".
type ProviderCategory string

const (
	Physician  ProviderCategory = "Physician"
	Pharmacy   ProviderCategory = "Pharmacy"
	Hospital   ProviderCategory = "Hospital"
	Specialist ProviderCategory = "Specialist"
)

var allCategories = []ProviderCategory{
	Physician,
	Pharmacy,
	Hospital,
	Specialist,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps free-form labels (including the German terms seen on
// receipts) onto the closed category set.
func Canonicalize(input string) (ProviderCategory, bool) {
	if input == "" {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]ProviderCategory{
		"arzt":        Physician,
		"praxis":      Physician,
		"hausarzt":    Physician,
		"doctor":      Physician,
		"apotheke":    Pharmacy,
		"pharmacy":    Pharmacy,
		"krankenhaus": Hospital,
		"klinik":      Hospital,
		"clinic":      Hospital,
		"facharzt":    Specialist,
		"zahnarzt":    Specialist,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return "", false
}
