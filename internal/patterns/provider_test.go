package patterns

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelog/receipt-extract/constants"
)

func TestMatchProvider(t *testing.T) {
	lib := Default()

	tests := []struct {
		name     string
		text     string
		wantName string
		wantCat  constants.ProviderCategory
		ok       bool
	}{
		{
			name:     "physician by title line",
			text:     "DR. MED. ANNA MÜLLER\nKASSENÄRZTLICHE VERSORGUNG",
			wantName: "DR. MED. ANNA MÜLLER",
			wantCat:  constants.Physician,
			ok:       true,
		},
		{
			name:     "pharmacy line",
			text:     "ADLER APOTHEKE BERLIN\nREZEPTGEBÜHR",
			wantName: "ADLER APOTHEKE BERLIN",
			wantCat:  constants.Pharmacy,
			ok:       true,
		},
		{
			name:     "hospital line",
			text:     "STÄDTISCHES KLINIKUM MITTE",
			wantName: "STÄDTISCHES KLINIKUM MITTE",
			wantCat:  constants.Hospital,
			ok:       true,
		},
		{
			name:     "specialist declared before generic physician",
			text:     "DR. MED. WEBER FACHARZT FÜR ORTHOPÄDIE",
			wantName: "DR. MED. WEBER FACHARZT FÜR ORTHOPÄDIE",
			wantCat:  constants.Specialist,
			ok:       true,
		},
		{
			name: "no provider vocabulary",
			text: "IRGENDEIN TEXT OHNE TREFFER",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lib.MatchProvider(tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.wantName, got.Name)
				assert.Equal(t, tt.wantCat, got.Category)
				assert.Greater(t, got.Weight, 0.0)
			}
		})
	}
}

func TestMatchProviderShortNameFallsThrough(t *testing.T) {
	// A rule whose capture normalizes to fewer than 4 characters counts as
	// no match; the scan continues with the next rule.
	lib := &Library{
		Provider: []ProviderRule{
			{regexp.MustCompile(`ID:\s*(\S+)`), constants.Physician, 0.5},
			{regexp.MustCompile(`(APOTHEKE\s+\S+)`), constants.Pharmacy, 0.5},
		},
	}

	got, ok := lib.MatchProvider("ID: X7\nAPOTHEKE NORD")
	require.True(t, ok)
	assert.Equal(t, "APOTHEKE NORD", got.Name)
	assert.Equal(t, constants.Pharmacy, got.Category)
}

func TestMatchInstitutionAndBonuses(t *testing.T) {
	lib := Default()

	inst, ok := lib.MatchInstitution("MALTESER HILFSDIENST E.V. QUITTUNG")
	require.True(t, ok)
	assert.Equal(t, constants.Hospital, inst.Category)
	assert.NotEmpty(t, inst.Name)
	assert.Greater(t, inst.Bonus, 0.0)

	_, ok = lib.MatchInstitution("ADLER APOTHEKE")
	assert.False(t, ok)

	// Bonuses are flat and additive per distinct keyword.
	single := lib.BonusFor("QUITTUNG")
	double := lib.BonusFor("QUITTUNG ÜBER EINE ZUZAHLUNG")
	assert.Greater(t, single, 0.0)
	assert.Greater(t, double, single)
	assert.Zero(t, lib.BonusFor("NICHTS MEDIZINISCHES"))
}
