// Package analyze turns one block of recognized text into scored field
// candidates by applying the pattern library.
package analyze

import (
	"log/slog"
	"strings"

	"github.com/carelog/receipt-extract/internal/entity"
	"github.com/carelog/receipt-extract/internal/patterns"
)

// Analyzer applies the pattern library to recognized text. Deterministic
// and side-effect-free: identical text always yields an identical result.
type Analyzer struct {
	lib    *patterns.Library
	logger *slog.Logger
}

func New(lib *patterns.Library, logger *slog.Logger) *Analyzer {
	if lib == nil {
		lib = patterns.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{lib: lib, logger: logger}
}

// Analyze never fails: a field with no accepted match stays unset and
// contributes zero confidence. The returned confidence is the additive sum
// of all field contributions and domain bonuses.
func (a *Analyzer) Analyze(text string) entity.Result {
	upper := strings.ToUpper(text)
	var res entity.Result

	// Provider: first rule match wins.
	if m, ok := a.lib.MatchProvider(upper); ok {
		res.ProviderName = entity.NewField(m.Name, m.Weight)
		res.Category = entity.NewField(m.Category, 0)
	}

	// Amount: every rule, every match; maximum plausible value wins.
	if v, ok := a.lib.MaxAmount(upper); ok {
		res.Amount = entity.NewField(v, a.lib.AmountWeight)
	}

	// Date: first accepted candidate wins. A matched date is authoritative;
	// "today" is only a caller-side default for the unset case.
	if d, ok := a.lib.MatchDate(upper); ok {
		res.Date = entity.NewField(d, a.lib.DateWeight)
	}

	// Institution override runs last and replaces any provider match.
	if inst, ok := a.lib.MatchInstitution(upper); ok {
		res.ProviderName = entity.NewField(inst.Name, inst.Bonus)
		res.Category = entity.NewField(inst.Category, 0)
	}

	res.Confidence = res.ProviderName.Confidence +
		res.Amount.Confidence +
		res.Date.Confidence +
		a.lib.BonusFor(upper)

	a.logger.Debug("text analyzed",
		"rules_version", a.lib.Version,
		"provider_set", res.ProviderName.Set,
		"amount_set", res.Amount.Set,
		"date_set", res.Date.Set,
		"confidence", res.Confidence,
	)
	return res
}
