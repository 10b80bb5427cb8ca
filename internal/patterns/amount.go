package patterns

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CollectAmounts runs ALL amount rules (no first-match-wins here), parses
// every captured token and keeps the ones inside the plausible range.
// The caller picks the maximum: the grand total is usually the largest
// number on a receipt, printed after the subtotal lines.
func (l *Library) CollectAmounts(upper string) []decimal.Decimal {
	var out []decimal.Decimal
	for _, rule := range l.Amount {
		for _, m := range rule.Pattern.FindAllStringSubmatch(upper, -1) {
			if len(m) < 2 {
				continue
			}
			v, err := parseAmountToken(m[1])
			if err != nil {
				continue
			}
			if v.LessThan(MinPlausibleAmount) || v.GreaterThan(MaxPlausibleAmount) {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

// MaxAmount returns the largest plausible amount in the text.
func (l *Library) MaxAmount(upper string) (decimal.Decimal, bool) {
	candidates := l.CollectAmounts(upper)
	if len(candidates) == 0 {
		return decimal.Zero, false
	}
	max := candidates[0]
	for _, c := range candidates[1:] {
		if c.GreaterThan(max) {
			max = c
		}
	}
	return max, true
}

// parseAmountToken parses a decimal-looking token with either comma or dot
// as the decimal separator.
func parseAmountToken(tok string) (decimal.Decimal, error) {
	tok = strings.ReplaceAll(tok, ",", ".")
	return decimal.NewFromString(tok)
}
