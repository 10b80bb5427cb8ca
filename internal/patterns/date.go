package patterns

import (
	"strconv"
	"time"
)

// MatchDate scans the date rules in declaration order and, within a rule,
// occurrences in text order. The digit-group lengths decide the reading: a
// 4-digit final group means day-first, a 4-digit first group year-first.
// The first candidate passing the range checks (day 1-31, month 1-12, year
// 2020-2030) wins; invalid candidates are skipped, not errors.
func (l *Library) MatchDate(upper string) (time.Time, bool) {
	for _, rule := range l.Date {
		for _, m := range rule.Pattern.FindAllStringSubmatch(upper, -1) {
			if len(m) < 4 {
				continue
			}
			day, month, year, ok := readDigitGroups(m[1], m[2], m[3])
			if !ok {
				continue
			}
			if day < 1 || day > 31 || month < 1 || month > 12 || year < MinYear || year > MaxYear {
				continue
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func readDigitGroups(g1, g2, g3 string) (day, month, year int, ok bool) {
	a, err1 := strconv.Atoi(g1)
	b, err2 := strconv.Atoi(g2)
	c, err3 := strconv.Atoi(g3)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	switch {
	case len(g3) == 4: // DD.MM.YYYY
		return a, b, c, true
	case len(g1) == 4: // YYYY-MM-DD
		return c, b, a, true
	default:
		return 0, 0, 0, false
	}
}
