package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var currencyReplacer = strings.NewReplacer("$", "", "£", "", "€", "", ",", "", " ", "")

// NormalizeMoney converts a currency-formatted value ("$1,234.56",
// "(12.00)") into a decimal string with two places. Parentheses denote an
// accounting negative. The second return value is false when the input
// could not be parsed, in which case "0" is returned.
func NormalizeMoney(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "0", false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = currencyReplacer.Replace(s)
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return "0", false
	}
	if negative {
		d = d.Neg()
	}
	return d.StringFixed(2), true
}

var monthsByAbbrev = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// fallback layouts tried after ISO and the "D MMM YYYY" month table
var genericDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"2006/01/02",
	"January 2, 2006",
	"2 January 2006",
}

// NormalizeDate converts a date string into ISO "YYYY-MM-DD". Attempted
// in order: ISO passthrough, "D MMM YYYY" via the month table, the
// generic layouts. Unparseable dates default to today; the second return
// value is false in that case so callers can attach a warning. A date
// never causes a row to be rejected.
func NormalizeDate(raw string, today time.Time) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return today.Format("2006-01-02"), false
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02"), true
	}

	if iso, ok := parseDayMonthYear(s); ok {
		return iso, true
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return today.Format("2006-01-02"), false
}

// parseDayMonthYear handles the "11 Jan 2025" pattern with an explicit
// month-abbreviation table.
func parseDayMonthYear(s string) (string, bool) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return "", false
	}

	day, ok := parsePositiveInt(parts[0])
	if !ok || day < 1 || day > 31 {
		return "", false
	}

	abbrev := strings.ToLower(parts[1])
	if len(abbrev) > 3 {
		abbrev = abbrev[:3]
	}
	month, ok := monthsByAbbrev[abbrev]
	if !ok {
		return "", false
	}

	year, ok := parsePositiveInt(parts[2])
	if !ok || year < 1000 || year > 9999 {
		return "", false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject rollovers such as "31 Feb 2025".
	if t.Day() != day || t.Month() != month {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// NormalizeBool maps a case-insensitive "yes" or "true" to true and
// anything else to false.
func NormalizeBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true":
		return true
	}
	return false
}

// NormalizeInt parses a whole number, tolerating surrounding whitespace.
// The second return value is false when the input is not an integer.
func NormalizeInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

func parsePositiveInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
