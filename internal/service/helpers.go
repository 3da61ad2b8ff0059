package service

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// parseDate converts an ISO date string to a time pointer. Empty input
// means the field was not supplied.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// money normalizes a decimal string to two places, falling back to zero
// for empty or malformed input. Amounts are stored as strings end to end.
func money(s string) string {
	if s == "" {
		return "0.00"
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

// rate normalizes a percentage string, keeping up to three places.
func rate(s string) string {
	if s == "" {
		return "0"
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "0"
	}
	return d.String()
}

// quantity normalizes a quantity string to two places, defaulting to one.
func quantity(s string) string {
	if s == "" {
		return "1.00"
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "1.00"
	}
	return d.StringFixed(2)
}
