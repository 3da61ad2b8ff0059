package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMoney(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		parsed bool
	}{
		{"plain decimal", "45.00", "45.00", true},
		{"dollar sign and thousands separator", "$1,234.56", "1234.56", true},
		{"parenthetical negative", "(12.00)", "-12.00", true},
		{"parenthetical with symbol", "($99.50)", "-99.50", true},
		{"explicit negative", "-7.25", "-7.25", true},
		{"pound sign", "£20", "20.00", true},
		{"euro sign", "€3.5", "3.50", true},
		{"integer", "100", "100.00", true},
		{"empty defaults to zero", "", "0", false},
		{"garbage defaults to zero", "n/a", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parsed := NormalizeMoney(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.parsed, parsed)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	today := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		raw    string
		want   string
		parsed bool
	}{
		{"ISO passthrough", "2025-01-11", "2025-01-11", true},
		{"day month year", "11 Jan 2025", "2025-01-11", true},
		{"full month name", "11 January 2025", "2025-01-11", true},
		{"mixed case month", "3 DEC 2024", "2024-12-03", true},
		{"slash layout", "25/12/2024", "2024-12-25", true},
		{"impossible day rolls back to today", "31 Feb 2025", "2025-03-15", false},
		{"unparseable defaults to today", "sometime soon", "2025-03-15", false},
		{"empty defaults to today", "", "2025-03-15", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parsed := NormalizeDate(tt.raw, today)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.parsed, parsed)
		})
	}
}

func TestNormalizeDateNeverPanics(t *testing.T) {
	today := time.Now()
	for _, raw := range []string{"99 Zzz 0000", "   ", "1 2 3 4", "Jan", "-5 Jan 2025"} {
		assert.NotPanics(t, func() {
			got, _ := NormalizeDate(raw, today)
			assert.NotEmpty(t, got)
		})
	}
}

func TestNormalizeBool(t *testing.T) {
	assert.True(t, NormalizeBool("yes"))
	assert.True(t, NormalizeBool("YES"))
	assert.True(t, NormalizeBool("True"))
	assert.True(t, NormalizeBool(" true "))
	assert.False(t, NormalizeBool("no"))
	assert.False(t, NormalizeBool("1"))
	assert.False(t, NormalizeBool(""))
	assert.False(t, NormalizeBool("y"))
}

func TestNormalizeInt(t *testing.T) {
	n, ok := NormalizeInt(" 42 ")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = NormalizeInt("Total")
	assert.False(t, ok)

	_, ok = NormalizeInt("")
	assert.False(t, ok)
}
