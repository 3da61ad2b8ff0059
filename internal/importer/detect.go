package importer

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies one of the known source file layouts. Detection
// happens once per file; the chosen value is threaded explicitly to the
// mapper instead of being re-derived at each call site.
type Format string

const (
	FormatGeneric             Format = "generic"
	FormatBakeDiaryContacts   Format = "bake_diary_contacts"
	FormatBakeDiaryOrders     Format = "bake_diary_orders"
	FormatBakeDiaryOrderItems Format = "bake_diary_order_items"
	FormatBakeDiaryExpenses   Format = "bake_diary_expenses"
)

// bakeDiaryMarker is the brand string Bake Diary writes into the title
// area of its exports, above the actual column headers.
const bakeDiaryMarker = "bake diary"

// markerScanLines bounds how far into the file the marker scan looks.
const markerScanLines = 4

var ErrEmptyFile = errors.New("file is empty")

// Detection is the outcome of classifying a file: which mapping table to
// use and which line holds the column headers.
type Detection struct {
	Format    Format
	HeaderRow int
}

// Detect classifies file content into one of the known formats. Bake
// Diary exports carry a brand marker in the first few lines with the
// header row below it; anything else is treated as a generic CSV with
// headers on the first line. Files too short for the detected layout
// yield a descriptive error rather than an index fault.
func Detect(content string) (Detection, error) {
	lines := SplitLines(content)
	if len(lines) == 0 {
		return Detection{}, ErrEmptyFile
	}

	markerLine := -1
	limit := markerScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		if strings.Contains(strings.ToLower(lines[i]), bakeDiaryMarker) {
			markerLine = i
			break
		}
	}

	if markerLine < 0 {
		if len(lines) < 2 {
			return Detection{}, fmt.Errorf("file has no data rows (%d line)", len(lines))
		}
		return Detection{Format: FormatGeneric, HeaderRow: 0}, nil
	}

	// Marker found: the header row is the first following line that
	// looks like a known Bake Diary header set.
	for i := markerLine + 1; i < len(lines); i++ {
		headers := SplitLine(lines[i])
		if isBlankRow(headers) {
			continue
		}
		if format, ok := classifyBakeDiaryHeaders(headers); ok {
			if i+1 >= len(lines) {
				return Detection{}, fmt.Errorf("file has headers on line %d but no data rows", i+1)
			}
			return Detection{Format: format, HeaderRow: i}, nil
		}
	}

	return Detection{}, errors.New("file carries a Bake Diary marker but no recognizable header row")
}

// classifyBakeDiaryHeaders picks the Bake Diary sub-format from the
// header keywords present.
func classifyBakeDiaryHeaders(headers []string) (Format, bool) {
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[strings.ToLower(strings.TrimSpace(h))] = true
	}

	switch {
	case seen["order number"] && (seen["item"] || seen["item name"]):
		return FormatBakeDiaryOrderItems, true
	case seen["order number"]:
		return FormatBakeDiaryOrders, true
	case seen["first name"] || seen["last name"]:
		return FormatBakeDiaryContacts, true
	case seen["amount"] || seen["amount (incl vat)"]:
		return FormatBakeDiaryExpenses, true
	}
	return "", false
}
