// Package importer implements the CSV parsing, format detection and field
// mapping pipeline behind the data-import endpoints. It is pure data
// transformation; persistence stays in the service layer.
package importer

import "strings"

// SplitLine tokenizes one CSV line into trimmed field values.
//
// A double quote toggles the in-quote state; commas inside quotes are
// literal content. There is no "" escaping. An unterminated quote is
// lenient: the remainder of the line becomes part of the current field
// and no error is raised.
func SplitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// SplitLines normalizes line endings, strips a UTF-8 BOM and returns the
// file's lines. Trailing empty lines are dropped; interior blank lines
// are kept so header row offsets stay stable.
func SplitLines(content string) []string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// isBlankRow reports whether every field of a row is empty.
func isBlankRow(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
