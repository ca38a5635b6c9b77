package peek

import (
	"database/sql"
	"regexp"
	"strings"
)

var yearPattern = regexp.MustCompile(`[0-9]{4}`)

// ExtractYear returns the first run of four digits in a free text release
// date. "1987-06-01" and "12/1987" both give "1987"; "12/85" gives "".
func ExtractYear(date sql.NullString) string {
	if !date.Valid {
		return ""
	}
	return yearPattern.FindString(date.String)
}

// NormalizeGenre turns a comma separated genre list into a pipe separated one.
func NormalizeGenre(genre sql.NullString) string {
	if !genre.Valid {
		return ""
	}
	parts := strings.Split(genre.String, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, "|")
}

// CleanField prepares a value for a report column: surrounding whitespace is
// trimmed and every comma is removed.
func CleanField(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}
