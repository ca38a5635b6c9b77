package peek

import (
	"database/sql"
	"testing"
)

func valid(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name string
		date sql.NullString
		want string
	}{
		{"iso date", valid("1987-06-01"), "1987"},
		{"year only", valid("1991"), "1991"},
		{"trailing year", valid("12/1987"), "1987"},
		{"two digit year", valid("12/85"), ""},
		{"no digits", valid("no date"), ""},
		{"empty", valid(""), ""},
		{"null", sql.NullString{}, ""},
		{"longer digit run keeps first four", valid("19875"), "1987"},
		{"first match wins", valid("1990 (re-release 1995)"), "1990"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractYear(tt.date); got != tt.want {
				t.Errorf("ExtractYear(%q) = %q, want %q", tt.date.String, got, tt.want)
			}
		})
	}
}

func TestNormalizeGenre(t *testing.T) {
	tests := []struct {
		name  string
		genre sql.NullString
		want  string
	}{
		{"single", valid("Action"), "Action"},
		{"list with spaces", valid(" Action, RPG ,Platform"), "Action|RPG|Platform"},
		{"empty segment kept", valid("Action,,RPG"), "Action||RPG"},
		{"empty", valid(""), ""},
		{"null", sql.NullString{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeGenre(tt.genre); got != tt.want {
				t.Errorf("NormalizeGenre(%q) = %q, want %q", tt.genre.String, got, tt.want)
			}
		})
	}
}

func TestCleanField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme, Inc.", "Acme Inc."},
		{"  Nintendo  ", "Nintendo"},
		{",,,", ""},
		{" Sega, Ltd., Japan ", "Sega Ltd. Japan"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanField(tt.in); got != tt.want {
				t.Errorf("CleanField(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
