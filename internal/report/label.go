package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser converts snake_case field identifiers into display labels.
// Shared by the simple and markdown writers.
var titleCaser = cases.Title(language.English)

// fieldLabel turns a field path like "skinfolds_mm.triceps" or a code
// like "five_component" into a display label ("Skinfolds Mm: Triceps"
// would be wrong, so unit suffixes are stripped first).
func fieldLabel(field string) string {
	if field == "" {
		return "-"
	}

	field = strings.TrimSuffix(field, "_mm")
	field = strings.TrimSuffix(field, "_cm")
	field = strings.TrimSuffix(field, "_kg")
	field = strings.TrimSuffix(field, "_years")
	field = strings.ReplaceAll(field, "_mm.", " · ")
	field = strings.ReplaceAll(field, "_cm.", " · ")
	field = strings.ReplaceAll(field, ".", " · ")
	field = strings.ReplaceAll(field, "_", " ")

	return titleCaser.String(field)
}
