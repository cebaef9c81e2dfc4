package output

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleLabel turns "content_type" into "Content Type".
func TitleLabel(s string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(s, "_", " "))
}

// Percent returns part as a percentage of whole, 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
