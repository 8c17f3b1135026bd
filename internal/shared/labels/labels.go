// Package labels turns enum values such as IN_PROGRESS into display labels.
package labels

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize converts an upper snake case value to title case words:
// IN_PROGRESS becomes "In Progress".
func Humanize(value string) string {
	if value == "" {
		return ""
	}
	words := strings.ToLower(strings.ReplaceAll(value, "_", " "))
	// cases.Caser is stateful, so a fresh one per call
	return cases.Title(language.English).String(words)
}
