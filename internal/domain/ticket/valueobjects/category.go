package valueobjects

import (
	"fmt"
	"strings"
)

const (
	CategoryGeneral   = "GENERAL"
	maxCategoryLength = 50
)

// NormalizeCategory upper-cases a free-text category. Empty means GENERAL.
func NormalizeCategory(s string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if c == "" {
		return CategoryGeneral, nil
	}
	if len(c) > maxCategoryLength {
		return "", fmt.Errorf("category exceeds maximum length of %d characters", maxCategoryLength)
	}
	return strings.ReplaceAll(c, " ", "_"), nil
}
