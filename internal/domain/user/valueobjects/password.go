package valueobjects

import (
	"fmt"
	"unicode"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72
)

// ValidatePassword enforces length and requires a letter and a digit.
func ValidatePassword(plain string) error {
	if len(plain) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(plain) > maxPasswordBytes {
		return fmt.Errorf("password cannot exceed %d bytes", maxPasswordBytes)
	}
	var letter, digit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}
