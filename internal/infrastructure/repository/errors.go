// Package repository implements the domain repositories on gorm.
// Lookups by key return (nil, nil) when the row does not exist.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func nullableEq(column string, v *uint) (string, []any) {
	if v == nil {
		return column + " IS NULL", nil
	}
	return column + " = ?", []any{*v}
}
