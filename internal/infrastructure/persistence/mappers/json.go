// Package mappers converts between domain entities and gorm models.
package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func marshalJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}

func unmarshalJSON(raw datatypes.JSON, dest any, what string, id uint) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s (id=%d): %w", what, id, err)
	}
	return nil
}
