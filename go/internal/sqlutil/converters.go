package sqlutil

import (
	"database/sql"

	"github.com/google/uuid"
)

// Helpers for converting between Go types and sql/uuid null wrappers.

// ToNullUUID converts a UUID pointer to uuid.NullUUID.
func ToNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// FromNullString returns the string value, or the fallback when null.
func FromNullString(val sql.NullString, fallback string) string {
	if val.Valid {
		return val.String
	}
	return fallback
}
