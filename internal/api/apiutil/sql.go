package apiutil

import (
	"database/sql"
	"strings"
)

// NullString converts a request field to sql.NullString, treating blank
// strings as NULL.
func NullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// NullInt64 converts a request field to sql.NullInt64, treating zero as NULL.
// Row IDs start at one, so zero is the "not provided" sentinel throughout the
// API.
func NullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

// StringValue unwraps a nullable column for JSON responses, yielding "" for
// NULL.
func StringValue(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

// Int64Value unwraps a nullable column for JSON responses, yielding 0 for
// NULL.
func Int64Value(v sql.NullInt64) int64 {
	if !v.Valid {
		return 0
	}
	return v.Int64
}
