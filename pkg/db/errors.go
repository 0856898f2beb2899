package db

import "strings"

// IsUniqueViolation reports whether err came from a Postgres unique index.
// With a constraint name it matches that specific constraint, otherwise any
// duplicate-key failure counts. SQLite in tests produces compatible text.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	text := err.Error()
	if constraintName != "" {
		return strings.Contains(text, constraintName)
	}
	return strings.Contains(text, "duplicate key value") ||
		strings.Contains(text, "UNIQUE constraint failed")
}
