// Package env has small helpers for reading process environment values.
package env

import "os"

// Get reads key from the environment, falling back when it is unset or
// empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
