// Package utils provides utility functions and helpers for common operations
// used throughout the application. It includes error types, the API response
// envelope, request validation and logging.
package utils

import (
	"strconv"
	"strings"
)

// ParseNonNegativeInt parses a path or flag value as a non-negative integer,
// falling back to defaultValue when the value is empty.
//
// Parameters:
//   - field: the parameter name, used in the validation error
//   - s: the raw value
//   - defaultValue: the value returned for an empty string
//
// Returns:
//   - the parsed value
//   - a validation error if s is not a non-negative integer
func ParseNonNegativeInt(field, s string, defaultValue int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(s)
	if err != nil || value < 0 {
		return 0, NewValidationError(field, "Must be a non-negative integer")
	}
	return value, nil
}
