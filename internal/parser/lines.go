package parser

import (
	"regexp"
	"strings"
)

// phoneNumberPattern is the only shape of number jcadmin will mutate.
var phoneNumberPattern = regexp.MustCompile(`^[0-9]{7,11}$`)

// IsPhoneNumber reports whether s is a 7 to 11 digit phone number.
func IsPhoneNumber(s string) bool {
	return phoneNumberPattern.MatchString(s)
}

// SplitLines splits file text into lines. The empty string after a final
// newline is not a line, and a trailing carriage return is dropped.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
