// Package classifier decides whether a number is currently safe, blocked or
// neutral given the whitelist and blacklist pattern tables.
package classifier

import (
	"strings"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
)

// Matcher reports whether a pattern applies to a call's number or caller ID.
type Matcher func(pattern, number, callerID string) bool

// SubstringMatch matches when the pattern occurs anywhere in the number or
// in the caller ID text, the way the device screens calls.
func SubstringMatch(pattern, number, callerID string) bool {
	return strings.Contains(number, pattern) || strings.Contains(callerID, pattern)
}

// ExactMatch matches when the pattern equals the number.
func ExactMatch(pattern, number, _ string) bool {
	return pattern == number
}

// MatcherFor returns the matcher for a configured match mode. Unknown modes
// fall back to substring matching.
func MatcherFor(mode string) Matcher {
	if mode == constants.MatchModeExact {
		return ExactMatch
	}
	return SubstringMatch
}

// Classifier evaluates numbers against pattern tables.
type Classifier struct {
	match Matcher
}

// New creates a Classifier for the given match mode.
func New(mode string) *Classifier {
	return &Classifier{match: MatcherFor(mode)}
}

// Status returns safe if any whitelist pattern matches, otherwise blocked if
// any blacklist pattern matches, otherwise neutral. Empty patterns never match.
func (c *Classifier) Status(number, callerID string, safe, blocked map[string]string) models.Status {
	if c.anyMatch(safe, number, callerID) {
		return models.StatusSafe
	}
	if c.anyMatch(blocked, number, callerID) {
		return models.StatusBlocked
	}
	return models.StatusNeutral
}

func (c *Classifier) anyMatch(table map[string]string, number, callerID string) bool {
	for pattern := range table {
		if pattern == "" {
			continue
		}
		if c.match(pattern, number, callerID) {
			return true
		}
	}
	return false
}
