// Package patternlist edits the text of a jcblock pattern list (whitelist.dat
// or blacklist.dat). All functions are pure: they take the file content and
// return the new content, leaving I/O to the caller.
//
// Matching here is exact: a record belongs to number only if its pattern is
// exactly number. Substring matching is the classifier's concern.
package patternlist

import (
	"strings"

	"github.com/yasinhessnawi1/jcadmin/internal/models"
	"github.com/yasinhessnawi1/jcadmin/internal/parser"
)

// Contains reports whether the list has a record whose pattern is number.
func Contains(text, number string) bool {
	for _, line := range parser.SplitLines(text) {
		if rec, ok := parser.ParsePatternLine(line); ok && rec.Pattern == number {
			return true
		}
	}
	return false
}

// Remove drops every record whose pattern is number. Comment lines, short
// lines and other records are kept byte for byte. changed is false, and
// updated equals text, when no record matched.
func Remove(text, number string) (updated string, changed bool) {
	if text == "" {
		return text, false
	}

	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	b.Grow(len(text))
	for _, raw := range lines {
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if rec, ok := parser.ParsePatternLine(line); ok && rec.Pattern == number {
			changed = true
			continue
		}
		b.WriteString(raw)
	}

	if !changed {
		return text, false
	}
	return b.String(), true
}

// AppendIfAbsent adds a record for number with the given comment at the end
// of the list, unless one already exists. A final line without a newline is
// terminated first so the new record starts on its own line.
func AppendIfAbsent(text, number, comment string) (updated string, changed bool) {
	if Contains(text, number) {
		return text, false
	}
	return text + Suffix(text, number, comment), true
}

// Suffix returns the bytes AppendIfAbsent adds to text for a new record. It
// lets callers append to the file in place instead of rewriting it.
func Suffix(text, number, comment string) string {
	record := parser.FormatPatternLine(number, comment)
	if text != "" && !strings.HasSuffix(text, "\n") {
		return "\n" + record
	}
	return record
}

// Records returns the list's records in file order.
func Records(text string) []*models.PatternRecord {
	records := make([]*models.PatternRecord, 0)
	for _, line := range parser.SplitLines(text) {
		if rec, ok := parser.ParsePatternLine(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

// Table maps each pattern to its comment. A pattern listed twice keeps the
// comment of its last record.
func Table(text string) map[string]string {
	table := make(map[string]string)
	for _, rec := range Records(text) {
		table[rec.Pattern] = rec.Comment
	}
	return table
}
