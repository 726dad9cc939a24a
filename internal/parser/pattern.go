package parser

import (
	"strings"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
)

// ParsePatternLine parses one record of a pattern list. Comment lines and
// lines too short to hold the date field yield no record.
//
// The pattern runs up to the first '?', or to the date column when the line
// has none. The comment starts at the comment column.
func ParsePatternLine(line string) (*models.PatternRecord, bool) {
	if strings.HasPrefix(line, constants.PatternCommentMarker) || len(line) < constants.PatternMinRecordLength {
		return nil, false
	}

	limit := strings.Index(line, constants.PatternTerminator)
	if limit < 0 {
		limit = constants.PatternDateColumn
	}

	return &models.PatternRecord{
		Pattern:   strings.TrimSpace(line[:limit]),
		Comment:   strings.TrimSpace(line[constants.PatternCommentColumn:]),
		LastMatch: lastMatch(line),
	}, true
}

// lineBreaks flattens a comment onto the record's line.
var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// FormatPatternLine renders a new record for number with the given comment,
// newline terminated. Numbers longer than the pattern field are truncated and
// line breaks in the comment become spaces.
func FormatPatternLine(number, comment string) string {
	if len(number) > constants.PatternMaxWidth {
		number = number[:constants.PatternMaxWidth]
	}

	var b strings.Builder
	b.WriteString(number)
	b.WriteString(constants.PatternTerminator)
	for b.Len() < constants.PatternDateColumn {
		b.WriteByte(' ')
	}
	b.WriteString(constants.PatternNeverMatched)
	b.WriteString(constants.PatternDateCommentGap)
	b.WriteString(lineBreaks.Replace(comment))
	b.WriteByte('\n')
	return b.String()
}

// lastMatch returns the device-written date field, or "" if the record has
// never matched or the field is not a date.
func lastMatch(line string) string {
	field := line[constants.PatternDateColumn : constants.PatternDateColumn+constants.PatternDateWidth]
	for _, c := range field {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return field
}
