// Package history folds the jcblock call log into the views the UI shows:
// a window of recent calls and per-number statistics over the whole log.
package history

import (
	"github.com/yasinhessnawi1/jcadmin/internal/models"
	"github.com/yasinhessnawi1/jcadmin/internal/parser"
)

// NameLookup returns the user-assigned name for a number, or "".
type NameLookup interface {
	Get(number string) string
}

// AggregateCalls walks the call log from the newest line to the oldest, in a
// single pass, and returns the parsed calls at positions [start, start+limit)
// together with counts and names for every valid number in the log.
//
// Positions count parsed records only; lines that do not parse are skipped.
// names may be nil, in which case only caller ID text is used for names.
func AggregateCalls(logText string, start, limit int, names NameLookup) *models.RecentCalls {
	if start < 0 {
		start = 0
	}
	if limit < 0 {
		limit = 0
	}

	result := &models.RecentCalls{
		Start:                  start,
		Limit:                  limit,
		Calls:                  make([]*models.CallRecord, 0),
		CountByNumber:          make(map[string]int),
		LatestNameByNumber:     make(map[string]string),
		LatestCallerIDByNumber: make(map[string]string),
	}

	lines := parser.SplitLines(logText)
	for i := len(lines) - 1; i >= 0; i-- {
		call, ok := parser.ParseCallLogLine(lines[i])
		if !ok {
			result.Skipped++
			continue
		}

		if parser.IsPhoneNumber(call.Number) {
			result.CountByNumber[call.Number]++

			// An empty name does not count as recorded, so an older call can still supply one.
			if result.LatestNameByNumber[call.Number] == "" {
				result.LatestNameByNumber[call.Number] = preferredName(names, call)
			}
			if call.CallerID != "" && result.LatestCallerIDByNumber[call.Number] == "" {
				result.LatestCallerIDByNumber[call.Number] = call.CallerID
			}
		}

		if result.Total >= start && len(result.Calls) < limit {
			result.Calls = append(result.Calls, call)
		}
		result.Total++
	}

	return result
}

// History returns every call from number, most recent first.
func History(logText, number string) []*models.CallRecord {
	var calls []*models.CallRecord
	lines := parser.SplitLines(logText)
	for i := len(lines) - 1; i >= 0; i-- {
		call, ok := parser.ParseCallLogLine(lines[i])
		if ok && call.Number == number {
			calls = append(calls, call)
		}
	}
	return calls
}

func preferredName(names NameLookup, call *models.CallRecord) string {
	if names != nil {
		if name := names.Get(call.Number); name != "" {
			return name
		}
	}
	return call.CallerID
}
