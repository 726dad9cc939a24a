package history_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/jcadmin/internal/history"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
)

type staticNames map[string]string

func (s staticNames) Get(number string) string {
	return s[number]
}

// callLog is oldest first, as the device appends.
var callLog = strings.Join([]string{
	"--DATE = 011916--TIME = 1600--NMBR = 8005551212--NAME = OLD NAME--",
	"B-DATE = 011916--TIME = 1616--NMBR = 8774845967--NAME = TOLL FREE CALLE--",
	"garbage line",
	"--DATE = 011916--TIME = 1623--NMBR = O--NAME = O--",
	"W-DATE = 011916--TIME = 1700--NMBR = 5551234567--NAME = O--",
	"--DATE = 011916--TIME = 1800--NMBR = 8005551212--NAME = NEW NAME--",
	"--DATE = 011916--TIME = 1900--NMBR = 8005551212--NAME = O--",
}, "\n") + "\n"

func TestAggregateCalls(t *testing.T) {
	result := history.AggregateCalls(callLog, 0, 100, nil)

	assert.Equal(t, 6, result.Total)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Calls, 6)

	// Newest first
	assert.Equal(t, "2016-01-19 19:00", result.Calls[0].When)
	assert.Equal(t, "2016-01-19 16:00", result.Calls[5].When)

	assert.Equal(t, map[string]int{
		"8005551212": 3,
		"8774845967": 1,
		"5551234567": 1,
	}, result.CountByNumber)

	// The newest call has no caller ID, so the next newer one supplies the name.
	assert.Equal(t, "NEW NAME", result.LatestNameByNumber["8005551212"])
	assert.Equal(t, "NEW NAME", result.LatestCallerIDByNumber["8005551212"])
	assert.Equal(t, "", result.LatestNameByNumber["5551234567"])
	_, ok := result.LatestCallerIDByNumber["5551234567"]
	assert.False(t, ok)
}

func TestAggregateCalls_StoredNameWins(t *testing.T) {
	names := staticNames{"8774845967": "Cruise Scam"}

	result := history.AggregateCalls(callLog, 0, 100, names)

	assert.Equal(t, "Cruise Scam", result.LatestNameByNumber["8774845967"])
	assert.Equal(t, "TOLL FREE CALLE", result.LatestCallerIDByNumber["8774845967"])
}

func TestAggregateCalls_Window(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		limit     int
		wantWhens []string
	}{
		{"First two", 0, 2, []string{"2016-01-19 19:00", "2016-01-19 18:00"}},
		{"Skips unparsed lines when counting positions", 2, 2, []string{"2016-01-19 17:00", "2016-01-19 16:23"}},
		{"Past the end", 10, 5, nil},
		{"Zero limit", 0, 0, nil},
		{"Negative start treated as zero", -3, 1, []string{"2016-01-19 19:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := history.AggregateCalls(callLog, tt.start, tt.limit, nil)

			var whens []string
			for _, c := range result.Calls {
				whens = append(whens, c.When)
			}
			assert.Equal(t, tt.wantWhens, whens)
			assert.Equal(t, 6, result.Total)
			assert.NotNil(t, result.Calls)
		})
	}
}

func TestAggregateCalls_Idempotent(t *testing.T) {
	names := staticNames{"8005551212": "Pizza"}

	first := history.AggregateCalls(callLog, 1, 3, names)
	second := history.AggregateCalls(callLog, 1, 3, names)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("AggregateCalls changed between runs (-first +second):\n%s", diff)
	}
}

func TestAggregateCalls_EmptyLog(t *testing.T) {
	result := history.AggregateCalls("", 0, 10, nil)

	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Calls)
	assert.Empty(t, result.CountByNumber)
}

func TestHistory(t *testing.T) {
	calls := history.History(callLog, "8005551212")

	require.Len(t, calls, 3)
	assert.Equal(t, "2016-01-19 19:00", calls[0].When)
	assert.Equal(t, "2016-01-19 16:00", calls[2].When)
	assert.Empty(t, history.History(callLog, "9999999"))

	for _, c := range calls {
		assert.Equal(t, models.StatusNeutral, c.Status)
	}
}
