package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yasinhessnawi1/jcadmin/internal/classifier"
	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
)

func TestStatus_Substring(t *testing.T) {
	c := classifier.New(constants.MatchModeSubstring)

	safe := map[string]string{"5551234567": "Mom"}
	blocked := map[string]string{"555": "area code", "TOLL FREE": "telemarketer", "": "blank"}

	tests := []struct {
		name     string
		number   string
		callerID string
		want     models.Status
	}{
		{"Safe wins over blocked", "5551234567", "", models.StatusSafe},
		{"Blocked by prefix", "5559876543", "", models.StatusBlocked},
		{"Blocked by caller ID text", "8774845967", "TOLL FREE CALLE", models.StatusBlocked},
		{"Neutral", "8004441000", "PIZZA", models.StatusNeutral},
		{"Empty pattern never matches", "", "", models.StatusNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Status(tt.number, tt.callerID, safe, blocked))
		})
	}
}

func TestStatus_Exact(t *testing.T) {
	c := classifier.New(constants.MatchModeExact)

	safe := map[string]string{"5551234567": ""}
	blocked := map[string]string{"555": "", "8774845967": ""}

	assert.Equal(t, models.StatusSafe, c.Status("5551234567", "", safe, blocked))
	assert.Equal(t, models.StatusNeutral, c.Status("5559876543", "", safe, blocked))
	assert.Equal(t, models.StatusBlocked, c.Status("8774845967", "", safe, blocked))
}

func TestStatus_NilTables(t *testing.T) {
	c := classifier.New("")

	assert.Equal(t, models.StatusNeutral, c.Status("5551234567", "", nil, nil))
}

func TestMatcherFor(t *testing.T) {
	assert.True(t, classifier.MatcherFor(constants.MatchModeExact)("123", "123", ""))
	assert.False(t, classifier.MatcherFor(constants.MatchModeExact)("12", "123", ""))
	assert.True(t, classifier.MatcherFor("unknown")("12", "123", ""))
}
