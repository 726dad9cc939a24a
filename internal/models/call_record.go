package models

// Status is the classification of a phone number: what the jcblock device
// does when that number calls.
type Status string

// Available statuses
const (
	// StatusSafe numbers match the safe list and are always accepted.
	StatusSafe Status = "safe"
	// StatusBlocked numbers match the blocked list and are hung up on.
	StatusBlocked Status = "blocked"
	// StatusNeutral numbers match neither list.
	StatusNeutral Status = "neutral"
)

// ValidateStatus checks if the provided status is one of the three classifications.
func ValidateStatus(status Status) bool {
	return status == StatusSafe || status == StatusBlocked || status == StatusNeutral
}

// StatusFromFlag maps the leading flag of a call log line to a status.
// W is safe, B is blocked, anything else is neutral.
func StatusFromFlag(flag string) Status {
	switch flag {
	case "W":
		return StatusSafe
	case "B":
		return StatusBlocked
	default:
		return StatusNeutral
	}
}

// CallRecord is one parsed line of the call log.
// Number and CallerID are empty when the device reported them as absent.
type CallRecord struct {
	Status   Status `json:"status"`
	When     string `json:"when"`
	Number   string `json:"number"`
	CallerID string `json:"callid"`
}

// CallerRecord is the most recent call from a number, decorated with the
// user-assigned name and the classification the device will apply next.
type CallerRecord struct {
	CallRecord
	Name          string `json:"name"`
	Count         int    `json:"count"`
	CurrentStatus Status `json:"current_status"`
}

// RecentCalls is the result of folding the whole call log: a window of calls in
// reverse chronological order plus statistics over every call.
type RecentCalls struct {
	Total int           `json:"total"`
	Start int           `json:"start"`
	Limit int           `json:"limit"`
	Calls []*CallRecord `json:"calls"`
	// CountByNumber is the number of calls from each valid phone number.
	CountByNumber map[string]int `json:"count"`
	// LatestNameByNumber is the stored name, falling back to the most recent caller ID.
	LatestNameByNumber map[string]string `json:"names"`
	// LatestCallerIDByNumber is the most recent non-empty caller ID for each number.
	LatestCallerIDByNumber map[string]string `json:"callid"`
	// Skipped counts lines that did not parse.
	Skipped int `json:"skipped"`
}

// CallerDetail is everything known about one number.
type CallerDetail struct {
	Call    *CallerRecord `json:"call"`
	History []string      `json:"history"`
}
