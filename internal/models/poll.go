package models

import (
	"time"
)

// FileStamp is the last-modified time of one jcblock file.
type FileStamp struct {
	Modified time.Time `json:"modified"`
}

// ModificationTimes holds the last-modified time of every file jcadmin reads.
type ModificationTimes struct {
	CallLog     FileStamp `json:"call_log"`
	SafeList    FileStamp `json:"safe_list"`
	BlockedList FileStamp `json:"blocked_list"`
	Database    FileStamp `json:"database"`
}

// CallsChanged is the later of the call log and database times. A rename only
// touches the database, but clients reload the calls either way.
func (m *ModificationTimes) CallsChanged() FileStamp {
	if m.Database.Modified.After(m.CallLog.Modified) {
		return m.Database
	}
	return m.CallLog
}

// PollResponse is the shape served to polling clients.
type PollResponse struct {
	CallerID FileStamp `json:"callerid"`
	Safe     FileStamp `json:"safe"`
	Blocked  FileStamp `json:"blocked"`
}

// NewPollResponse folds the database time into the caller ID time.
func NewPollResponse(m *ModificationTimes) *PollResponse {
	return &PollResponse{
		CallerID: m.CallsChanged(),
		Safe:     m.SafeList,
		Blocked:  m.BlockedList,
	}
}
