package models

// PatternRecord is one record of a safe list or blocked list file.
// LastMatch is the MMDDYY date the device last matched the record, empty if never.
type PatternRecord struct {
	Pattern   string `json:"pattern"`
	Comment   string `json:"comment"`
	LastMatch string `json:"last_match,omitempty"`
}

// PatternTable maps each pattern to its comment, as served to the UI.
type PatternTable struct {
	Table map[string]string `json:"table"`
}

// PatternTableDetail lists the records of a pattern list in file order.
type PatternTableDetail struct {
	List    string           `json:"list"`
	Records []*PatternRecord `json:"records"`
}
