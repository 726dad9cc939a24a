package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
)

// callLogPattern matches one line written by the device, for example
//
//	B-DATE = 011916--TIME = 1616--NMBR = 8774845967--NAME = TOLL FREE CALLE--
var callLogPattern = regexp.MustCompile(`^([WB\-])-DATE = (\d{6})--TIME = (\d{4})--NMBR = ([^\-]*)--NAME = ([^\-]*)--$`)

// ParseCallLogLine parses one call log line. The second result is false for
// any line that does not match the device layout.
func ParseCallLogLine(line string) (*models.CallRecord, bool) {
	m := callLogPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	return &models.CallRecord{
		Status:   models.StatusFromFlag(m[1]),
		When:     FormatDateTime(m[2], m[3]),
		Number:   filterAbsent(m[4]),
		CallerID: filterAbsent(m[5]),
	}, true
}

// FormatDateTime renders the MMDDYY date and HHMM time fields of a call log
// line as "YYYY-MM-DD HH:MM". Fields are copied, not normalized, so an
// impossible date the device wrote is shown as written.
func FormatDateTime(date, clock string) string {
	year, _ := strconv.Atoi(date[4:6])
	year += constants.CallLogCentury
	return fmt.Sprintf("%d-%s-%s %s:%s", year, date[0:2], date[2:4], clock[0:2], clock[2:4])
}

func filterAbsent(field string) string {
	field = strings.TrimSpace(field)
	if field == constants.CallLogAbsent {
		return ""
	}
	return field
}
