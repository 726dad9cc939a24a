// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines general-purpose constants related to routing
// and request parameters. These constants keep route definitions and parameter
// extraction in the handlers in agreement.
package constants

// URL Parameters define path parameter names used in route definitions.
const (
	// ParamPhoneNumber is the URL parameter for a caller's phone number.
	ParamPhoneNumber = "phonenumber"

	// ParamStatus is the URL parameter for a target classification.
	ParamStatus = "status"

	// ParamName is the URL parameter for a caller's new display name.
	ParamName = "name"

	// ParamStart is the URL parameter for the first call in a window.
	ParamStart = "start"

	// ParamLimit is the URL parameter for the size of a call window.
	ParamLimit = "limit"

	// ParamFileType is the URL parameter naming a pattern list.
	ParamFileType = "filetype"
)

// Pattern list names accepted by the fetch operation.
const (
	ListSafe    = "safe"
	ListBlocked = "blocked"
)

// Log field names.
const (
	LogFieldNumber    = "number"
	LogFieldFile      = "file"
	LogFieldStep      = "step"
	LogFieldChanged   = "changed"
	LogFieldOperation = "operation_id"
	LogFieldStatus    = "status"
	LogFieldRequestID = "request_id"
)

// File kinds, used as metric labels and health report keys.
const (
	FileKindCallLog     = "call_log"
	FileKindSafeList    = "safe_list"
	FileKindBlockedList = "blocked_list"
	FileKindDatabase    = "database"
)

// Transition step actions.
const (
	StepRemove    = "remove"
	StepAppend    = "append"
	StepClearName = "clear_name"
)

// Health states.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)
