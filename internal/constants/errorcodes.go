// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling, categorization,
// and messaging. These constants keep error reporting consistent between the
// service layer and the HTTP transport.
package constants

// Error Types define the categories of errors that can occur in the application.
const (
	// ErrorNotFound indicates that a requested resource could not be found.
	ErrorNotFound = "resource not found"

	// ErrorBadRequest indicates that the request was malformed or invalid.
	ErrorBadRequest = "invalid request"

	// ErrorInternalServer indicates an unexpected internal error.
	ErrorInternalServer = "internal server error"

	// ErrorValidation indicates that input validation failed.
	ErrorValidation = "validation error"

	// ErrorInvalidNumber indicates that a value is not a phone number.
	ErrorInvalidNumber = "invalid phone number"

	// ErrorInvalidStatus indicates an unrecognized classification.
	ErrorInvalidStatus = "invalid status"

	// ErrorNameTooLong indicates that a display name exceeds the length ceiling.
	ErrorNameTooLong = "name too long"

	// ErrorCallHistoryConflict indicates that a number cannot be deleted because it has called.
	ErrorCallHistoryConflict = "call history conflict"

	// ErrorIO indicates that reading or writing one of the jcblock files failed.
	ErrorIO = "file i/o error"
)

// User-Facing Error Messages define standardized messages that can be safely presented to users.
const (
	// MsgInternalServerError provides a generic server error message.
	MsgInternalServerError = "An internal server error occurred"

	// MsgRequestBodyTooLarge indicates that the request payload exceeds size limits.
	MsgRequestBodyTooLarge = "Request body too large"

	// MsgEmptyRequestBody indicates that a request body was expected but not provided.
	MsgEmptyRequestBody = "Request body must not be empty"

	// MsgMalformedJSON indicates that the request body contains invalid JSON.
	MsgMalformedJSON = "Request body contains malformed JSON"

	// MsgResourceNotFound indicates that the requested resource does not exist.
	MsgResourceNotFound = "The requested resource could not be found"

	// MsgMethodNotAllowed indicates that the HTTP method is not supported for the endpoint.
	MsgMethodNotAllowed = "This method is not allowed for this resource"

	// MsgInvalidNumber is returned when a phone number fails validation.
	MsgInvalidNumber = "Not a valid phone number."

	// MsgInvalidStatus is returned for an unknown classification.
	MsgInvalidStatus = "Invalid status"

	// MsgInvalidFileType is returned when a list other than safe or blocked is requested.
	MsgInvalidFileType = "Invalid filetype"

	// MsgNameTooLong is formatted with the configured ceiling.
	MsgNameTooLong = "Name length must not exceed %d characters."

	// MsgNameControlCharacters is returned when a display name contains line breaks or other control characters.
	MsgNameControlCharacters = "Name must not contain control characters."

	// MsgNameRejected is returned for a rejected name when the ceiling is not known.
	MsgNameRejected = "Name is too long."

	// MsgCallHistoryConflict is returned when deleting a number that has called.
	MsgCallHistoryConflict = "Cannot delete phone number because it exists in the call history."

	// MsgFileUnavailable is returned when a jcblock file cannot be read or written.
	MsgFileUnavailable = "A jcblock file could not be accessed"

	// MsgTooManyRequests is returned when a client exceeds the mutation rate.
	MsgTooManyRequests = "Too many changes, please slow down"
)

// Logger Constants define values used for structured logging.
const (
	// LogCategoryCaller is the log category for caller mutations.
	LogCategoryCaller = "caller"

	// LogCategoryFile is the log category for jcblock file access.
	LogCategoryFile = "file"

	// LogEventClassify is the log event for a classification transition.
	LogEventClassify = "classify"

	// LogEventRename is the log event for a rename.
	LogEventRename = "rename"

	// LogEventDelete is the log event for a caller deletion.
	LogEventDelete = "delete"

	// LogEventBootstrap is the log event for the first-run name database replay.
	LogEventBootstrap = "bootstrap"
)
