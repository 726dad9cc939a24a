// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// These constants provide fallbacks for configuration settings and fix the on-disk
// layouts shared with the jcblock device. Changing the layout constants breaks
// compatibility with files the device writes.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port used by jcadmin.
	DefaultServerPort = 9393

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultAppName is the application name reported in logs.
	DefaultAppName = "jcadmin"

	// DefaultMetricsPath is the route the Prometheus handler is mounted on.
	DefaultMetricsPath = "/metrics"

	// DefaultMutationRate is how many file mutations per second one client may sustain.
	DefaultMutationRate = 2.0

	// DefaultMutationBurst is how many file mutations one client may send at once.
	DefaultMutationBurst = 10
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Default file names inside the jcblock directory.
const (
	DefaultJCBlockDir      = "."
	DefaultCallLogFile     = "callerID.dat"
	DefaultSafeListFile    = "whitelist.dat"
	DefaultBlockedListFile = "blacklist.dat"
	DefaultDatabaseFile    = "jcadmin.json"
)

// Caller limits.
const (
	// DefaultMaxNameLength is the ceiling, in characters, for a user-assigned caller name.
	DefaultMaxNameLength = 80

	// DefaultCallLimit is the window size used when a caller does not ask for one.
	DefaultCallLimit = 1000000000

	// MatchModeSubstring matches a pattern anywhere in the number or caller ID text,
	// the way the jcblock device does.
	MatchModeSubstring = "substring"

	// MatchModeExact matches a pattern only against the whole number.
	MatchModeExact = "exact"
)

// Pattern list record layout, as written and read by the jcblock device.
const (
	// PatternCommentMarker starts a comment line in a pattern list.
	PatternCommentMarker = "#"

	// PatternTerminator ends the pattern field.
	PatternTerminator = "?"

	// PatternMaxWidth is the longest pattern the device accepts.
	PatternMaxWidth = 18

	// PatternDateColumn is where the device writes the last-match date.
	PatternDateColumn = 19

	// PatternDateWidth is the width of the last-match date field.
	PatternDateWidth = 6

	// PatternCommentColumn is where the free-text comment begins.
	PatternCommentColumn = 25

	// PatternMinRecordLength is the shortest line treated as a record.
	PatternMinRecordLength = 25

	// PatternNeverMatched fills the date field of a record the device has not matched yet.
	PatternNeverMatched = "++++++"

	// PatternDateCommentGap separates the date field from the comment in new records.
	PatternDateCommentGap = "        "
)

// Call log layout.
const (
	// CallLogAbsent is the value the device writes when a number or name is unknown.
	CallLogAbsent = "O"

	// CallLogCentury is added to the two-digit year in the call log.
	CallLogCentury = 2000
)

// Name database schema.
const (
	// NameDatabaseSchemaVersion is the version written to the name database file.
	NameDatabaseSchemaVersion = 1
)

// Request limits.
const (
	// MaxRequestBodySize caps JSON request bodies, in bytes.
	MaxRequestBodySize = 1 << 16
)
