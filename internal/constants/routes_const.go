package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
	RoutesPath  = "/api/routes"
)

// Caller Routes
const (
	PollPath         = "/api/poll"
	CallsPath        = "/api/calls/{start}/{limit}"
	CallsDefaultPath = "/api/calls"
	CallerPath       = "/api/caller/{phonenumber}"
	FetchPath        = "/api/fetch/{filetype}"
	FetchDetailPath  = "/api/fetch/{filetype}/detail"
	RenamePath       = "/api/rename/{phonenumber}/{name}"
	RenameClearPath  = "/api/rename/{phonenumber}"
	ClassifyPath     = "/api/classify/{status}/{phonenumber}"
	ClassifyBodyPath = "/api/classify"
)
