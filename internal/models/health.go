package models

// HealthStatus reports whether every jcblock file can be reached.
// Files maps each file kind to "ok" or the error text.
type HealthStatus struct {
	Status string            `json:"status"`
	Files  map[string]string `json:"files"`
}

// VersionInfo describes the running build.
type VersionInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}
